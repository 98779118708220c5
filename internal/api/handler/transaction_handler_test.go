package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

type stubDispatcher struct {
	enqueued []ports.TransactionInput
}

func (s *stubDispatcher) Enqueue(in ports.TransactionInput) {
	s.enqueued = append(s.enqueued, in)
}

func (s *stubDispatcher) EnqueueBatch(ins []ports.TransactionInput) {
	s.enqueued = append(s.enqueued, ins...)
}

type stubTransactionService struct {
	listFn func(ctx context.Context, filter ports.ListTransactionsFilter) (*ports.ListTransactionsResult, error)
}

func (s *stubTransactionService) Ingest(ctx context.Context, in ports.TransactionInput) error {
	return nil
}

func (s *stubTransactionService) List(ctx context.Context, filter ports.ListTransactionsFilter) (*ports.ListTransactionsResult, error) {
	return s.listFn(ctx, filter)
}

func newTransactionTestEnv() (*echo.Echo, *stubDispatcher, *TransactionHandler) {
	e := echo.New()
	e.Validator = NewValidator()
	dispatcher := &stubDispatcher{}
	handler := NewTransactionHandler(dispatcher, &stubTransactionService{})
	return e, dispatcher, handler
}

func TestTransactionHandler_Receive(t *testing.T) {
	e, dispatcher, handler := newTransactionTestEnv()

	body := strings.NewReader(`{"customer_id":7,"amount":120,"date":"2026-03-01T10:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/transactions", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(dispatcher.enqueued) != 1 {
		t.Fatalf("expected 1 enqueued, got %d", len(dispatcher.enqueued))
	}
	got := dispatcher.enqueued[0]
	if got.CustomerID != 7 || got.Amount != 120 {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestTransactionHandler_Receive_ValidationFailure(t *testing.T) {
	e, dispatcher, handler := newTransactionTestEnv()

	cases := []struct {
		name string
		body string
	}{
		{"missing customer", `{"amount":120,"date":"2026-03-01T10:00:00Z"}`},
		{"negative amount", `{"customer_id":7,"amount":-5,"date":"2026-03-01T10:00:00Z"}`},
		{"missing date", `{"customer_id":7,"amount":120}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/transactions", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler.Receive(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
	if len(dispatcher.enqueued) != 0 {
		t.Fatalf("nothing should be enqueued, got %d", len(dispatcher.enqueued))
	}
}

func TestTransactionHandler_Receive_BadPayload(t *testing.T) {
	e, _, handler := newTransactionTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/admin/transactions", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Receive(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTransactionHandler_ReceiveBatch(t *testing.T) {
	e, dispatcher, handler := newTransactionTestEnv()

	body := strings.NewReader(`[
		{"customer_id":1,"amount":120,"date":"2026-03-01T10:00:00Z"},
		{"customer_id":2,"amount":75.5,"date":"2026-03-02T10:00:00Z"}
	]`)
	req := httptest.NewRequest(http.MethodPost, "/admin/transactions/batch", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ReceiveBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(dispatcher.enqueued) != 2 {
		t.Fatalf("expected 2 enqueued, got %d", len(dispatcher.enqueued))
	}

	var resp acceptedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected count 2, got %d", resp.Count)
	}
}

func TestTransactionHandler_ReceiveBatch_Empty(t *testing.T) {
	e, _, handler := newTransactionTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/admin/transactions/batch", strings.NewReader(`[]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ReceiveBatch(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTransactionHandler_ReceiveBatch_InvalidItem(t *testing.T) {
	e, dispatcher, handler := newTransactionTestEnv()

	body := strings.NewReader(`[
		{"customer_id":1,"amount":120,"date":"2026-03-01T10:00:00Z"},
		{"customer_id":0,"amount":50,"date":"2026-03-02T10:00:00Z"}
	]`)
	req := httptest.NewRequest(http.MethodPost, "/admin/transactions/batch", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ReceiveBatch(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if len(dispatcher.enqueued) != 0 {
		t.Fatalf("nothing should be enqueued on a partial failure")
	}
}

func TestTransactionHandler_List(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	var gotFilter ports.ListTransactionsFilter
	svc := &stubTransactionService{
		listFn: func(ctx context.Context, filter ports.ListTransactionsFilter) (*ports.ListTransactionsResult, error) {
			gotFilter = filter
			return &ports.ListTransactionsResult{
				Items: []*domain.Transaction{
					{ID: "t1", CustomerID: 7, Amount: 120, Date: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
				},
				Total:      1,
				Page:       2,
				Limit:      25,
				TotalPages: 1,
			}, nil
		},
	}
	handler := NewTransactionHandler(&stubDispatcher{}, svc)

	req := httptest.NewRequest(http.MethodGet,
		"/manager/transactions?customer_id=7&from=2026-01-01T00:00:00Z&page=2&limit=25", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if gotFilter.CustomerID != 7 || gotFilter.Page != 2 || gotFilter.Limit != 25 {
		t.Fatalf("unexpected filter: %+v", gotFilter)
	}
	if !gotFilter.DateFrom.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from: %v", gotFilter.DateFrom)
	}

	var resp listTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].CustomerID != 7 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTransactionHandler_List_BadQuery(t *testing.T) {
	e, _, handler := newTransactionTestEnv()

	cases := []string{
		"/manager/transactions?customer_id=abc",
		"/manager/transactions?customer_id=-1",
		"/manager/transactions?from=yesterday",
		"/manager/transactions?to=March",
		"/manager/transactions?page=abc",
		"/manager/transactions?page=0",
		"/manager/transactions?limit=abc",
		"/manager/transactions?limit=-5",
	}
	for _, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.List(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", target, err)
		}
	}
}
