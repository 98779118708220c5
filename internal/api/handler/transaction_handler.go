package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rewardsystem/rewards-api/internal/api/metrics"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

// TransactionDispatcher is the interface the handler uses to enqueue
// transactions for asynchronous ingestion.
type TransactionDispatcher interface {
	Enqueue(in ports.TransactionInput)
	EnqueueBatch(ins []ports.TransactionInput)
}

// TransactionHandler handles transaction ingestion and listing.
type TransactionHandler struct {
	dispatcher TransactionDispatcher
	txns       ports.TransactionService
}

func NewTransactionHandler(dispatcher TransactionDispatcher, txns ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{dispatcher: dispatcher, txns: txns}
}

// Receive handles POST /admin/transactions: enqueues one transaction and replies 202.
//
// @Summary      Ingest a single transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      transactionRequest  true  "Transaction"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/transactions [post]
func (h *TransactionHandler) Receive(c echo.Context) error {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toTransactionInput(req))
	metrics.TransactionsAcceptedTotal.Inc()
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "transaction accepted"})
}

// ReceiveBatch handles POST /admin/transactions/batch: enqueues a batch and replies 202.
//
// @Summary      Ingest a batch of transactions
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []transactionRequest  true  "Array of transactions"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/transactions/batch [post]
func (h *TransactionHandler) ReceiveBatch(c echo.Context) error {
	var reqs []transactionRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.TransactionInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("transaction[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toTransactionInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	metrics.TransactionsAcceptedTotal.Add(float64(len(inputs)))
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "transactions accepted",
		Count:   len(inputs),
	})
}

// List handles GET /manager/transactions: paginated listing with optional
// customer and date filters.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id  query     int     false  "Filter by customer"
// @Param        from         query     string  false  "RFC 3339 lower bound"
// @Param        to           query     string  false  "RFC 3339 upper bound"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Rows per page"
// @Success      200  {object}  listTransactionsResponse
// @Failure      400  {object}  errorResponse
// @Router       /manager/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	res, err := h.txns.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listTransactionsResponse{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

func toTransactionInput(r transactionRequest) ports.TransactionInput {
	return ports.TransactionInput{
		CustomerID: r.CustomerID,
		Amount:     r.Amount,
		Date:       r.Date,
	}
}

func parseListFilter(c echo.Context) (ports.ListTransactionsFilter, error) {
	var filter ports.ListTransactionsFilter

	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "customer_id must be a positive integer")
		}
		filter.CustomerID = id
	}
	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "from must be an RFC 3339 timestamp")
		}
		filter.DateFrom = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "to must be an RFC 3339 timestamp")
		}
		filter.DateTo = t
	}
	if raw := c.QueryParam("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
		}
		filter.Page = p
	}
	if raw := c.QueryParam("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 1 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		filter.Limit = l
	}
	return filter, nil
}
