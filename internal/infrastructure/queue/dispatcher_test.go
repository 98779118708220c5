package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

type recordingService struct {
	mu       sync.Mutex
	received map[int][]float64
	count    int
}

func newRecordingService() *recordingService {
	return &recordingService{received: make(map[int][]float64)}
}

func (s *recordingService) Ingest(ctx context.Context, in ports.TransactionInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received[in.CustomerID] = append(s.received[in.CustomerID], in.Amount)
	s.count++
	return nil
}

func (s *recordingService) List(ctx context.Context, filter ports.ListTransactionsFilter) (*ports.ListTransactionsResult, error) {
	return nil, nil
}

func (s *recordingService) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func waitForCount(t *testing.T, s *recordingService, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.total() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d ingested, got %d", want, s.total())
}

func TestDispatcher_DeliversAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newRecordingService()
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	var inputs []ports.TransactionInput
	for customer := 1; customer <= 3; customer++ {
		for i := 0; i < 5; i++ {
			inputs = append(inputs, ports.TransactionInput{
				CustomerID: customer,
				Amount:     float64(i),
				Date:       time.Now(),
			})
		}
	}
	d.EnqueueBatch(inputs)

	waitForCount(t, svc, len(inputs))
}

func TestDispatcher_PreservesPerCustomerOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newRecordingService()
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		d.Enqueue(ports.TransactionInput{CustomerID: 9, Amount: float64(i), Date: time.Now()})
	}

	waitForCount(t, svc, n)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	amounts := svc.received[9]
	for i, got := range amounts {
		if got != float64(i) {
			t.Fatalf("order broken at %d: got %v", i, got)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
