package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rewardsystem/rewards-api/internal/api/metrics"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes incoming transactions to a fixed set of workers using
// consistent hashing on the customer ID, so transactions for the same
// customer are applied in arrival order.
type Dispatcher struct {
	workers []chan ports.TransactionInput
	service ports.TransactionService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TransactionService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TransactionInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TransactionInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a transaction to the worker responsible for its customer.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(txn ports.TransactionInput) {
	d.workers[d.shardIndex(txn.CustomerID)] <- txn
}

// EnqueueBatch enqueues multiple transactions preserving per-customer ordering.
func (d *Dispatcher) EnqueueBatch(txns []ports.TransactionInput) {
	for _, t := range txns {
		d.Enqueue(t)
	}
}

// shardIndex maps a customer ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(customerID int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.Itoa(customerID)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TransactionInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case txn, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Ingest(ctx, txn); err != nil {
				metrics.TransactionsFailedTotal.Inc()
				d.log.Error().Err(err).
					Int("customer_id", txn.CustomerID).
					Int("worker_id", id).
					Msg("transaction ingest failed")
			}
		}
	}
}
