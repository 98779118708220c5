package ports

import (
	"context"
	"time"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

// TransactionInput is the DTO passed from the transport layer to the
// ingestion service.
type TransactionInput struct {
	CustomerID int
	Amount     float64
	Date       time.Time
}

// ListTransactionsResult is returned by List.
type ListTransactionsResult struct {
	Items      []*domain.Transaction
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TransactionService persists ingested transactions and serves the
// transaction listing.
type TransactionService interface {
	Ingest(ctx context.Context, in TransactionInput) error
	List(ctx context.Context, filter ListTransactionsFilter) (*ListTransactionsResult, error)
}
