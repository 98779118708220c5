package ports

import (
	"context"
	"time"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

// ListTransactionsFilter carries the query parameters for the listing
// endpoint.
type ListTransactionsFilter struct {
	CustomerID int       // 0 = no filter
	DateFrom   time.Time // optional: date >= DateFrom
	DateTo     time.Time // optional: date <= DateTo
	Page       int       // 1-based
	Limit      int       // rows per page (capped by the service)
}

// TransactionRepository defines persistence operations for customer
// transactions.
type TransactionRepository interface {
	Insert(ctx context.Context, t *domain.Transaction) error
	// FindSince returns all transactions with date >= from.
	FindSince(ctx context.Context, from time.Time) ([]*domain.Transaction, error)
	// FindByCustomerSince returns one customer's transactions with date >= from.
	FindByCustomerSince(ctx context.Context, customerID int, from time.Time) ([]*domain.Transaction, error)
	// List returns a page of transactions matching filter and the total count.
	List(ctx context.Context, filter ListTransactionsFilter) ([]*domain.Transaction, int64, error)
}
