package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

// CacheInvalidator is the slice of the rewards cache the ingestion path
// needs: computed results become stale the moment a transaction lands.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type transactionService struct {
	txns  ports.TransactionRepository
	cache CacheInvalidator
	log   zerolog.Logger
}

// NewTransactionService returns a TransactionService persisting ingested
// transactions. cache may be nil.
func NewTransactionService(txns ports.TransactionRepository, cache CacheInvalidator, log zerolog.Logger) ports.TransactionService {
	return &transactionService{txns: txns, cache: cache, log: log}
}

// Ingest validates and persists a single transaction, then invalidates any
// cached reward computation.
func (s *transactionService) Ingest(ctx context.Context, in ports.TransactionInput) error {
	if in.CustomerID <= 0 {
		return domain.Validation("customer_id must be positive")
	}
	if in.Amount < 0 {
		return domain.Validation("Transaction amount cannot be negative")
	}
	if in.Date.IsZero() {
		return domain.Validation("date is required")
	}

	t := &domain.Transaction{
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Date:       in.Date.UTC(),
	}
	if err := s.txns.Insert(ctx, t); err != nil {
		return fmt.Errorf("ingest transaction: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate rewards cache")
		}
	}

	s.log.Info().Int("customer_id", in.CustomerID).Float64("amount", in.Amount).Msg("transaction ingested")
	return nil
}

const maxPageSize = 100

// List returns a page of transactions. Page and limit are normalized; the
// limit is capped at maxPageSize.
func (s *transactionService) List(ctx context.Context, filter ports.ListTransactionsFilter) (*ports.ListTransactionsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	items, total, err := s.txns.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListTransactionsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
