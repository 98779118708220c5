package handler

import (
	"time"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

type transactionRequest struct {
	CustomerID int       `json:"customer_id" validate:"required,gt=0"`
	Amount     float64   `json:"amount"      validate:"gte=0"`
	Date       time.Time `json:"date"        validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

type listTransactionsResponse struct {
	Items      []*domain.Transaction `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}
