package ports

import (
	"context"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

// RewardService computes reward points from transaction history over the
// trailing three calendar months.
type RewardService interface {
	AllRewards(ctx context.Context) ([]*domain.CustomerRewards, error)
	// CustomerRewards fails with domain.ErrCustomerNotFound when the customer
	// has no transactions in the window.
	CustomerRewards(ctx context.Context, customerID int) (*domain.CustomerRewards, error)
}
