package ports

import (
	"context"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// The existence checks back the registration fast path only; the store's own
// unique constraints remain the real uniqueness invariant, and Create must
// translate a constraint violation into domain.ErrUserExists or
// domain.ErrEmailExists.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateLastLogin records a successful login timestamp. Callers treat
	// failures as non-fatal.
	UpdateLastLogin(ctx context.Context, username string) error
}
