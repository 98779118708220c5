package ports

import (
	"context"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

// RegisterInput carries a registration request into the auth service.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	// Role is optional; empty defaults to domain.RoleUser.
	Role string
}

// AuthResult is returned by both Login and Register.
type AuthResult struct {
	Token     string
	Username  string
	Role      domain.Role
	ExpiresIn int64 // seconds the token remains valid
	Message   string
}

// AuthService implements the login and registration flows plus token
// validation for callers that hold a raw token string.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	// ValidateToken never returns an error: every codec failure collapses to
	// a false result with a short reason ("expired" or "invalid").
	ValidateToken(token string) (valid bool, reason string)
	UsernameFromToken(token string) (string, error)
}
