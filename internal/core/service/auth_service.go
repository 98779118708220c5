package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/password"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
	"github.com/rewardsystem/rewards-api/internal/core/token"
)

// basic address shape only; real deliverability is not this service's problem
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// AuthService implements credential verification, registration, and token
// validation. It is stateless apart from the injected collaborators.
type AuthService struct {
	users  ports.UserRepository
	hasher *password.Hasher
	codec  *token.Codec
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *password.Hasher, codec *token.Codec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec, log: log}
}

// Login verifies a username/password pair and issues a token. A missing user,
// a disabled account, and a wrong password all fail with the same
// domain.ErrInvalidCredentials so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, pass string) (*ports.AuthResult, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.Validation("Username is required")
	}
	if strings.TrimSpace(pass) == "" {
		return nil, domain.Validation("Password is required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Enabled {
		s.log.Warn().Str("username", username).Msg("login attempt on disabled account")
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	// best-effort: a failed timestamp write must not fail the login
	if err := s.users.UpdateLastLogin(ctx, user.Username); err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("failed to record last login")
	}

	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.AuthResult{
		Token:     signed,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresIn: int64(s.codec.TTL().Seconds()),
		Message:   "Login successful",
	}, nil
}

// Register validates the request, creates the account, and issues a token
// for the new user. Validation is short-circuit: the first failing rule's
// message is returned.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	// fast-path checks; the unique indexes on the store remain the real
	// uniqueness guarantee
	if exists, err := s.users.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrUserExists
	}
	if exists, err := s.users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrEmailExists
	}

	role := domain.RoleUser
	if in.Role != "" {
		role = domain.Role(in.Role)
		if !role.IsValid() {
			return nil, domain.Validation("invalid role")
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
	})
	if err != nil {
		return nil, err
	}

	signed, err := s.codec.Issue(created.Username)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")

	return &ports.AuthResult{
		Token:     signed,
		Username:  created.Username,
		Role:      created.Role,
		ExpiresIn: int64(s.codec.TTL().Seconds()),
		Message:   "User registered successfully",
	}, nil
}

// ValidateToken collapses every codec failure into a definite invalid
// outcome; codec error kinds never propagate past this boundary.
func (s *AuthService) ValidateToken(tok string) (bool, string) {
	if _, err := s.codec.Parse(tok); err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return false, "expired"
		}
		return false, "invalid"
	}
	return true, "valid"
}

// UsernameFromToken returns the subject of a valid token.
func (s *AuthService) UsernameFromToken(tok string) (string, error) {
	return s.codec.Subject(tok)
}

func validateRegistration(in ports.RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return domain.Validation("Username is required")
	case len(in.Username) < 3:
		return domain.Validation("Username must be at least 3 characters")
	case strings.TrimSpace(in.Email) == "":
		return domain.Validation("Email is required")
	case !emailPattern.MatchString(in.Email):
		return domain.Validation("Email is invalid")
	case strings.TrimSpace(in.Password) == "":
		return domain.Validation("Password is required")
	case len(in.Password) < 6:
		return domain.Validation("Password must be at least 6 characters")
	case in.Password != in.ConfirmPassword:
		return domain.Validation("Passwords do not match")
	}
	return nil
}
