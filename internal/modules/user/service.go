// README: Account service: registration, login, and password reset flows.
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/types"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBlocked            = errors.New("user blocked")
	ErrNotFound           = errors.New("user not found")
)

type Service struct {
	store  Store
	tokens *auth.TokenService
	resets auth.ResetTokenStore
}

func NewService(store Store, tokens *auth.TokenService, resets auth.ResetTokenStore) *Service {
	return &Service{store: store, tokens: tokens, resets: resets}
}

// AuthResult pairs a fresh credential with the public profile.
type AuthResult struct {
	Token string
	User  PublicProfile
}

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (AuthResult, error) {
	name := strings.TrimSpace(cmd.Name)
	email := normalizeEmail(cmd.Email)
	if name == "" || email == "" || cmd.Password == "" {
		return AuthResult{}, ErrBadRequest
	}
	role, ok := auth.ParseRole(strings.ToLower(cmd.Role))
	if !ok {
		return AuthResult{}, ErrBadRequest
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return AuthResult{}, err
	}
	u := &User{
		ID:           types.ID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return AuthResult{}, err
	}
	return s.issueFor(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrBadRequest
	}
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return AuthResult{}, ErrBlocked
	}
	return s.issueFor(u)
}

// ForgotPassword issues a reset token for the account. A missing account
// yields an empty token and no error so callers can answer generically
// without leaking which emails exist. Delivering the token is the caller's
// concern.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrBadRequest
	}
	if _, err := s.store.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.resets.Issue(ctx, email)
}

// ResetPassword consumes the reset token and installs the new password.
// The consume is atomic: a second use of the same token fails.
func (s *Service) ResetPassword(ctx context.Context, email, token, password string) error {
	email = normalizeEmail(email)
	if email == "" || token == "" || password == "" {
		return ErrBadRequest
	}
	if err := s.resets.Consume(ctx, email, token); err != nil {
		return err
	}
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.ErrInvalidResetToken
		}
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, u.ID, hash)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) SetAvailability(ctx context.Context, driverID types.ID, available bool) error {
	return s.store.SetDriverAvailability(ctx, driverID, available)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}

func (s *Service) CountByRole(ctx context.Context, role auth.Role) (int, error) {
	return s.store.CountByRole(ctx, role)
}

func (s *Service) issueFor(u *User) (AuthResult, error) {
	token, err := s.tokens.Issue(auth.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: u.Public()}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
