package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"profitfy/internal/model"
	"profitfy/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email, soft-deleted user, and wrong password all map here so a
	// caller cannot probe which addresses are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDependencyUnavailable is returned when the user store or the token
	// signer fails. It is propagated, never retried here.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// PasswordVerifier compares a plaintext password against a stored hash.
type PasswordVerifier interface {
	Compare(password, hash string) bool
	DummyHash() string
}

// TokenSigner mints signed, expiring tokens for a user identity.
type TokenSigner interface {
	GenerateToken(userID uint) (string, error)
}

// SessionService turns a credential pair into an authenticated session.
type SessionService interface {
	Authenticate(ctx context.Context, email, password string) (user *model.User, token string, err error)
}

type sessionService struct {
	users     repository.UserRepository
	verifier  PasswordVerifier
	signer    TokenSigner
	dummyHash string
}

// NewSessionService creates a new session service.
func NewSessionService(users repository.UserRepository, verifier PasswordVerifier, signer TokenSigner) SessionService {
	return &sessionService{
		users:    users,
		verifier: verifier,
		signer:   signer,
		// Precomputed so the miss path pays no extra hashing cost up front.
		dummyHash: verifier.DummyHash(),
	}
}

// Authenticate looks the user up by email, verifies the password and signs a
// token. The store excludes soft-deleted users, so they fail the same way an
// unknown email does.
func (s *sessionService) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)

	targetHash := s.dummyHash
	exists := false
	switch {
	case err == nil:
		targetHash = user.PasswordHash
		exists = true
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Keep targetHash as the dummy: the password comparison still runs so
		// a lookup miss and a wrong password take comparable time.
	default:
		return nil, "", fmt.Errorf("%w: find user by email: %v", ErrDependencyUnavailable, err)
	}

	match := s.verifier.Compare(password, targetHash)
	if !exists || !match {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.signer.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: sign token: %v", ErrDependencyUnavailable, err)
	}

	return user, token, nil
}
