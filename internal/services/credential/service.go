// Package credential handles account registration and password verification.
package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// bcryptCost balances hashing strength against login latency.
const bcryptCost = 10

// Service implements CredentialService on top of a CredentialStore.
// Only bcrypt hashes are ever stored; the equality check is the sole
// operation performed on a stored credential.
type Service struct {
	store  interfaces.CredentialStore
	logger *common.Logger
}

// NewService creates a new credential service.
func NewService(store interfaces.CredentialStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ValidateUsername checks that a username is safe for storage.
// Rejects empty, too long, and control characters. Usernames are
// case-sensitive and immutable once created.
func ValidateUsername(username string) string {
	if username == "" {
		return "username is required"
	}
	if len(username) > 128 {
		return "username must be 128 characters or fewer"
	}
	for _, c := range username {
		if c < 0x20 || c == 0x7f {
			return "username contains invalid control characters"
		}
	}
	return ""
}

// Register creates a new account, failing with ErrAlreadyExists when the
// username is taken.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if msg := ValidateUsername(username); msg != "" {
		return fmt.Errorf("%s: %w", msg, common.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("password is required: %w", common.ErrInvalidInput)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("User registered")
	return nil
}

// Verify checks a password against the stored hash and returns the identity.
func (s *Service) Verify(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), truncate(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", fmt.Errorf("password mismatch for '%s': %w", username, common.ErrUnauthorized)
		}
		return "", fmt.Errorf("failed to compare password for '%s': %w", username, err)
	}
	return user.Username, nil
}

// hashPassword computes a bcrypt hash, truncating to bcrypt's 72-byte input limit.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}

// Ensure Service implements CredentialService
var _ interfaces.CredentialService = (*Service)(nil)
