// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// CredentialStore manages user accounts keyed by username.
// Implementations must provide per-key atomic put/get: a concurrent reader
// never observes a partially written user record.
type CredentialStore interface {
	// GetUser returns the stored user or common.ErrNotFound.
	GetUser(ctx context.Context, username string) (*models.User, error)
	// CreateUser stores a new user or fails with common.ErrAlreadyExists.
	CreateUser(ctx context.Context, user *models.User) error
	Close() error
}

// PortfolioStore manages portfolios keyed by username.
type PortfolioStore interface {
	// Replace overwrites any existing portfolio for the user. The holdings
	// list may be empty; the operation is idempotent.
	Replace(ctx context.Context, username string, holdings []models.Holding) error
	// Get returns the current portfolio or common.ErrNotFound if no import
	// has ever occurred for the user.
	Get(ctx context.Context, username string) (*models.Portfolio, error)
	Close() error
}
