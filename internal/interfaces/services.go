package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// CredentialService handles registration and password verification.
type CredentialService interface {
	Register(ctx context.Context, username, password string) error
	// Verify returns the identity on success, common.ErrNotFound for an
	// unknown user, or common.ErrUnauthorized on a hash mismatch.
	Verify(ctx context.Context, username, password string) (string, error)
}

// TokenService issues and verifies stateless signed session tokens.
type TokenService interface {
	Issue(identity string) (string, error)
	// Verify returns the embedded identity, or one of the token error
	// categories (ErrTokenMalformed, ErrTokenExpired, ErrTokenSignature).
	Verify(tokenString string) (string, error)
}

// ImportService parses raw portfolio uploads into validated holdings.
// Parsing is all-or-nothing: a single malformed line or row fails the
// whole import and nothing is returned.
type ImportService interface {
	Parse(req models.ImportRequest) ([]models.Holding, error)
	Import(ctx context.Context, username string, req models.ImportRequest) ([]models.Holding, error)
}

// RecommendService ranks a user's holdings by today's percent change.
type RecommendService interface {
	Recommend(ctx context.Context, username string) ([]models.Recommendation, error)
}
