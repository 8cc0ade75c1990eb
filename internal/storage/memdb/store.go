// Package memdb implements the Folio stores using BadgerHold in in-memory
// mode. State is process-lifetime only: a restart discards all accounts and
// portfolios, which is the intended behavior for this service.
package memdb

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Store implements interfaces.CredentialStore and interfaces.PortfolioStore
// on a single BadgerHold instance. Badger transactions give per-key atomic
// put/get, so no additional locking is needed.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens an in-memory BadgerHold store.
func NewStore(logger *common.Logger) (*Store, error) {
	opts := badgerhold.DefaultOptions
	opts.InMemory = true
	opts.Dir = ""
	opts.ValueDir = ""
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}
	logger.Info().Msg("In-memory store opened")
	return &Store{db: db, logger: logger}, nil
}

// --- Credential store ---

func (s *Store) GetUser(_ context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.Get(username, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("user '%s': %w", username, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", username, err)
	}
	return &user, nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := s.db.Insert(user.Username, user); err != nil {
		if err == badgerhold.ErrKeyExists {
			return fmt.Errorf("user '%s': %w", user.Username, common.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user '%s': %w", user.Username, err)
	}
	s.logger.Debug().Str("username", user.Username).Msg("User created")
	return nil
}

// --- Portfolio store ---

// portfolioKeyPrefix keeps portfolio keys from colliding with usernames in
// the shared keyspace.
const portfolioKeyPrefix = "portfolio\x00"

func (s *Store) Replace(_ context.Context, username string, holdings []models.Holding) error {
	p := &models.Portfolio{
		Username:   username,
		Holdings:   holdings,
		ImportedAt: time.Now(),
	}
	if err := s.db.Upsert(portfolioKeyPrefix+username, p); err != nil {
		return fmt.Errorf("failed to replace portfolio for '%s': %w", username, err)
	}
	s.logger.Debug().
		Str("username", username).
		Int("holdings", len(holdings)).
		Msg("Portfolio replaced")
	return nil
}

func (s *Store) Get(_ context.Context, username string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.db.Get(portfolioKeyPrefix+username, &p); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("portfolio for '%s': %w", username, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get portfolio for '%s': %w", username, err)
	}
	return &p, nil
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure Store implements both storage contracts
var (
	_ interfaces.CredentialStore = (*Store)(nil)
	_ interfaces.PortfolioStore  = (*Store)(nil)
)
