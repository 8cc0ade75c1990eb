package memdb

import (
	"context"
	"errors"
	"testing"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{Username: "alice", PasswordHash: "$2a$10$fakehash"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Username = %q, want alice", got.Username)
	}
	if got.PasswordHash != "$2a$10$fakehash" {
		t.Errorf("PasswordHash = %q, want stored hash", got.PasswordHash)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, &models.User{Username: "alice", PasswordHash: "h1"}); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	err := store.CreateUser(ctx, &models.User{Username: "alice", PasswordHash: "h2"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Errorf("duplicate CreateUser = %v, want ErrAlreadyExists", err)
	}

	// First write wins.
	got, err := store.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.PasswordHash != "h1" {
		t.Errorf("PasswordHash = %q, want h1", got.PasswordHash)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetUser(context.Background(), "nobody")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetUser = %v, want ErrNotFound", err)
	}
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, &models.User{Username: "Alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := store.GetUser(ctx, "alice"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetUser(alice) = %v, want ErrNotFound for different casing", err)
	}
}

func TestReplaceAndGetPortfolio(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	holdings := []models.Holding{
		{Symbol: "AAPL", Quantity: 10},
		{Symbol: "GOOG", Quantity: 5},
	}
	if err := store.Replace(ctx, "alice", holdings); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	p, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("Username = %q, want alice", p.Username)
	}
	if len(p.Holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(p.Holdings))
	}
	if p.Holdings[0].Symbol != "AAPL" || p.Holdings[1].Symbol != "GOOG" {
		t.Errorf("holdings order not preserved: %+v", p.Holdings)
	}
	if p.ImportedAt.IsZero() {
		t.Error("ImportedAt was not set")
	}
}

func TestReplaceOverwritesPortfolio(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, "alice", []models.Holding{{Symbol: "AAPL", Quantity: 10}}); err != nil {
		t.Fatalf("first Replace failed: %v", err)
	}
	if err := store.Replace(ctx, "alice", []models.Holding{{Symbol: "MSFT", Quantity: 3}}); err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}

	p, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.Holdings) != 1 || p.Holdings[0].Symbol != "MSFT" {
		t.Errorf("holdings = %+v, want only MSFT", p.Holdings)
	}
}

func TestGetPortfolioNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nobody")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
}

func TestUserAndPortfolioKeysDoNotCollide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, &models.User{Username: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.Replace(ctx, "alice", []models.Holding{{Symbol: "AAPL", Quantity: 1}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if _, err := store.GetUser(ctx, "alice"); err != nil {
		t.Errorf("GetUser after Replace failed: %v", err)
	}
	if _, err := store.Get(ctx, "alice"); err != nil {
		t.Errorf("Get after CreateUser failed: %v", err)
	}
}

func TestPortfoliosArePerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, "alice", []models.Holding{{Symbol: "AAPL", Quantity: 1}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if _, err := store.Get(ctx, "bob"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Get(bob) = %v, want ErrNotFound", err)
	}
}
