package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// fakePortfolioStore records Replace calls for tests.
type fakePortfolioStore struct {
	portfolios map[string][]models.Holding
	replaces   int
}

func newFakePortfolioStore() *fakePortfolioStore {
	return &fakePortfolioStore{portfolios: make(map[string][]models.Holding)}
}

func (f *fakePortfolioStore) Replace(_ context.Context, username string, holdings []models.Holding) error {
	f.replaces++
	f.portfolios[username] = holdings
	return nil
}

func (f *fakePortfolioStore) Get(_ context.Context, username string) (*models.Portfolio, error) {
	holdings, ok := f.portfolios[username]
	if !ok {
		return nil, fmt.Errorf("portfolio for '%s': %w", username, common.ErrNotFound)
	}
	return &models.Portfolio{Username: username, Holdings: holdings}, nil
}

func (f *fakePortfolioStore) Close() error { return nil }

func TestParseText(t *testing.T) {
	svc := NewService(newFakePortfolioStore(), common.NewSilentLogger())

	tests := []struct {
		name    string
		text    string
		want    []models.Holding
		wantErr bool
	}{
		{
			name: "basic",
			text: "AAPL,10\nGOOG,5",
			want: []models.Holding{{Symbol: "AAPL", Quantity: 10}, {Symbol: "GOOG", Quantity: 5}},
		},
		{
			name: "blank lines and whitespace",
			text: "\n  AAPL , 10 \n\nmsft,2\r\n",
			want: []models.Holding{{Symbol: "AAPL", Quantity: 10}, {Symbol: "MSFT", Quantity: 2}},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name:    "missing comma",
			text:    "AAPL 10",
			wantErr: true,
		},
		{
			name:    "non-integer quantity",
			text:    "AAPL,ten",
			wantErr: true,
		},
		{
			name:    "zero quantity",
			text:    "AAPL,0",
			wantErr: true,
		},
		{
			name:    "negative quantity",
			text:    "AAPL,-3",
			wantErr: true,
		},
		{
			name:    "empty symbol",
			text:    ",10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Parse(models.ImportRequest{Format: models.ImportFormatText, Text: tt.text})
			if tt.wantErr {
				if !errors.Is(err, common.ErrMalformedLine) {
					t.Fatalf("Parse = %v, want ErrMalformedLine", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d holdings, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("holding[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseTextErrorNamesLine(t *testing.T) {
	svc := NewService(newFakePortfolioStore(), common.NewSilentLogger())

	_, err := svc.Parse(models.ImportRequest{
		Format: models.ImportFormatText,
		Text:   "AAPL,10\nBADLINE",
	})
	if err == nil {
		t.Fatal("Parse accepted a malformed line")
	}
	if !strings.Contains(err.Error(), "invalid format in line: BADLINE") {
		t.Errorf("error %q does not name the offending line", err.Error())
	}
}

func TestParseTable(t *testing.T) {
	svc := NewService(newFakePortfolioStore(), common.NewSilentLogger())

	got, err := svc.Parse(models.ImportRequest{
		Format: models.ImportFormatTable,
		Rows: []models.HoldingRow{
			{Symbol: " aapl ", Quantity: 10},
			{Symbol: "GOOG", Quantity: 5},
		},
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []models.Holding{{Symbol: "AAPL", Quantity: 10}, {Symbol: "GOOG", Quantity: 5}}
	if len(got) != len(want) {
		t.Fatalf("got %d holdings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("holding[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseTableBadRow(t *testing.T) {
	svc := NewService(newFakePortfolioStore(), common.NewSilentLogger())

	tests := []struct {
		name string
		rows []models.HoldingRow
	}{
		{"zero quantity", []models.HoldingRow{{Symbol: "AAPL", Quantity: 0}}},
		{"empty symbol", []models.HoldingRow{{Symbol: "", Quantity: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(models.ImportRequest{Format: models.ImportFormatTable, Rows: tt.rows})
			if !errors.Is(err, common.ErrMalformedRow) {
				t.Errorf("Parse = %v, want ErrMalformedRow", err)
			}
		})
	}
}

func TestParseUnknownFormat(t *testing.T) {
	svc := NewService(newFakePortfolioStore(), common.NewSilentLogger())

	_, err := svc.Parse(models.ImportRequest{Format: "csv"})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("Parse = %v, want ErrInvalidInput", err)
	}
}

func TestImportAllOrNothing(t *testing.T) {
	store := newFakePortfolioStore()
	svc := NewService(store, common.NewSilentLogger())
	ctx := context.Background()

	// Seed an existing portfolio.
	if _, err := svc.Import(ctx, "alice", models.ImportRequest{
		Format: models.ImportFormatText,
		Text:   "AAPL,10",
	}); err != nil {
		t.Fatalf("seed Import failed: %v", err)
	}

	// A batch with one bad line must not touch the store.
	_, err := svc.Import(ctx, "alice", models.ImportRequest{
		Format: models.ImportFormatText,
		Text:   "GOOG,5\nBAD",
	})
	if !errors.Is(err, common.ErrMalformedLine) {
		t.Fatalf("Import = %v, want ErrMalformedLine", err)
	}
	if store.replaces != 1 {
		t.Errorf("Replace called %d times, want 1 (failed import must not commit)", store.replaces)
	}

	p, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.Holdings) != 1 || p.Holdings[0].Symbol != "AAPL" {
		t.Errorf("prior portfolio was modified: %+v", p.Holdings)
	}
}

func TestImportReplacesEntirePortfolio(t *testing.T) {
	store := newFakePortfolioStore()
	svc := NewService(store, common.NewSilentLogger())
	ctx := context.Background()

	if _, err := svc.Import(ctx, "alice", models.ImportRequest{
		Format: models.ImportFormatText,
		Text:   "AAPL,10\nGOOG,5",
	}); err != nil {
		t.Fatalf("first Import failed: %v", err)
	}
	if _, err := svc.Import(ctx, "alice", models.ImportRequest{
		Format: models.ImportFormatText,
		Text:   "MSFT,7",
	}); err != nil {
		t.Fatalf("second Import failed: %v", err)
	}

	p, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.Holdings) != 1 || p.Holdings[0].Symbol != "MSFT" {
		t.Errorf("portfolio = %+v, want only MSFT (import replaces, not merges)", p.Holdings)
	}
}
