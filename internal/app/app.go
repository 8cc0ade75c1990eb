// Package app wires configuration, storage, clients, and services together.
package app

import (
	"fmt"
	"os"

	"github.com/bobmcallan/folio/internal/clients/alphavantage"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/credential"
	"github.com/bobmcallan/folio/internal/services/importer"
	"github.com/bobmcallan/folio/internal/services/recommend"
	"github.com/bobmcallan/folio/internal/services/token"
	"github.com/bobmcallan/folio/internal/storage/memdb"
)

// App holds all initialized services and clients. It is the shared core
// behind cmd/folio-server.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       *memdb.Store
	QuoteClient interfaces.QuoteClient
	Credentials interfaces.CredentialService
	Tokens      interfaces.TokenService
	Importer    interfaces.ImportService
	Recommender interfaces.RecommendService
}

// NewApp initializes storage, clients, and services.
// configPath may be empty, in which case FOLIO_CONFIG and defaults apply.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	store, err := memdb.NewStore(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	avCfg := config.Clients.AlphaVantage
	if avCfg.APIKey == "" {
		logger.Warn().Msg("Alpha Vantage API key not configured - quotes and recommendations will be unavailable")
	}
	quoteClient := alphavantage.NewClient(avCfg.APIKey,
		alphavantage.WithBaseURL(avCfg.BaseURL),
		alphavantage.WithRateLimit(avCfg.RateLimit),
		alphavantage.WithTimeout(avCfg.GetTimeout()),
		alphavantage.WithLogger(logger),
	)

	a := &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		QuoteClient: quoteClient,
		Credentials: credential.NewService(store, logger),
		Tokens:      token.NewService(config.Auth.JWTSecret, config.Auth.GetTokenExpiry()),
		Importer:    importer.NewService(store, logger),
		Recommender: recommend.NewService(store, quoteClient, logger),
	}

	logger.Info().Str("env", config.Environment).Msg("App initialized")
	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close store")
		}
		a.Store = nil
	}
}
