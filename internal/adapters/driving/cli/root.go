// Package cli wires the application together behind a cobra command
// tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/coastline-labs/anchor/internal/adapters/driven/ai"
	"github.com/coastline-labs/anchor/internal/adapters/driven/identity"
	"github.com/coastline-labs/anchor/internal/adapters/driven/storage/sqlite"
	"github.com/coastline-labs/anchor/internal/config"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
	"github.com/coastline-labs/anchor/internal/core/services"
	"github.com/coastline-labs/anchor/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "anchor",
	Short: "Anchor is a personal CRM backend",
	Long: `Anchor keeps contacts, companies, interactions and follow-ups in a
local SQLite database and serves them over an HTTP API, with hybrid
fuzzy/semantic search and an AI assistant on top.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.anchor/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app is everything a command needs to run: the open store and the
// assembled services.
type app struct {
	cfg   *config.Config
	store *sqlite.Store

	users         *services.UserService
	companies     *services.CompanyService
	contacts      *services.ContactService
	interactions  *services.InteractionService
	notes         *services.NoteService
	notifications *services.NotificationService
	threads       *services.ThreadService
	search        *services.SearchService
	indexer       *services.IndexerService
	assistant     *services.AssistantService
	stats         *services.StatsService
	keepalive     *services.KeepaliveService

	verifier driven.IdentityVerifier
}

// newApp loads config, sets up logging, opens storage and builds the
// service graph. AI services are optional; when unconfigured or
// unreachable the app runs with lexical search only and no assistant.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	aiSettings := ai.Settings{
		APIKey:              cfg.AI.APIKey,
		BaseURL:             cfg.AI.BaseURL,
		ChatModel:           cfg.AI.ChatModel,
		EmbeddingModel:      cfg.AI.EmbeddingModel,
		EmbeddingDimensions: cfg.AI.EmbeddingDimensions,
	}
	embedder, err := ai.CreateAndValidateEmbeddingService(aiSettings)
	if err != nil {
		slog.Warn("embedding service unavailable, semantic search disabled", "error", err)
		embedder = nil
	}
	llm, err := ai.CreateAndValidateCompletionService(aiSettings)
	if err != nil {
		slog.Warn("completion service unavailable, assistant disabled", "error", err)
		llm = nil
	}

	a := &app{cfg: cfg, store: store}

	var indexer *services.IndexerService
	if embedder != nil {
		indexer = services.NewIndexerService(store.ContactStore(), store.NoteStore(), store.EmbeddingStore(), embedder)
	}
	a.indexer = indexer

	a.users = services.NewUserService(store.UserStore())
	a.companies = services.NewCompanyService(store.CompanyStore())
	a.contacts = services.NewContactService(store.ContactStore(), store.CompanyStore(), indexerOrNil(indexer))
	a.interactions = services.NewInteractionService(store.InteractionStore(), store.ContactStore())
	a.notes = services.NewNoteService(store.NoteStore(), store.ContactStore(), indexerOrNil(indexer))
	a.notifications = services.NewNotificationService(store.NotificationStore(), store.ContactStore())
	a.threads = services.NewThreadService(store.ThreadStore())
	a.search = services.NewSearchService(store.ContactStore(), store.CompanyStore(), store.EmbeddingStore(), embedder)
	a.assistant = services.NewAssistantService(store.ThreadStore(), llm, a.search, a.contacts, a.companies, a.interactions, a.notes, a.notifications)
	a.stats = services.NewStatsService(store.ContactStore(), store.CompanyStore(), store.InteractionStore(), store.NoteStore(), store.NotificationStore())
	a.keepalive = services.NewKeepaliveService(store, 0)

	if cfg.Identity.BaseURL != "" {
		verifier, err := identity.NewVerifier(identity.Config{BaseURL: cfg.Identity.BaseURL})
		if err != nil {
			store.Close()
			return nil, err
		}
		a.verifier = verifier
	}

	return a, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("closing store", "error", err)
	}
}

// indexerOrNil keeps the typed-nil from leaking into an interface
// value, which would defeat the services' nil checks.
func indexerOrNil(indexer *services.IndexerService) driving.IndexerService {
	if indexer == nil {
		return nil
	}
	return indexer
}
