// Package httpapi exposes the CRM services over a JSON HTTP API.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Default server configuration values.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	defaultReadTimeout     = 15 * time.Second
)

// Services bundles the driving ports the API is built on.
type Services struct {
	Users         driving.UserService
	Companies     driving.CompanyService
	Contacts      driving.ContactService
	Interactions  driving.InteractionService
	Notes         driving.NoteService
	Notifications driving.NotificationService
	Threads       driving.ThreadService
	Search        driving.SearchService
	Assistant     driving.AssistantService
	Stats         driving.StatsService
	Keepalive     driving.KeepaliveService
}

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (default: :8080).
	Addr string

	// WebhookSecret signs identity-provider webhook payloads. Empty
	// disables the webhook endpoint.
	WebhookSecret string

	// KeepaliveSecret, when set, is required in the X-Keepalive-Secret
	// header of keepalive requests.
	KeepaliveSecret string
}

// Server is the HTTP driving adapter.
type Server struct {
	cfg      Config
	services Services
	verifier driven.IdentityVerifier
	http     *http.Server
}

// NewServer assembles the router and returns a server ready to run.
func NewServer(cfg Config, verifier driven.IdentityVerifier, services Services) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	s := &Server{
		cfg:      cfg,
		services: services,
		verifier: verifier,
	}
	s.http = &http.Server{
		Addr:        cfg.Addr,
		Handler:     s.router(),
		ReadTimeout: defaultReadTimeout,
	}
	return s
}

// Handler returns the assembled router, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// router wires middleware and routes.
func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.GET("/keepalive", s.handleKeepalive)
	api.HEAD("/keepalive", s.handleKeepalive)
	if s.cfg.WebhookSecret != "" {
		api.POST("/webhooks/identity", s.handleIdentityWebhook)
	}

	authed := api.Group("", s.authMiddleware())

	authed.GET("/contacts", s.handleListContacts)
	authed.POST("/contacts", s.handleCreateContact)
	authed.GET("/contacts/:id", s.handleGetContact)
	authed.PATCH("/contacts/:id", s.handleUpdateContact)
	authed.DELETE("/contacts/:id", s.handleDeleteContact)

	authed.GET("/companies", s.handleListCompanies)
	authed.POST("/companies", s.handleCreateCompany)
	authed.GET("/companies/:id", s.handleGetCompany)
	authed.PATCH("/companies/:id", s.handleUpdateCompany)
	authed.DELETE("/companies/:id", s.handleDeleteCompany)

	authed.GET("/interactions", s.handleListInteractions)
	authed.POST("/interactions", s.handleCreateInteraction)
	authed.GET("/interactions/:id", s.handleGetInteraction)
	authed.PATCH("/interactions/:id", s.handleUpdateInteraction)
	authed.DELETE("/interactions/:id", s.handleDeleteInteraction)

	authed.GET("/notes", s.handleListNotes)
	authed.POST("/notes", s.handleCreateNote)
	authed.GET("/notes/:id", s.handleGetNote)
	authed.PATCH("/notes/:id", s.handleUpdateNote)
	authed.DELETE("/notes/:id", s.handleDeleteNote)

	authed.GET("/notifications", s.handleListNotifications)
	authed.POST("/notifications", s.handleCreateNotification)
	authed.PATCH("/notifications/:id", s.handleUpdateNotification)
	authed.POST("/notifications/:id/complete", s.handleCompleteNotification)
	authed.DELETE("/notifications/:id", s.handleDeleteNotification)

	authed.GET("/search", s.handleHybridSearch)
	authed.GET("/search/fuzzy", s.handleFuzzySearch)
	authed.GET("/search/semantic", s.handleSemanticSearch)
	authed.GET("/search/companies", s.handleSearchCompanies)

	authed.GET("/stats", s.handleStats)

	authed.GET("/threads", s.handleListThreads)
	authed.GET("/threads/:id", s.handleGetThread)
	authed.PATCH("/threads/:id", s.handleRenameThread)
	authed.DELETE("/threads/:id", s.handleDeleteThread)

	authed.POST("/chat", s.handleChat)
	authed.POST("/chat/stream", s.handleChatStream)

	return r
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
