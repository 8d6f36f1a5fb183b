package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jwwisniewski/cashcard-spring-academy/config"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/auth"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/db"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/handlers"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/services"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cardRepo := store.NewCashCardRepository(dbConn)
	cardService := services.NewCashCardService(cardRepo)

	creds, err := credentialStore(cfg, dbConn)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	authMiddleware := handlers.RequireCardOwner(creds)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/cashcards", func(r chi.Router) {
		handlers.CashCardRouter(r, cardService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// credentialStore picks the configured credential backend. The static
// set serves development; the users table serves real deployments.
func credentialStore(cfg config.Config, dbConn *sql.DB) (auth.CredentialStore, error) {
	switch cfg.AuthBackend {
	case config.AuthBackendPostgres:
		return auth.NewDBStore(store.NewUserRepository(dbConn)), nil
	case config.AuthBackendStatic, "":
		static, err := auth.NewStaticStore(auth.DevUsers()...)
		if err != nil {
			return nil, err
		}
		return static, nil
	default:
		return nil, fmt.Errorf("unknown auth backend %q", cfg.AuthBackend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
