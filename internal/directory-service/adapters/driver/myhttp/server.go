package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"membro-hub/internal/config"
	"membro-hub/internal/directory-service/adapters/driven/db"
	"membro-hub/internal/directory-service/adapters/driven/memory"
	"membro-hub/internal/directory-service/adapters/driven/notification"
	"membro-hub/internal/directory-service/adapters/driver/myhttp/handle"
	"membro-hub/internal/directory-service/adapters/driver/myhttp/middleware"
	"membro-hub/internal/directory-service/core/ports/driven"
	"membro-hub/internal/directory-service/core/service"
	"membro-hub/internal/mylogger"
)

const WaitTime = 10

type Server struct {
	mux      *http.ServeMux
	cfg      *config.Config
	srv      *http.Server
	mylog    mylogger.Logger
	db       *db.DB
	notifier driven.IResetNotifier
	memory   bool
	ctx      context.Context
	appCtx   context.Context
	mu       sync.Mutex
}

// NewServer builds a directory server. When memory is true it runs entirely
// in-process (map-backed repositories, reset codes written to the log)
// without Postgres or RabbitMQ.
func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config, memory bool) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		memory: memory,
		mux:    http.NewServeMux(),
	}
}

// Run initializes backends and routes and starts listening. It returns when
// the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	var userRepo driven.IUserRepo
	var membroRepo driven.IMembroRepo

	if s.memory {
		userRepo = memory.NewUserRepo()
		membroRepo = memory.NewMembroRepo()
		s.notifier = notification.NewLogNotifier(s.mylog)
		if err := service.SeedDemo(s.ctx, membroRepo, s.mylog); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		mylog.Info("running with in-memory backends")
	} else {
		if err := db.RunMigrations(s.ctx, s.cfg.DB.DSN()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		database, err := db.New(s.ctx, s.cfg.DB, mylog)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
		mylog.Info("Successful database connection")

		notifier, err := notification.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		s.notifier = notifier
		mylog.Info("Successful message broker connection")

		userRepo = db.NewUserRepo(database)
		membroRepo = db.NewMembroRepo(database)
	}

	s.Configure(userRepo, membroRepo)

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.DirectoryServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.DirectoryServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if closer, ok := s.notifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.mylog.Error("Failed to close message broker", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure sets up the HTTP handlers for the auth and roster APIs.
func (s *Server) Configure(userRepo driven.IUserRepo, membroRepo driven.IMembroRepo) {
	// services
	authService := service.NewAuthService(s.appCtx, s.cfg, userRepo, s.notifier, s.mylog)
	membroService := service.NewMembroService(s.appCtx, membroRepo, s.mylog)

	// handlers
	authHandler := handle.NewAuthHandler(authService, s.mylog)
	membroHandler := handle.NewMembroHandler(membroService, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// public routes
	s.mux.Handle("POST /auth/login", authHandler.Login())
	s.mux.Handle("POST /auth/forgot-password", authHandler.ForgotPassword())
	s.mux.Handle("POST /auth/reset-password", authHandler.ResetPassword())

	// authenticated routes
	s.mux.Handle("GET /auth/me", authMiddleware.Wrap(authHandler.Me()))
	s.mux.Handle("POST /auth/change-password", authMiddleware.Wrap(authHandler.ChangePassword()))
	s.mux.Handle("GET /membros", authMiddleware.Wrap(membroHandler.List()))
	s.mux.Handle("GET /membros/aggregate", authMiddleware.Wrap(membroHandler.Aggregate()))
	s.mux.Handle("GET /membros/stats", authMiddleware.Wrap(membroHandler.Stats()))
	s.mux.Handle("GET /membros/{id}", authMiddleware.Wrap(membroHandler.Get()))

	// admin-only mutations
	s.mux.Handle("POST /membros", authMiddleware.WrapAdmin(membroHandler.Create()))
	s.mux.Handle("PUT /membros/{id}", authMiddleware.WrapAdmin(membroHandler.Update()))
}
