// Package app wires configuration, storage, services, the job runner and
// the HTTP server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/teamledger/teamledger-backend/internal/adapter/postgres"
	apikeyrepo "github.com/teamledger/teamledger-backend/internal/adapter/postgres/apikey"
	jobrepo "github.com/teamledger/teamledger-backend/internal/adapter/postgres/job"
	noterepo "github.com/teamledger/teamledger-backend/internal/adapter/postgres/note"
	orgrepo "github.com/teamledger/teamledger-backend/internal/adapter/postgres/organization"
	projectrepo "github.com/teamledger/teamledger-backend/internal/adapter/postgres/project"
	usagerepo "github.com/teamledger/teamledger-backend/internal/adapter/postgres/usage"
	userrepo "github.com/teamledger/teamledger-backend/internal/adapter/postgres/user"
	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/config"
	"github.com/teamledger/teamledger-backend/internal/domain"
	apikeysvc "github.com/teamledger/teamledger-backend/internal/service/apikey"
	authsvc "github.com/teamledger/teamledger-backend/internal/service/auth"
	jobsvc "github.com/teamledger/teamledger-backend/internal/service/job"
	notesvc "github.com/teamledger/teamledger-backend/internal/service/note"
	orgsvc "github.com/teamledger/teamledger-backend/internal/service/organization"
	projectsvc "github.com/teamledger/teamledger-backend/internal/service/project"
	usagesvc "github.com/teamledger/teamledger-backend/internal/service/usage"
	"github.com/teamledger/teamledger-backend/internal/transport/middleware"
	"github.com/teamledger/teamledger-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, wires repositories, services, the job runner and the
// HTTP server, then blocks until shutdown.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	orgs := orgrepo.New(pool)
	projects := projectrepo.New(pool)
	notes := noterepo.New(pool)
	apiKeys := apikeyrepo.New(pool)
	jobs := jobrepo.New(pool)
	usageRecords := usagerepo.New(pool)

	tokens := auth.NewTokenManager(
		cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer,
		cfg.Auth.SessionTTL, cfg.Auth.InviteTTL,
	)

	usageService := usagesvc.NewService(logger, usageRecords)
	authService := authsvc.NewService(logger, users, orgs, tokens, cfg.Auth)
	orgService := orgsvc.NewService(logger, orgs, txManager, tokens)
	apiKeyService := apikeysvc.NewService(logger, apiKeys, usageService)
	projectService := projectsvc.NewService(logger, projects, notes, txManager)
	noteService := notesvc.NewService(logger, notes, projects, usageService)

	runner := jobsvc.NewRunner(logger, jobs,
		map[domain.JobType]jobsvc.Executor{
			domain.JobTypeExport: jobsvc.NewExportExecutor(projects, notes, cfg.Jobs.ExportsDir),
		},
		jobsvc.RunnerConfig{
			Workers:       cfg.Jobs.Workers,
			QueueSize:     cfg.Jobs.QueueSize,
			SweepInterval: cfg.Jobs.SweepInterval,
		},
	)
	runner.Start(ctx)
	defer runner.Stop()

	jobService := jobsvc.NewService(logger, jobs, runner)

	router := rest.NewRouter(rest.Handlers{
		Auth:          rest.NewAuthHandler(authService, logger),
		Organizations: rest.NewOrganizationHandler(orgService, authService, logger),
		APIKeys:       rest.NewAPIKeyHandler(apiKeyService, logger),
		Projects:      rest.NewProjectHandler(projectService, logger),
		Notes:         rest.NewNoteHandler(noteService, logger),
		Shared:        rest.NewSharedHandler(noteService, logger),
		Jobs:          rest.NewJobHandler(jobService, logger),
		Usage:         rest.NewUsageHandler(usageService, logger),
		Health:        rest.NewHealthHandler(pool, BuildVersion()),
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authService, apiKeyService),
	)(router)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
