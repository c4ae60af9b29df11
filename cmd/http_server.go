package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/auth"
	authpg "github.com/ouroboros-foundation/portal/internal/auth/postgres"
	"github.com/ouroboros-foundation/portal/internal/core/events"
	"github.com/ouroboros-foundation/portal/internal/covenant"
	covenantpg "github.com/ouroboros-foundation/portal/internal/covenant/postgres"
	"github.com/ouroboros-foundation/portal/internal/department"
	departmentpg "github.com/ouroboros-foundation/portal/internal/department/postgres"
	"github.com/ouroboros-foundation/portal/internal/invitation"
	invitationpg "github.com/ouroboros-foundation/portal/internal/invitation/postgres"
	"github.com/ouroboros-foundation/portal/internal/letter"
	letterpg "github.com/ouroboros-foundation/portal/internal/letter/postgres"
	"github.com/ouroboros-foundation/portal/internal/logbook"
	logbookpg "github.com/ouroboros-foundation/portal/internal/logbook/postgres"
	"github.com/ouroboros-foundation/portal/internal/project"
	projectpg "github.com/ouroboros-foundation/portal/internal/project/postgres"
	"github.com/ouroboros-foundation/portal/internal/proposal"
	proposalpg "github.com/ouroboros-foundation/portal/internal/proposal/postgres"
	"github.com/ouroboros-foundation/portal/internal/report"
	reportpg "github.com/ouroboros-foundation/portal/internal/report/postgres"
	"github.com/ouroboros-foundation/portal/internal/transport/rest"
	"github.com/ouroboros-foundation/portal/internal/transport/swagger"
	"github.com/ouroboros-foundation/portal/internal/user"
	userpg "github.com/ouroboros-foundation/portal/internal/user/postgres"
	"github.com/ouroboros-foundation/portal/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle portal API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		deps.Logger.Warn("openapi spec failed validation; swagger UI may be degraded", "error", err)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(log)

	// Auth
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewRepository(gdb), tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	// Directory data
	departmentService := department.NewService(departmentpg.NewDepartmentRepository(gdb), log)
	departmentHandler := department.NewHandler(departmentService)

	// Projects and their access rules
	projectRepo := projectpg.NewProjectRepository(gdb)
	projectService := project.NewService(projectRepo, log)
	projectHandler := project.NewHandler(projectService)

	// Proposals promote into projects on approval
	proposalService := proposal.NewService(proposalpg.NewProposalRepository(gdb), eventBus, log)
	proposalHandler := proposal.NewHandler(proposalService)

	// Reports and logbook entries gate on project access
	reportService := report.NewService(reportpg.NewReportRepository(gdb), projectRepo, log)
	reportHandler := report.NewHandler(reportService)

	logbookService := logbook.NewService(logbookpg.NewLogbookRepository(gdb), projectRepo, log)
	logbookHandler := logbook.NewHandler(logbookService)

	// Correspondence; proposal decisions land in the submitter's inbox.
	letterService := letter.NewService(letterpg.NewLetterRepository(gdb), log)
	letterHandler := letter.NewHandler(letterService)
	eventBus.Subscribe(events.EventTypeProposalApproved, letterService.HandleProposalApproved)
	eventBus.Subscribe(events.EventTypeProposalRejected, letterService.HandleProposalRejected)

	// Registration invitations
	invitationService := invitation.NewService(invitationpg.NewInvitationRepository(gdb), config.Portal.InvitationTTL, log)
	invitationHandler := invitation.NewHandler(invitationService)

	// Covenant seats
	covenantService := covenant.NewService(covenantpg.NewCovenantRepository(gdb), config.Portal.InvitationTTL, log)
	covenantHandler := covenant.NewHandler(covenantService)

	// Personnel
	userService := user.NewService(userpg.NewUserRepository(gdb), invitationService, authService, eventBus, log)
	userHandler := user.NewHandler(userService)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: chi.NewRouter(),
		Logger: log,
		Handlers: rest.Handlers{
			Auth:       authHandler,
			User:       userHandler,
			Department: departmentHandler,
			Project:    projectHandler,
			Proposal:   proposalHandler,
			Report:     reportHandler,
			Logbook:    logbookHandler,
			Letter:     letterHandler,
			Invitation: invitationHandler,
			Covenant:   covenantHandler,
		},
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing pool so the ORM repositories and the raw
// health check share one set of connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
}
