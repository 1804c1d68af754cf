package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/config"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/crypto"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/handlers"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/logging"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/middleware"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/repositories"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/retry"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/scoring"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("scoring_base_url", cfg.Scoring.BaseURL),
	)

	ctx := context.Background()

	// Container schedulers bring the database up alongside the engine, so
	// the first connection attempts may land before Postgres accepts them.
	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	// golang-migrate wants database/sql; borrow a connection from the pool.
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations",
			zap.String("error", logging.SanitizeError(err)))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	scoringClient := scoring.NewHTTPClient(
		cfg.Scoring.BaseURL,
		time.Duration(cfg.Scoring.TimeoutSeconds)*time.Second,
	)

	signer, err := crypto.NewUploadSigner(cfg.Upload.SigningKey)
	if err != nil {
		logger.Fatal("Failed to create upload signer", zap.Error(err))
	}

	roleRepo := repositories.NewRoleRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	summaryRepo := repositories.NewProfileSummaryRepository(db)
	roleQuestionRepo := repositories.NewRoleQuestionRepository(db)
	profileQuestionRepo := repositories.NewProfileQuestionRepository(db)
	customQuestionRepo := repositories.NewCustomQuestionRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)

	enrichmentService := services.NewEnrichmentService(
		scoringClient, profileRepo, summaryRepo, roleQuestionRepo, logger)
	questionService := services.NewQuestionService(
		scoringClient, roleRepo, profileRepo,
		roleQuestionRepo, profileQuestionRepo, customQuestionRepo, logger)
	uploadService := services.NewUploadService(
		signer, cfg.Upload.BaseURL,
		time.Duration(cfg.Upload.TokenTTLSeconds)*time.Second)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	apiHandler := handlers.NewAPIHandler(
		roleRepo, profileRepo, summaryRepo,
		roleQuestionRepo, profileQuestionRepo, assessmentRepo,
		enrichmentService, questionService, uploadService, logger)
	apiHandler.RegisterRoutes(mux)

	handler := middleware.Recover(logger)(
		middleware.CORS()(
			middleware.RequestLogger(logger)(mux)))

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting talenthunt-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a development logger locally and a production logger
// everywhere else.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
