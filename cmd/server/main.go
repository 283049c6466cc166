package main

import (
	"context"
	"log"

	"nychousing-backend/config"
	"nychousing-backend/handlers"
	"nychousing-backend/logging"
	"nychousing-backend/repository"
	"nychousing-backend/service"
	"nychousing-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// sessionStore is the persisted state the server needs
type sessionStore interface {
	service.QuizStore
	service.ReviewStore
}

func main() {
	dotEnvLoaded := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()
	if !dotEnvLoaded {
		logger.Info("no .env file found, using environment variables")
	}

	ctx := context.Background()

	// Initialize session state
	var sessions sessionStore
	if cfg.DatabaseURL != "" {
		db, err := initPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to initialize Postgres", zap.Error(err))
		}
		defer db.Close()
		sessions = repository.NewSessionRepository(db)
		logger.Info("Postgres connection established")
	} else {
		sessions = repository.NewMemorySessionRepository()
		logger.Warn("DATABASE_URL not set, keeping quiz results and reviews in memory")
	}

	// Initialize model artifact storage
	artifacts, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize artifact storage", zap.Error(err))
	}

	predictor := service.LoadPricePredictor(ctx, artifacts, cfg.ModelArtifactPath,
		service.WithAppreciationRate(cfg.AppreciationRate),
		service.WithPredictorLogger(logger.Named("predictor")),
	)
	logger.Info("price predictor ready", zap.String("model", predictor.ModelName()))

	// Initialize narrative generation
	narrativeOpts := []service.NarrativeOption{
		service.WithGenerationModel(cfg.GeminiModel),
		service.WithGenerationLimits(cfg.NarrativeMaxTokens, cfg.NarrativeTemperature),
		service.WithNarrativeTimeout(cfg.NarrativeTimeout),
		service.WithNarrativeLogger(logger.Named("narrative")),
	}
	gemini, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Warn("narrative generation disabled, using fallback summaries", zap.Error(err))
	} else {
		defer gemini.Close()
		narrativeOpts = append(narrativeOpts, service.WithTextGenerator(gemini))
		logger.Info("Gemini client initialized", zap.String("model", cfg.GeminiModel))
	}
	narrative := service.NewNarrativeGenerator(narrativeOpts...)

	// Initialize services
	neighborhoods := repository.NewStaticNeighborhoodRepository()

	rankingService := service.NewRankingService(
		service.RankingWithPredictor(predictor),
		service.RankingWithNeighborhoods(neighborhoods),
		service.RankingWithQuizStore(sessions),
		service.RankingWithLogger(logger.Named("ranking")),
	)

	portfolioService := service.NewPortfolioService(
		service.PortfolioWithNeighborhoods(neighborhoods),
		service.PortfolioWithQuizStore(sessions),
		service.PortfolioWithNarrative(narrative),
		service.PortfolioWithLogger(logger.Named("portfolio")),
	)

	neighborhoodService := service.NewNeighborhoodService(
		service.NeighborhoodWithSource(neighborhoods),
		service.NeighborhoodWithQuizStore(sessions),
		service.NeighborhoodWithReviewStore(sessions),
		service.NeighborhoodWithLogger(logger.Named("neighborhood")),
	)
	if err := neighborhoodService.SeedReviews(ctx); err != nil {
		logger.Warn("failed to seed sample reviews", zap.Error(err))
	}

	// Setup Gin router
	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handlers.NewRouter(handlers.RouterConfig{
		Quiz:         handlers.NewQuizHandler(neighborhoodService, logger),
		Prediction:   handlers.NewPredictionHandler(rankingService, logger),
		Portfolio:    handlers.NewPortfolioHandler(portfolioService, logger),
		Neighborhood: handlers.NewNeighborhoodHandler(neighborhoodService, logger),
		CORSOrigin:   cfg.CORSOrigin,
		Logger:       logger.Named("http"),
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
