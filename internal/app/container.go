package app

import (
	"context"
	"log"
	"time"

	"trademart/internal/config"
	"trademart/internal/database"
	dbpostgres "trademart/internal/database/postgres"
	"trademart/internal/delivery/http/handler"
	"trademart/internal/delivery/http/routes"
	"trademart/internal/domain/matching"
	"trademart/internal/infrastructure/cache"
	"trademart/internal/metrics"
	"trademart/internal/repository"
	"trademart/internal/usecase"
)

// Container wires every layer together: storage, cache, metrics, the
// scoring engine, usecases and the HTTP handlers.
type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics
	Routes  *routes.Registry
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(logger)
	m := metrics.New()

	engine, err := matching.NewEngine(matching.DefaultWeights())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	requirements := repository.NewPostgresBuyerRequirementRepository(db)
	offerings := repository.NewPostgresSellerOfferingRepository(db)
	results := repository.NewPostgresMatchResultRepository(db)
	stats := repository.NewPostgresMatchStatsRepository(db)

	matchUC := usecase.NewMatchingUsecase(requirements, offerings, results, engine, cfg.Matching, m, logger)
	statsUC := usecase.NewStatsUsecase(stats, redisCache, cfg.Matching.StatsCacheTTL, logger)
	catalogUC := usecase.NewCatalogUsecase(requirements, offerings)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(db),
		handler.NewMatchHandler(matchUC),
		handler.NewStatsHandler(statsUC),
		handler.NewCatalogHandler(catalogUC),
		m,
	)

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   redisCache,
		Metrics: m,
		Routes:  registry,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
