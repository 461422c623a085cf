package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/config"
	"github.com/rostrace/rostrace/internal/handler"
	"github.com/rostrace/rostrace/internal/pkg/database"
	"github.com/rostrace/rostrace/internal/plot"
	"github.com/rostrace/rostrace/internal/repository/architecture"
	chrepo "github.com/rostrace/rostrace/internal/repository/clickhouse"
	pgrepo "github.com/rostrace/rostrace/internal/repository/postgres"
	"github.com/rostrace/rostrace/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Database connections
	Postgres   *database.PostgresDB
	ClickHouse *database.ClickHouseDB
	Redis      *database.RedisDB
	Minio      *minio.Client

	// Repositories
	RecordRepo *chrepo.RecordRepository
	PresetRepo *pgrepo.PresetRepository

	// Services
	ChartService  *service.ChartService
	PresetService *service.PresetService
	ExportService *service.ExportService

	// Handlers
	ChartsHandler  *handler.ChartsHandler
	PresetsHandler *handler.PresetsHandler
	HealthHandler  *handler.HealthHandler

	// Asynq client
	AsynqClient *asynq.Client
}

// initDependencies initializes all dependencies
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	ctx := context.Background()

	pgDB, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	deps.Postgres = pgDB

	chDB, err := database.NewClickHouse(ctx, cfg.ClickHouse)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize ClickHouse: %w", err)
	}
	deps.ClickHouse = chDB

	redisDB, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	deps.Redis = redisDB

	minioClient, err := initMinio(cfg)
	if err != nil {
		logger.Warn("failed to initialize MinIO, chart exports will be unavailable", zap.Error(err))
	}
	deps.Minio = minioClient

	// Load the application graph that chart targets resolve against.
	app, err := architecture.LoadFile(cfg.Chart.ArchitecturePath)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to load architecture: %w", err)
	}
	logger.Info("architecture loaded",
		zap.String("path", cfg.Chart.ArchitecturePath),
		zap.Int("nodes", len(app.Nodes)),
		zap.Int("paths", len(app.Paths)),
	)

	deps.RecordRepo = chrepo.NewRecordRepository(chDB)
	deps.PresetRepo = pgrepo.NewPresetRepository(pgDB)

	deps.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	defaults := plot.DefaultOptions()
	defaults.MaxLegends = cfg.Chart.MaxLegends
	if rule := plot.ColoringRule(cfg.Chart.DefaultColoringRule); rule != "" {
		defaults.ColoringRule = rule
	}

	cache := database.NewCache(redisDB, cfg.Chart.CacheTTL)
	deps.ChartService = service.NewChartService(logger, app, deps.RecordRepo, cache, defaults)
	deps.PresetService = service.NewPresetService(deps.PresetRepo)
	deps.ExportService = service.NewExportService(deps.AsynqClient, cfg.Worker.QueueDefault)

	deps.ChartsHandler = handler.NewChartsHandler(deps.ChartService, deps.ExportService, logger)
	deps.PresetsHandler = handler.NewPresetsHandler(deps.PresetService, logger)
	deps.HealthHandler = handler.NewHealthHandler(pgDB.Pool, chDB.Conn, redisDB.Client, appVersion)

	return deps, nil
}

// Close closes all connections
func (d *Dependencies) Close() {
	if d.AsynqClient != nil {
		d.AsynqClient.Close()
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if d.ClickHouse != nil {
		_ = d.ClickHouse.Close()
	}
	if d.Postgres != nil {
		d.Postgres.Close()
	}
}

// initMinio initializes the MinIO client and ensures the export bucket
func initMinio(cfg *config.Config) (*minio.Client, error) {
	if cfg.MinIO.Endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIO.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return client, nil
}
