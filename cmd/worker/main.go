package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/config"
	"github.com/rostrace/rostrace/internal/pkg/database"
	"github.com/rostrace/rostrace/internal/pkg/logger"
	"github.com/rostrace/rostrace/internal/plot"
	"github.com/rostrace/rostrace/internal/repository/architecture"
	chrepo "github.com/rostrace/rostrace/internal/repository/clickhouse"
	"github.com/rostrace/rostrace/internal/service"
	"github.com/rostrace/rostrace/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.WithContext()

	log.Info("starting worker service")

	// Initialize dependencies
	deps, cleanup, err := initWorkerDependencies(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer cleanup()

	// Create worker server
	workerServer, err := worker.NewServer(log, cfg, deps)
	if err != nil {
		log.Fatal("failed to create worker server", zap.Error(err))
	}

	// Start worker in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- workerServer.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("shutting down worker...")
		workerServer.Stop()
	case err := <-errCh:
		if err != nil {
			log.Error("worker server error", zap.Error(err))
		}
	}

	log.Info("worker stopped")
}

// initWorkerDependencies initializes dependencies for the worker
func initWorkerDependencies(cfg *config.Config, log *zap.Logger) (*worker.Dependencies, func(), error) {
	ctx := context.Background()

	chDB, err := database.NewClickHouse(ctx, cfg.ClickHouse)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize ClickHouse: %w", err)
	}

	minioClient, err := initMinio(cfg)
	if err != nil {
		_ = chDB.Close()
		return nil, nil, fmt.Errorf("failed to initialize MinIO: %w", err)
	}

	app, err := architecture.LoadFile(cfg.Chart.ArchitecturePath)
	if err != nil {
		_ = chDB.Close()
		return nil, nil, fmt.Errorf("failed to load architecture: %w", err)
	}

	recordRepo := chrepo.NewRecordRepository(chDB)

	defaults := plot.DefaultOptions()
	defaults.MaxLegends = cfg.Chart.MaxLegends
	if rule := plot.ColoringRule(cfg.Chart.DefaultColoringRule); rule != "" {
		defaults.ColoringRule = rule
	}

	// The worker rebuilds charts directly, so no cache is wired in.
	chartService := service.NewChartService(log, app, recordRepo, nil, defaults)

	deps := &worker.Dependencies{
		ChartService: chartService,
		MinioClient:  minioClient,
		MinioBucket:  cfg.MinIO.Bucket,
	}

	cleanup := func() {
		_ = chDB.Close()
	}

	return deps, cleanup, nil
}

// initMinio initializes the MinIO client and ensures the export bucket
func initMinio(cfg *config.Config) (*minio.Client, error) {
	if cfg.MinIO.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint not configured")
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
