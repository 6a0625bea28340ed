package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/integration-ia/ceus-crm-backend/internal/config"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
	"github.com/integration-ia/ceus-crm-backend/internal/utils/hosting"
	"github.com/integration-ia/ceus-crm-backend/internal/utils/storage"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond

	hostingMaxRetries   = 3
	hostingRetryInitial = time.Second
)

// App holds the process-wide collaborators: the DB pool/store, object
// storage and the hosting-provider client.
type App struct {
	Config  *config.Config
	DB      *pgxpool.Pool
	Store   *repositories.Store
	Storage storage.Client
	Hosting *hosting.Client
}

func NewApp(cfg *config.Config) (*App, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, cfg.DatabaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("Connected to DB on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	s3Client, err := storage.NewS3Client(context.Background(), cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	hostingClient, err := hosting.NewClient(cfg.HostingAPIKey, cfg.HostingBaseURL, hostingMaxRetries, hostingRetryInitial)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("init hosting client: %w", err)
	}

	return &App{
		Config:  cfg,
		DB:      dbPool,
		Store:   repositories.NewStore(dbPool),
		Storage: s3Client,
		Hosting: hostingClient,
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("DB connection closed.")
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
