package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/webtech/cameralog/internal/config"
	"github.com/webtech/cameralog/internal/db"
	"github.com/webtech/cameralog/internal/repository"
	"github.com/webtech/cameralog/internal/service"
	"github.com/webtech/cameralog/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	Storage       storage.Storage
	AuthService   *service.AuthService
	CameraService *service.CameraService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database (copies the seed database on first run)
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection, cfg.DBSeedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Versioned migrations, then the additive column upgrade
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	cameraRepository := repository.NewCameraRepository(database)

	// Storage
	photoStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	uploadService := service.NewUploadService(photoStorage)
	cameraService := service.NewCameraService(cameraRepository, uploadService)
	authService := service.NewAuthService(cameraRepository, cfg.SessionSecret, cfg.IsProduction())

	return &App{
		Cfg:           cfg,
		DB:            database,
		Storage:       photoStorage,
		AuthService:   authService,
		CameraService: cameraService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
