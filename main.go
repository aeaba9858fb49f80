// main.go
package main

import (
	"log"

	"movie-catalog/cmd"
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/wire"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	var (
		repos  *repository.Repository
		pinger adaptor.Pinger
	)

	switch config.Database.Driver {
	case utils.DriverSQLite:
		db, err := database.InitSQLite(config.Database.SQLitePath)
		if err != nil {
			logger.Fatal("Failed to open sqlite database", zap.Error(err))
		}
		defer db.Close()

		repos = repository.NewSQLiteRepository(db, logger)
		pinger = adaptor.PingFunc(db.PingContext)

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		repos = repository.NewRepository(db, logger)
		pinger = db
	}

	logger.Info("Database connected successfully")

	// Wire all dependencies
	app := wire.Wiring(repos, pinger, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.HTTP.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
