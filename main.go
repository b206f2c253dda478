// main.go
package main

import (
	"context"
	"log"

	"gym-scheduling/cmd"
	"gym-scheduling/internal/app"
	"gym-scheduling/internal/data/repository"
	"gym-scheduling/internal/wire"
	"gym-scheduling/pkg/database"
	"gym-scheduling/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
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
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Apply migrations
	migrator, err := app.NewMigrator(db.Pool(), config.Database.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(context.Background()); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	application := wire.Wiring(repos, config, logger)

	// Start the booking completion sweep
	sweeper := app.NewSweeper(application.Service.Booking, config.Sweep.Cron, logger)
	if err := sweeper.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(application.Router, config.App.Port)
}
