package main

import (
	"github.com/rs/zerolog/log"

	"github.com/stockdesk/invoice-calculation-service/internal/cache"
	"github.com/stockdesk/invoice-calculation-service/internal/config"
	"github.com/stockdesk/invoice-calculation-service/internal/database"
	"github.com/stockdesk/invoice-calculation-service/internal/dvla"
	"github.com/stockdesk/invoice-calculation-service/internal/handler"
	"github.com/stockdesk/invoice-calculation-service/internal/logger"
	"github.com/stockdesk/invoice-calculation-service/internal/repository"
	"github.com/stockdesk/invoice-calculation-service/internal/server"
	"github.com/stockdesk/invoice-calculation-service/internal/service"
)

// @title Invoice Calculation Service API
// @version 1.0
// @description Financial calculation engine for dealership vehicle sale invoices.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize logging
	if err := logger.Setup(logger.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	// Connect to the database
	log.Info().Msg("connecting to database")
	db, err := database.NewPostgresDB(cfg.PostgresURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repository and service
	saleRepository := repository.NewPostgresSaleRepository(db.GetPool())
	marginsCache := cache.NewStore(cfg.CacheTTL)
	saleService := service.NewSaleService(saleRepository, marginsCache)

	// Initialize the vehicle enquiry client
	vehicleClient := dvla.NewClient(&dvla.Config{
		BaseURL: cfg.DVLAAPIURL,
		APIKey:  cfg.DVLAAPIKey,
		Timeout: cfg.DVLATimeout,
		Cache:   cache.NewStore(cfg.CacheTTL),
	})

	// Create handlers
	saleHandler := handler.NewSaleHandler(saleService)
	vehicleHandler := handler.NewVehicleHandler(vehicleClient)

	// Create and configure server
	appServer := server.NewServer(cfg)
	saleHandler.RegisterRoutes(appServer.GetRouter())
	vehicleHandler.RegisterRoutes(appServer.GetRouter())

	// Start server (blocking call)
	if err := appServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
