package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/LokeshN1/bill-master/internal/application/service"
	"github.com/LokeshN1/bill-master/internal/billing"
	"github.com/LokeshN1/bill-master/internal/config"
	"github.com/LokeshN1/bill-master/internal/infrastructure/database"
	"github.com/LokeshN1/bill-master/internal/infrastructure/repository"
	"github.com/LokeshN1/bill-master/internal/presentation/http/handler"
	"github.com/LokeshN1/bill-master/internal/presentation/http/routes"
	"github.com/LokeshN1/bill-master/pkg/logger"
	"github.com/LokeshN1/bill-master/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Warn().Err(err).Msg("failed to seed default data")
	}

	// Initialize repositories
	itemRepo := repository.NewItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	billRepo := repository.NewBillRepository(db)
	infoRepo := repository.NewInfoRepository(db)
	billCacheRepo := repository.NewBillCacheRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize the till session manager
	sessionManager := billing.NewManager(billing.Config{
		RefreshInterval: cfg.Billing.RefreshInterval,
		CacheTTL:        cfg.Billing.CacheTTL,
		PersistDebounce: cfg.Billing.PersistDebounce,
		SwitchCooldown:  cfg.Billing.SwitchCooldown,
	}, tableRepo, billRepo, billCacheRepo, logger.With("billing"))
	defer sessionManager.Shutdown()

	stopSweeper := billing.StartCacheSweeper(billCacheRepo, cfg.Billing.SweepInterval, logger.With("cache-sweeper"))
	defer stopSweeper()

	// Initialize services
	itemService := service.NewItemService(itemRepo)
	tableService := service.NewTableService(tableRepo, sessionManager)
	billService := service.NewBillService(billRepo, tableRepo)
	infoService := service.NewInfoService(infoRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize printer, printing disabled")
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billRepo, infoRepo, cfg.Printer.Type, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Item:    handler.NewItemHandler(itemService),
		Table:   handler.NewTableHandler(tableService),
		Bill:    handler.NewBillHandler(billService),
		Info:    handler.NewInfoHandler(infoService),
		Session: handler.NewSessionHandler(sessionManager, itemService, tableService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().Str("service", cfg.App.Name).Str("port", port).Str("env", cfg.App.Env).Msg("starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
