package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/config"
	"github.com/mamadbah2/residence/internal/domain/models"
	"github.com/mamadbah2/residence/internal/repository/mongodb"
	"github.com/mamadbah2/residence/internal/repository/sheets"
	"github.com/mamadbah2/residence/internal/scheduler"
	"github.com/mamadbah2/residence/internal/server/handlers"
	"github.com/mamadbah2/residence/internal/server/router"
	apartmentsvc "github.com/mamadbah2/residence/internal/service/apartments"
	bakerysvc "github.com/mamadbah2/residence/internal/service/bakery"
	housekeepingsvc "github.com/mamadbah2/residence/internal/service/housekeeping"
	linensvc "github.com/mamadbah2/residence/internal/service/linen"
	parkingsvc "github.com/mamadbah2/residence/internal/service/parking"
	reportingsvc "github.com/mamadbah2/residence/internal/service/reporting"
	"github.com/mamadbah2/residence/pkg/clients/whatsapp"
	"github.com/mamadbah2/residence/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.Environment))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)
	loc := cfg.Location()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	store, err := mongodb.NewStore(startCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.CheckTransactions(startCtx); err != nil {
		baseLogger.Fatal("mongodb cannot run ledger transactions", zap.Error(err))
	}

	if err := store.EnsureIndexes(startCtx); err != nil {
		baseLogger.Fatal("failed to create mongodb indexes", zap.Error(err))
	}

	linenSvc := linensvc.NewService(mongodb.NewLedgerRepository(store), baseLogger.Named("svc.linen"))
	if err := linenSvc.EnsureInitialized(startCtx); err != nil {
		baseLogger.Fatal("failed to initialize linen ledgers", zap.Error(err))
	}

	parkingSvc := parkingsvc.NewService(mongodb.NewParkingRepository(store), map[models.Building]int{
		models.BuildingCimes:  cfg.Parking.CapacityCimes,
		models.BuildingVallon: cfg.Parking.CapacityVallon,
	}, loc, baseLogger.Named("svc.parking"))
	bakerySvc := bakerysvc.NewService(mongodb.NewOrderRepository(store), loc, baseLogger.Named("svc.bakery"))
	housekeepingSvc := housekeepingsvc.NewService(mongodb.NewHousekeepingRepository(store), baseLogger.Named("svc.housekeeping"))
	apartmentSvc := apartmentsvc.NewService(mongodb.NewApartmentRepository(store), baseLogger.Named("svc.apartments"))

	var exporter reportingsvc.Exporter
	if cfg.Sheets.CredentialsPath != "" {
		reportSheet, err := sheets.NewReportSheet(startCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		if err := reportSheet.EnsureHeader(startCtx); err != nil {
			baseLogger.Warn("failed to prepare report sheet header", zap.Error(err))
		}
		exporter = reportSheet
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, report export disabled")
	}

	notifier := whatsapp.NewNotifier(cfg.WhatsApp, baseLogger.Named("client.whatsapp"))

	reportingSvc := reportingsvc.NewService(reportingsvc.Sources{
		Linen:        linenSvc,
		Parking:      parkingSvc,
		Bakery:       bakerySvc,
		Housekeeping: housekeepingSvc,
	}, mongodb.NewReportRepository(store), exporter, notifier, cfg.Reporting.Recipient, loc, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Linen:        handlers.NewLinenHandler(linenSvc, baseLogger.Named("handlers.linen")),
		Parking:      handlers.NewParkingHandler(parkingSvc, loc, baseLogger.Named("handlers.parking")),
		Bakery:       handlers.NewBakeryHandler(bakerySvc, loc, baseLogger.Named("handlers.bakery")),
		Housekeeping: handlers.NewHousekeepingHandler(housekeepingSvc, baseLogger.Named("handlers.housekeeping")),
		Apartments:   handlers.NewApartmentHandler(apartmentSvc, baseLogger.Named("handlers.apartments")),
		Reports:      handlers.NewReportHandler(reportingSvc, loc, baseLogger.Named("handlers.reports")),
	}, cfg.Server.AllowedOrigins, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
