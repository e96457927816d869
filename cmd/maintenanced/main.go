package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"maintenance-backend/config"
	"maintenance-backend/internal/api"
	"maintenance-backend/internal/audit"
	"maintenance-backend/internal/db"
	"maintenance-backend/internal/manager"
	"maintenance-backend/internal/notify"
	"maintenance-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "maintenance-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Printf("no configuration at %s (%v); using defaults", configPath, err)
		cfg = config.Default()
	} else {
		logger.Printf("configuration loaded from %s", configPath)
	}

	// Hydrate the registry from the persisted document. An absent or
	// corrupt document starts the system empty.
	fileStore, err := store.NewFileStore(cfg.Storage.DataFile)
	if err != nil {
		logger.Fatalf("failed to initialize file store: %v", err)
	}
	reg := fileStore.Load()
	logger.Printf("registry loaded from %s: %d locations, %d equipment, %d technicians, %d tasks",
		fileStore.Path(), len(reg.Locations()), len(reg.AllEquipment()), len(reg.Technicians()), len(reg.Tasks()))

	mgr := manager.New(reg, cfg.Alerts.StalenessWindow)
	mgr.SetStore(fileStore)

	// Operational database for the audit trail and push subscriptions.
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	auditRec := audit.NewRecorder(gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	}

	if cfg.Alerts.NotifyEnabled && webpushOptions != nil {
		pool := notify.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		checker := notify.NewChecker(mgr, pool, cfg.Alerts.CheckInterval)
		go checker.Run(ctx)
	} else {
		logger.Println("alert push notifications disabled")
	}

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)

	handler := api.NewHandler(mgr, cfg, gormDB, auditRec, webpushOptions, cacheStore)
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	// Final flush so the document reflects the session's last state.
	if err := mgr.Flush(); err != nil {
		logger.Printf("Warning: final registry flush failed: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
