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

	"hostel-portal-backend/config"
	"hostel-portal-backend/internal/api"
	"hostel-portal-backend/internal/auth"
	"hostel-portal-backend/internal/db"
	"hostel-portal-backend/internal/files"
	"hostel-portal-backend/internal/notification"
	"hostel-portal-backend/internal/occupancy"
	"hostel-portal-backend/internal/refresher"
	"hostel-portal-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "hostel-portal ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatalf("auth.jwt_secret must be configured")
	}
	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Fatalf("VAPID keys must be configured. Please generate them and add them to your config file.")
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	if err := store.SeedDefaultMenu(gormDB); err != nil {
		logger.Printf("Warning: failed to seed default menu: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, cfg.Hostel.BedCapacity)
	logger.Println("data store initialized")

	snapshot := occupancy.NewSnapshot(appStore, cfg.Hostel.BedCapacity,
		time.Duration(cfg.Refresher.SnapshotTTLSec)*time.Second)

	if cfg.Refresher.Enabled {
		go refresher.NewService(snapshot, cfg.Refresher.Interval).Run(ctx)
	}

	pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
	pool.Start(ctx)

	uploadStore, err := files.NewStore(cfg.Uploads.Dir, cfg.Uploads.PublicPath, cfg.Uploads.MaxSizeMB)
	if err != nil {
		logger.Fatalf("failed to initialize upload store: %v", err)
	}

	authMgr := auth.NewManager(cfg.Auth)

	handler := api.NewHandler(appStore, snapshot, cfg.Hostel, uploadStore, &webpushOptions, pool)
	router := api.NewRouter(handler, authMgr, cfg)
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

	logger.Println("Server gracefully stopped")
}
