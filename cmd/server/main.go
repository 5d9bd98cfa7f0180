// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/javajoker/storefront-backend/internal/catalog"
	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/middleware"
	"github.com/javajoker/storefront-backend/internal/router"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Load the catalog before serving
	source, err := catalogSource(cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize catalog source: ", err)
	}
	catalogStore := catalog.NewStore(source)
	catalogStore.OnReload(func(s *catalog.Snapshot) {
		logrus.WithFields(logrus.Fields{
			"products":   len(s.Products),
			"categories": len(s.Categories),
		}).Info("Catalog snapshot published")
	})
	catalogStore.Reload(ctx)
	go catalogStore.Watch(ctx, cfg.Catalog.RefreshInterval)

	// Session state storage
	sessionStore, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize session storage: ", err)
	}
	defer closeStore()

	// Initialize services
	osFs := afero.NewOsFs()
	catalogService := services.NewCatalogService(catalogStore)
	imageService := services.NewImageService(osFs, cfg.Catalog.PublicDir)
	cartService := services.NewCartService(sessionStore, catalogService, imageService)
	svc := router.Services{
		Catalog:   catalogService,
		Content:   services.NewContentService(osFs, cfg.Catalog.ContentDir),
		Images:    imageService,
		Cart:      cartService,
		Favorites: services.NewFavoritesService(sessionStore, catalogService),
		Checkout:  services.NewCheckoutService(cartService, cfg),
		Auth:      services.NewAuthService(cfg),
	}

	var metrics *middleware.Metrics
	if cfg.Server.Metrics {
		metrics = middleware.NewMetrics()
		metrics.Registry().MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "storefront",
			Name:      "catalog_products",
			Help:      "Products in the published catalog snapshot.",
		}, func() float64 {
			return float64(len(catalogStore.Snapshot().Products))
		}))
	}

	limiters := router.NewLimiters(cfg)
	go limiters.General.Cleanup(ctx)
	go limiters.AdminLogin.Cleanup(ctx)

	// Initialize router
	r := router.Initialize(cfg, svc, limiters, metrics)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// SIGHUP reloads the catalog, SIGINT/SIGTERM shut the server down
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for sig := range signals {
		if sig == syscall.SIGHUP {
			logrus.Info("SIGHUP received, reloading catalog")
			catalogStore.Reload(ctx)
			continue
		}
		break
	}
	logrus.Info("Shutting down server...")
	stop()

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	logrus.Info("Server exited")
}

func catalogSource(cfg *config.Config) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceS3:
		return catalog.NewS3SourceFromConfig(cfg)
	default:
		return catalog.NewDirSource(afero.NewOsFs(), cfg.Catalog.DataDir), nil
	}
}

// openSessionStore returns the configured cart and favorites backend and its cleanup.
func openSessionStore(ctx context.Context, cfg *config.Config) (store.SessionStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := store.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return store.NewRedisStore(client, cfg.Storage.SessionTTL), func() { client.Close() }, nil

	case config.StoragePostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		if err := database.RunMigrations(db); err != nil {
			database.Close(db)
			return nil, noop, err
		}
		return store.NewGormStore(db), func() { database.Close(db) }, nil

	case config.StorageFile:
		fileStore, err := store.NewFileStore(afero.NewOsFs(), cfg.Storage.FileDir)
		if err != nil {
			return nil, noop, err
		}
		return fileStore, noop, nil

	default:
		return store.NewMemoryStore(), noop, nil
	}
}
