// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/handlers"
	"github.com/javajoker/storefront-backend/internal/middleware"
	"github.com/javajoker/storefront-backend/internal/services"
)

// Services are the collaborators the HTTP layer is built on.
type Services struct {
	Catalog   *services.CatalogService
	Content   *services.ContentService
	Images    *services.ImageService
	Cart      *services.CartService
	Favorites *services.FavoritesService
	Checkout  *services.CheckoutService
	Auth      *services.AuthService
}

// Limiters are exposed so the caller can run their idle-visitor cleanup.
type Limiters struct {
	General    *middleware.RateLimiter
	AdminLogin *middleware.RateLimiter
}

func NewLimiters(cfg *config.Config) Limiters {
	return Limiters{
		General:    middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		AdminLogin: middleware.AdminLoginRateLimit(),
	}
}

func Initialize(cfg *config.Config, svc Services, limiters Limiters, metrics *middleware.Metrics) *gin.Engine {
	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, svc.Content, svc.Images)
	cartHandler := handlers.NewCartHandler(svc.Cart)
	favoritesHandler := handlers.NewFavoritesHandler(svc.Favorites)
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout)
	adminHandler := handlers.NewAdminHandler(svc.Auth, svc.Catalog)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Frontend.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", middleware.SessionHeader},
		ExposeHeaders:    []string{middleware.SessionHeader, "X-Total-Count", "X-Page", "X-Per-Page", "X-Total-Pages"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.Session(cfg.Storage.SessionTTL, cfg.IsProduction()))
	r.Use(middleware.RequestLogger())
	r.Use(limiters.General.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		snapshot := svc.Catalog.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"products":  len(snapshot.Products),
			"loaded_at": snapshot.LoadedAt,
		})
	})

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.GET("/catalog/paths", catalogHandler.GetPaths)

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.GET("/:slug", catalogHandler.GetCategory)
			categories.GET("/:slug/filters", catalogHandler.GetCategoryFilters)
			categories.GET("/:slug/products", catalogHandler.GetCategoryProducts)
			categories.POST("/:slug/products/search", catalogHandler.SearchCategoryProducts)
			categories.GET("/:slug/products/:product", catalogHandler.GetCategoryProduct)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.GetProducts)
			products.GET("/:slug", catalogHandler.GetProduct)
		}

		// Brand routes
		brands := v1.Group("/brands")
		{
			brands.GET("", catalogHandler.GetBrands)
			brands.GET("/:slug", catalogHandler.GetBrand)
		}

		v1.GET("/pages/*path", catalogHandler.GetPage)

		// Cart routes
		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.Clear)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.SetQuantity)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.POST("/checkout", checkoutHandler.CreatePaymentIntent)
		}

		// Favorites routes
		favorites := v1.Group("/favorites")
		{
			favorites.GET("", favoritesHandler.GetFavorites)
			favorites.DELETE("", favoritesHandler.Clear)
			favorites.GET("/:id", favoritesHandler.IsFavorite)
			favorites.POST("/:id", favoritesHandler.Add)
			favorites.DELETE("/:id", favoritesHandler.Remove)
			favorites.POST("/:id/toggle", favoritesHandler.Toggle)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/login", limiters.AdminLogin.Middleware(), adminHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.AdminRequired())
			{
				protected.POST("/catalog/reload", adminHandler.ReloadCatalog)
			}
		}
	}

	// Static images (for development)
	if cfg.Environment == "development" && cfg.Catalog.PublicDir != "" {
		r.Static("/img", cfg.Catalog.PublicDir+"/img")
	}

	return r
}
