// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/cache"
	"github.com/baghaus/marketplace-backend/internal/config"
	"github.com/baghaus/marketplace-backend/internal/handlers"
	"github.com/baghaus/marketplace-backend/internal/middleware"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

func Initialize(db *gorm.DB, cacheClient *cache.Client, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	bagService := services.NewBagService(db, cacheClient, cfg)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, cacheClient, notificationService)
	ratingService := services.NewRatingService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	bagHandler := handlers.NewBagHandler(bagService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	ratingHandler := handlers.NewRatingHandler(ratingService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Public catalog routes; OptionalAuth tags request logs with the
		// user when a token happens to be present.
		public := v1.Group("")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/bags", bagHandler.ListBags)
			public.GET("/bags/:id", bagHandler.GetBag)
			public.GET("/ratings", ratingHandler.ListByProduct)
		}

		// Customer routes
		authenticated := v1.Group("")
		authenticated.Use(middleware.AuthRequired())
		{
			authenticated.GET("/users/me", userHandler.GetProfile)
			authenticated.PUT("/users/me", userHandler.UpdateProfile)

			cart := authenticated.Group("/cart")
			{
				cart.POST("", cartHandler.Add)
				cart.GET("", cartHandler.List)
				cart.PATCH("/increment", cartHandler.Increment)
				cart.PATCH("/decrement", cartHandler.Decrement)
				cart.DELETE("/:prod_name", cartHandler.Remove)
			}

			authenticated.POST("/checkout", orderHandler.Checkout)
			authenticated.GET("/orders", orderHandler.GetMyOrders)
			authenticated.POST("/reviews", ratingHandler.Submit)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/bags", bagHandler.CreateBag)
			admin.PUT("/bags/:id", bagHandler.UpdateBag)
			admin.DELETE("/bags/:id", bagHandler.DeleteBag)

			admin.GET("/orders", orderHandler.GetAllOrders)
			admin.PUT("/orders/status", orderHandler.UpdateStatus)

			admin.POST("/upload", middleware.UploadRateLimit(), bagHandler.UploadImage)
		}
	}

	// Serve locally stored uploads when S3 is not configured
	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	return r
}
