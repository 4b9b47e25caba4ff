package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"home-services-server/config"
	"home-services-server/database"
	"home-services-server/jobs"
	"home-services-server/middleware"
	"home-services-server/routes"
	ws "home-services-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed reference data on first boot
	if err := Seed(database.DB); err != nil {
		log.Printf("⚠️ Seeding failed: %v", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Home Services Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Dashboard activity hub
	activityHub := ws.NewHub()
	go activityHub.Run()
	routes.SetActivityHub(activityHub)

	// API routes
	api := router.Group("/api")
	{
		routes.RegisterAuthRoutes(api)
		routes.RegisterActivityRoutes(api, activityHub)
		routes.RegisterTechnicianRoutes(api)
		routes.RegisterServiceRequestRoutes(api)

		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			routes.RegisterServiceRoutes(api, admin)
			routes.RegisterCategoryRoutes(api, admin)
			routes.RegisterUserRoutes(admin)
			routes.RegisterAdminRoutes(admin)
		}
	}

	// Stale booking sweeper (opt-in)
	if config.AppConfig.Booking.SweepStale {
		sweeper := jobs.NewStaleBookingJob(database.DB, config.AppConfig.Booking.StaleAfterDays)
		sweeper.Start()
		defer sweeper.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = config.AppConfig.Server.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
