package main

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/RostHarcha/clickup-tracker/config"
	"github.com/RostHarcha/clickup-tracker/handlers"
	"github.com/RostHarcha/clickup-tracker/middleware"
	"github.com/RostHarcha/clickup-tracker/repository"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if settings.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if settings.TeamID == 0 {
		log.Fatal("CLICKUP_TEAM_ID is not set")
	}
	location, err := settings.Location()
	if err != nil {
		log.Fatalf("Invalid TIME_ZONE %q: %v", settings.TimeZone, err)
	}

	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", settings.DatabaseURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	accountsRepo := repository.NewAccountsRepository(db)
	accountsHandler := handlers.NewAccountsHandler(accountsRepo, settings.TeamID)
	reportsHandler := handlers.NewReportsHandler(location, settings.ClickUpBaseURL)

	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Structured request ID and JSON access logs
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	// Panic recovery
	r.Use(gin.Recovery())

	// Configure trusted proxies for correct client IP handling in production
	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		// Default to loopback only; override via TRUSTED_PROXIES in production
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORSMiddleware())

	// Public endpoints
	r.GET("/health", handlers.HealthCheck)

	// Account creation gets the stricter per-IP limiter
	r.POST("/users", middleware.RateLimitAuthMiddleware(), accountsHandler.CreateAccount)

	// Token-resolved endpoints; the limiter runs after resolution so it can
	// key by account instead of IP.
	auth := r.Group("/", handlers.AccountMiddleware(accountsRepo), middleware.RateLimitMiddleware())
	{
		auth.GET("/users/me", accountsHandler.GetAccount)
		auth.PATCH("/users/me", accountsHandler.UpdateAccount)
		auth.GET("/reports", reportsHandler.GetReport)
	}

	r.Run(settings.HTTPAddr)
}
