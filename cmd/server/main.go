package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/collector"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/commission"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/config"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Setup
	godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	configPath := envOr("CONFIG_PATH", "config.json")
	categoriesPath := envOr("CATEGORIES_PATH", "categories.json")
	frontendDir := envOr("FRONTEND_DIR", "./frontend")

	// 2. Core wiring
	cfg := config.Load(configPath)
	resolver := commission.NewResolver(commission.NewStore(), commission.NewAffiliateClient(), cfg.Affiliate)

	coll, err := collector.NewCollector()
	if err != nil {
		logger.Error("Failed to initialize collector", "error", err)
		os.Exit(1)
	}
	logger.Info("Collector initialized", "mode", os.Getenv("COLLECTOR_MODE"), "affiliate_enabled", cfg.Affiliate.Enabled)

	// 3. Router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	srv := server.New(coll, resolver, configPath, categoriesPath)
	srv.Routes(r)

	// Static frontend with SPA fallback
	r.Static("/assets", frontendDir+"/assets")
	r.GET("/", func(c *gin.Context) {
		c.File(frontendDir + "/index.html")
	})
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(frontendDir + "/index.html")
	})

	logger.Info("Server starting", "port", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
