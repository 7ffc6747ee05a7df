package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"capsicum/internal/ai"
	"capsicum/internal/api"
	"capsicum/internal/config"
	"capsicum/internal/logging"
	"capsicum/internal/mcp"
	"capsicum/internal/middleware"
	"capsicum/internal/store/sqlstore"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogFile)
	defer logger.Sync()
	middleware.RegisterMetrics()

	logger.Info("starting_application")

	// Initialize store
	store, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatal("database_init_failed", zap.Error(err))
	}
	defer store.Close()

	// Create handlers
	gen := ai.NewGemini(cfg.GeminiKey, cfg.Model)
	handlers := api.NewHandlers(store, gen, logger, []byte(cfg.JWTSecret))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.Routes(r)

	if cfg.MCPEnabled {
		mcpServer := mcp.NewServer(store)
		r.Any("/mcp", gin.WrapH(mcpServer))
	}

	startServer(r, cfg.Port, logger)
}

func startServer(router *gin.Engine, port string, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	logger.Info("starting_http_server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server_forced_shutdown", zap.Error(err))
	}

	logger.Info("server_stopped")
}
