package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rajkangr/MealSwipeRight/internal/api"
	"github.com/rajkangr/MealSwipeRight/internal/assistant"
	"github.com/rajkangr/MealSwipeRight/internal/catalog"
	"github.com/rajkangr/MealSwipeRight/internal/config"
	"github.com/rajkangr/MealSwipeRight/internal/fitness"
	"github.com/rajkangr/MealSwipeRight/internal/metrics"
	"github.com/rajkangr/MealSwipeRight/internal/storage"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	// Initialize database
	if err := storage.InitDB(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer storage.CloseDB()

	// Load the food catalog; an empty store keeps the session in Loading
	foods := catalog.LoadFile(cfg.Catalog.Path)
	store := catalog.NewStore(foods)
	log.Printf("Loaded %d foods from %s", len(foods), cfg.Catalog.Path)

	// Initialize assistant provider; without a key the assistant degrades
	// to its static fallbacks
	ast := assistant.New(initializeProvider(cfg))

	// Wire services
	fit := fitness.NewService(storage.GetDB())
	state := storage.NewDBStore(storage.GetDB())
	collector := metrics.NewCollector()

	server := api.NewServer(store, fit, ast, state, collector)

	// Start metrics server
	go startMetricsServer(cfg.Server.MetricsPort, collector)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeProvider(cfg *config.Config) assistant.Provider {
	if cfg.Assistant.APIKey == "" {
		log.Println("No assistant API key configured, using fallback replies")
		return nil
	}

	llm, err := openai.New(
		openai.WithModel(cfg.Assistant.Model),
		openai.WithToken(cfg.Assistant.APIKey),
	)
	if err != nil {
		log.Printf("Failed to initialize OpenAI client, using fallback replies: %v", err)
		return nil
	}

	return assistant.NewLLMProvider(llm)
}

func startMetricsServer(port int, collector *metrics.Collector) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
