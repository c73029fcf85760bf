package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askdoc-console/internal/api"
	"github.com/liliang-cn/askdoc-console/internal/client"
	"github.com/liliang-cn/askdoc-console/internal/config"
	"github.com/liliang-cn/askdoc-console/internal/console"
	"github.com/liliang-cn/askdoc-console/internal/logging"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

var (
	configPath  = flag.String("config", "", "Path to config file")
	openBrowser = flag.Bool("open", false, "Open the console in the default browser once it is listening")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		registry *prometheus.Registry
		metrics  *client.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = client.NewMetrics(registry)
		gatherer = registry
	}

	// Backend client shared by all controllers
	backend := client.New(client.Options{
		BaseURL: cfg.Backend.BaseURL,
		Paths: client.Paths{
			Documents: cfg.Backend.DocumentsPath,
			Upload:    cfg.Backend.UploadPath,
			QA:        cfg.Backend.QAPath,
			Health:    cfg.Backend.HealthPath,
		},
		TopK:    cfg.Backend.TopK,
		Logger:  logger,
		Metrics: metrics,
	})

	c := console.New(backend, render.New(cfg.UI.Locale), logger)

	// Setup router
	router := api.SetupRouter(c, backend, api.RouterConfig{
		AllowOrigins: cfg.UI.AllowOrigins,
		Metrics:      gatherer,
		Logger:       logger,
	})

	// No write timeout: uploads and questions wait as long as the backend takes.
	srv := &http.Server{
		Addr:        cfg.Address(),
		Handler:     router,
		ReadTimeout: 5 * time.Minute,
		IdleTimeout: 120 * time.Second,
	}

	printBanner()

	// Start server in goroutine
	go func() {
		logger.Info("Starting AskDoc console",
			zap.String("address", cfg.Address()),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Initial inventory load, as on page activation
	go func() {
		view := c.Activate(context.Background())
		logger.Info("Inventory loaded",
			zap.Stringer("state", view.State),
			zap.Int("documents", len(view.Documents)),
		)
	}()

	if *openBrowser {
		if err := openURL(cfg.BaseURL()); err != nil {
			logger.Warn("Failed to open browser", zap.String("url", cfg.BaseURL()), zap.Error(err))
		}
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openURL hands url to the platform's default browser launcher
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

func printBanner() {
	banner := `
   ___   _____  _____
  /   | / ___/ / ___/ ____   ____
 / /| |/ __/  / __ \/ __ \/ __ \
/ ___ / /___ / /_/ // / / // /_/ /
/_/  |_/____//____/ /_/ /_/ \__, /
                           /____/  console
`

	fmt.Println(banner)
}
