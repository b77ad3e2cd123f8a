package main

//
//  @title           salespulse API
//  @version         1.0
//  @description     Client and sales management with sales analytics and reporting.
//  @termsOfService  https://github.com/guttosm/salespulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/salespulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        clients
//  @tag.description Client CRUD and the custom report
//
//  @tag.name        sales
//  @tag.description Sale CRUD
//
//  @tag.name        stats
//  @tag.description Top clients and sales per day
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/salespulse/config"
	_ "github.com/guttosm/salespulse/docs" // swagger docs
	"github.com/guttosm/salespulse/internal/app"
	"github.com/guttosm/salespulse/internal/ingestion"
	"github.com/guttosm/salespulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the salespulse application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API (clients, sales, statistics, report).
//   - import: Loads every .csv sale file from --dir into the database.
//
// Flags:
//   - --mode:     Execution mode ("api" or "import"). Default: "api".
//   - --dir:      Directory containing .csv sale files. Default: "./data/input".
//   - --parallel: Files imported concurrently (0=auto up to CPU, max 7).
//   - --force:    Re-import files already recorded in the import log.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or import")
	dir := flag.String("dir", "./data/input", "Directory with .csv sale files")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 7)")
	force := flag.Bool("force", false, "Re-import files even if already recorded in the import log")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "import":
		logger.L().Info().Str("dir", *dir).Msg("running import")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		svcs := app.NewServices(db)
		opts := ingestion.Options{
			Parallel:  *parallel,
			BatchSize: config.AppConfig.Import.BatchSize,
			Force:     *force,
		}

		ictx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := ingestion.ProcessDirectory(ictx, *dir, svcs.ClientsRepo, svcs.SalesRepo, opts); err != nil {
			logger.L().Error().Err(err).Msg("import failed")
			stop()
			_ = db.Close()
			os.Exit(1)
		}
		logger.L().Info().Msg("import completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
