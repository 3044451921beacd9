package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rxtech-lab/blink-launchpad/internal/api"
	"github.com/rxtech-lab/blink-launchpad/internal/mcp"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

var (
	apiServer *api.APIServer
	initOnce  sync.Once
	initErr   error
)

// Handler is the main Vercel function handler
func Handler(w http.ResponseWriter, r *http.Request) {
	// Initialize the API server only once
	initOnce.Do(func() {
		initErr = initializeAPIServer()
	})
	if initErr != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Use Fiber's HTTP adaptor to handle the request with the existing API server
	adaptor.FiberApp(apiServer.GetFiberApp())(w, r)
}

// initializeAPIServer wires the same services as cmd/streamable-http, without listening on a port
func initializeAPIServer() error {
	logger := utils.NewLogger(os.Getenv("LOG_LEVEL"))

	dbService, err := openDatabase()
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	origin := os.Getenv("BASE_URL")
	if origin == "" && os.Getenv("VERCEL_URL") != "" {
		origin = "https://" + os.Getenv("VERCEL_URL")
	}
	if origin, err = utils.NormalizeOrigin(origin); err != nil {
		return fmt.Errorf("BASE_URL or VERCEL_URL is required: %w", err)
	}

	m := metrics.NewMetrics("")
	creationService, donationService, hookService := server.InitializeServices(dbService.GetDB(), server.SolanaRPCURL())
	if err := server.RegisterHooks(hookService, server.InitializeHooks(origin, m)); err != nil {
		return err
	}

	apiServer = api.NewAPIServer(creationService, donationService, m, logger)
	apiServer.SetupRoutes()
	apiServer.SetMCPServer(mcp.NewMCPServer(server.InitializeSessions(hookService, m, logger)))
	apiServer.EnableStreamableHttp()

	// Add a root route for Vercel
	apiServer.GetFiberApp().Get("/", func(c *fiber.Ctx) error {
		return c.JSON(map[string]interface{}{
			"message": "Blink Launchpad API",
			"status":  "running",
			"version": "1.0.0",
		})
	})

	return nil
}

func openDatabase() (services.DBService, error) {
	if postgresUrl := os.Getenv("POSTGRES_URL"); postgresUrl != "" {
		return services.NewPostgresDBService(postgresUrl)
	}
	dbPath, err := getDatabasePath()
	if err != nil {
		return nil, err
	}
	return services.NewSqliteDBService(dbPath)
}

// getDatabasePath returns the appropriate database path for Vercel environment
func getDatabasePath() (string, error) {
	// In Vercel, only /tmp is writable
	if os.Getenv("VERCEL") == "1" {
		return "/tmp/blink-launchpad.db", nil
	}

	homePath, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homePath, "blink-launchpad.db"), nil
}
