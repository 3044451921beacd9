package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file if present
	"github.com/rs/zerolog"
	"github.com/rxtech-lab/blink-launchpad/internal/api"
	"github.com/rxtech-lab/blink-launchpad/internal/mcp"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

func configureAndStartServer(dbService services.DBService, port int, logger zerolog.Logger) (*api.APIServer, int, error) {
	m := metrics.NewMetrics("")
	creationService, donationService, hookService := server.InitializeServices(dbService.GetDB(), server.SolanaRPCURL())

	var portPtr *int
	if port != 0 {
		portPtr = &port
	}

	apiServer := api.NewAPIServer(creationService, donationService, m, logger)
	apiServer.SetupRoutes()

	startedPort, err := apiServer.Start(portPtr)
	if err != nil {
		return nil, 0, err
	}

	origin, err := utils.GetPublicOrigin(startedPort)
	if err != nil {
		apiServer.Shutdown()
		return nil, 0, err
	}
	if err := server.RegisterHooks(hookService, server.InitializeHooks(origin, m)); err != nil {
		apiServer.Shutdown()
		return nil, 0, err
	}

	mcpServer := mcp.NewMCPServer(server.InitializeSessions(hookService, m, logger))
	apiServer.SetMCPServer(mcpServer)
	apiServer.EnableStreamableHttp()

	return apiServer, startedPort, nil
}

func openDatabase() (services.DBService, error) {
	// Postgres when configured, SQLite otherwise
	if postgresUrl := os.Getenv("POSTGRES_URL"); postgresUrl != "" {
		return services.NewPostgresDBService(postgresUrl)
	}
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "blink-launchpad.db"
	}
	return services.NewSqliteDBService(dbPath)
}

func main() {
	logger := utils.NewLogger(os.Getenv("LOG_LEVEL"))

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	parsedPort, err := strconv.Atoi(port)
	if err != nil {
		logger.Fatal().Err(err).Str("port", port).Msg("invalid port number")
	}

	dbService, err := openDatabase()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database service")
	}
	defer dbService.Close()

	apiServer, startedPort, err := configureAndStartServer(dbService, parsedPort, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start API server")
	}

	logger.Info().Int("port", startedPort).Msg("API server started")

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info().Msg("shutting down server")

	if err := apiServer.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error shutting down API server")
	}

	logger.Info().Msg("server shut down successfully")
}
