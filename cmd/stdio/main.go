package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rxtech-lab/blink-launchpad/internal/api"
	"github.com/rxtech-lab/blink-launchpad/internal/mcp"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func configureAndStartServer(dbService services.DBService, port int, logger zerolog.Logger) (*api.APIServer, int, error) {
	m := metrics.NewMetrics("")
	creationService, donationService, hookService := server.InitializeServices(dbService.GetDB(), server.SolanaRPCURL())

	// Initialize API server (action endpoints, landing page, mock creation endpoints)
	apiServer := api.NewAPIServer(creationService, donationService, m, logger)
	apiServer.SetupRoutes()

	// Start API server first: action URLs are built against its origin
	var portPtr *int
	if port != 0 {
		portPtr = &port
	}
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

	sessions := server.InitializeSessions(hookService, m, logger)
	mcpServer := mcp.NewMCPServer(sessions)
	apiServer.SetMCPServer(mcpServer)

	return apiServer, startedPort, nil
}

func databasePath() (string, error) {
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		return path, nil
	}
	homePath, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homePath, "blink-launchpad.db"), nil
}

func main() {
	// Command line flags
	var showVersion = flag.Bool("version", false, "Show version information")
	var showHelp = flag.Bool("help", false, "Show help information")
	var enableLog = flag.Bool("log", false, "Enable logging output")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr and only when asked for
	logger := zerolog.Nop()
	if *enableLog {
		logger = utils.NewLoggerWithWriter(os.Stderr, os.Getenv("LOG_LEVEL"))
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if *showVersion {
		fmt.Fprintf(os.Stderr, "Blink Launchpad MCP Server\n")
		fmt.Fprintf(os.Stderr, "Version: %s\n", Version)
		fmt.Fprintf(os.Stderr, "Commit: %s\n", CommitHash)
		fmt.Fprintf(os.Stderr, "Built: %s\n", BuildTime)
		return
	}

	if *showHelp {
		fmt.Fprintf(os.Stderr, "Blink Launchpad MCP Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --version    Show version information\n")
		fmt.Fprintf(os.Stderr, "  --help       Show this help message\n")
		fmt.Fprintf(os.Stderr, "  --log        Enable logging output\n\n")
		fmt.Fprintf(os.Stderr, "Description:\n")
		fmt.Fprintf(os.Stderr, "  Configure Solana blinks (tipping, token swap, NFT purchase, staking, custom)\n")
		fmt.Fprintf(os.Stderr, "  and publish donate-sol action URLs. Provides 6 MCP tools.\n\n")
		fmt.Fprintf(os.Stderr, "Database: ~/blink-launchpad.db (SQLite, override with DATABASE_PATH)\n")
		fmt.Fprintf(os.Stderr, "Web Interface: http://localhost:[random-port]\n")
		return
	}

	dbPath, err := databasePath()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve database path")
	}

	dbService, err := services.NewSqliteDBService(dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer dbService.Close()

	// Configure and start server
	apiServer, port, err := configureAndStartServer(dbService, 0, logger) // 0 for random port
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start API server")
	}

	logger.Info().Int("port", port).Msg("API server started")

	mcpServer := apiServer.GetMCPServer()
	if mcpServer == nil {
		logger.Fatal().Msg("MCP server not found")
	}

	// Start MCP server in a goroutine
	go func() {
		if err := mcpServer.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start MCP server: %v\n", err)
			os.Exit(1)
		}
	}()

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info().Msg("shutting down servers")

	if err := apiServer.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Error shutting down API server: %v\n", err)
	}

	logger.Info().Msg("servers shut down successfully")
}
