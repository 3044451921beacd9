package api

import (
	"fmt"
	"net"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	"github.com/rxtech-lab/blink-launchpad/internal/api/middleware"
	"github.com/rxtech-lab/blink-launchpad/internal/mcp"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

type APIServer struct {
	app             *fiber.App
	creationService services.CreationService
	donationService services.DonationService
	metrics         *metrics.Metrics
	logger          zerolog.Logger
	validate        *validator.Validate
	mcpServer       *mcp.MCPServer
	mcpHandler      atomic.Pointer[fiber.Handler]
	port            int
}

func NewAPIServer(creationService services.CreationService, donationService services.DonationService, m *metrics.Metrics, log zerolog.Logger) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Add middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		AllowHeaders:  "Content-Type, Authorization, Content-Encoding, Accept-Encoding",
		ExposeHeaders: "X-Action-Version, X-Blockchain-Ids",
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Output:     log,
	}))
	app.Use(middleware.MetricsMiddleware(middleware.MetricsConfig{
		Metrics:   m,
		SkipPaths: []string{"/metrics", "/health"},
	}))

	return &APIServer{
		app:             app,
		creationService: creationService,
		donationService: donationService,
		metrics:         m,
		logger:          log.With().Str("component", "api").Logger(),
		validate:        NewValidator(),
	}
}

func (s *APIServer) SetupRoutes() {
	// Mock creation endpoints
	s.app.Post("/api/blink", s.handleCreateBlink)
	s.app.Post("/api/token", s.handleCreateToken)
	s.app.Post("/api/nft", s.handleCreateNft)
	s.app.Get("/api/creations", s.handleListCreations)
	s.app.Get("/api/creations/:id", s.handleGetCreation)

	// Solana Actions
	s.app.Get("/actions.json", s.handleActionsJSON)
	s.app.Get("/api/actions/donate-sol", s.handleDonateSolMetadata)
	s.app.Post("/api/actions/donate-sol", s.handleDonateSolTransaction)

	// Shareable landing page
	s.app.Get("/blink", s.handleBlinkPage)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}

	// MCP over streamable HTTP, see EnableStreamableHttp
	s.app.All("/mcp", s.handleStreamableHTTP)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
}

// EnableStreamableHttp serves the MCP server set by SetMCPServer on /mcp.
// It may be called after Start.
func (s *APIServer) EnableStreamableHttp() {
	if s.mcpServer == nil {
		s.logger.Warn().Msg("streamable http requested without an MCP server")
		return
	}
	handler := adaptor.HTTPHandler(s.mcpServer.StreamableHTTPHandler())
	s.mcpHandler.Store(&handler)
}

// handleStreamableHTTP answers 404 until EnableStreamableHttp is called
func (s *APIServer) handleStreamableHTTP(c *fiber.Ctx) error {
	handler := s.mcpHandler.Load()
	if handler == nil {
		return fiber.ErrNotFound
	}
	return (*handler)(c)
}

// Start starts the server on the given port, or on a random available port when port is nil
func (s *APIServer) Start(port *int) (int, error) {
	var selectedPort int
	if port != nil {
		selectedPort = *port
	} else {
		// Find an available port
		listener, err := net.Listen("tcp", ":0")
		if err != nil {
			return 0, fmt.Errorf("failed to find available port: %w", err)
		}
		selectedPort = listener.Addr().(*net.TCPAddr).Port
		// Close the listener so Fiber can use it
		listener.Close()
	}
	s.port = selectedPort

	go func() {
		if err := s.app.Listen(fmt.Sprintf(":%d", selectedPort)); err != nil {
			s.logger.Error().Err(err).Int("port", selectedPort).Msg("error starting API server")
		}
	}()

	return selectedPort, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}

// GetFiberApp exposes the underlying app for adaptors such as the Vercel handler
func (s *APIServer) GetFiberApp() *fiber.App {
	return s.app
}

// SetMCPServer sets the MCP server instance served by EnableStreamableHttp
func (s *APIServer) SetMCPServer(mcpServer *mcp.MCPServer) {
	s.mcpServer = mcpServer
}

// GetMCPServer returns the MCP server instance
func (s *APIServer) GetMCPServer() *mcp.MCPServer {
	return s.mcpServer
}
