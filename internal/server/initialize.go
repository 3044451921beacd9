package server

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rxtech-lab/blink-launchpad/internal/hooks"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
	"gorm.io/gorm"
)

const defaultSolanaRPC = "https://api.devnet.solana.com"

// SolanaRPCURL returns SOLANA_RPC_URL or the devnet endpoint
func SolanaRPCURL() string {
	if rpcURL := os.Getenv("SOLANA_RPC_URL"); rpcURL != "" {
		return rpcURL
	}
	return defaultSolanaRPC
}

func InitializeServices(db *gorm.DB, rpcURL string) (services.CreationService, services.DonationService, services.HookService) {
	creationService := services.NewCreationService(db)
	donationService := services.NewDonationService(services.NewRPCBlockhashProvider(rpcURL))
	hookService := services.NewHookService()

	return creationService, donationService, hookService
}

// InitializeHooks builds the submit hooks. origin is the public origin action URLs point at.
func InitializeHooks(origin string, m *metrics.Metrics) services.Hook {
	return hooks.NewDonateSolHook(origin, m)
}

func RegisterHooks(hookService services.HookService, donateSolHook services.Hook) error {
	if err := hookService.AddHook(donateSolHook); err != nil {
		return fmt.Errorf("failed to register donate-sol hook: %w", err)
	}
	return nil
}

// InitializeSessions wires the editor sessions served over MCP
func InitializeSessions(hookService services.HookService, m *metrics.Metrics, logger zerolog.Logger) services.SessionManager {
	return services.NewSessionManager(hookService, utils.NewActionClient(), m, logger)
}
