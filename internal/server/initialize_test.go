package server

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolanaRPCURL(t *testing.T) {
	t.Setenv("SOLANA_RPC_URL", "")
	assert.Equal(t, defaultSolanaRPC, SolanaRPCURL())

	t.Setenv("SOLANA_RPC_URL", "http://127.0.0.1:8899")
	assert.Equal(t, "http://127.0.0.1:8899", SolanaRPCURL())
}

func TestInitializeServices(t *testing.T) {
	db, err := services.NewSqliteDBService(":memory:")
	require.NoError(t, err)
	defer db.Close()

	creationService, donationService, hookService := InitializeServices(db.GetDB(), defaultSolanaRPC)
	assert.NotNil(t, creationService)
	assert.NotNil(t, donationService)
	assert.NotNil(t, hookService)
}

func TestRegisteredHookBuildsURLsOnSubmit(t *testing.T) {
	m := metrics.NewMetrics("test")
	hookService := services.NewHookService()
	hook := InitializeHooks("https://blinks.example.com", m)
	assert.True(t, hook.CanHandle(models.ActionTypeTipping))
	assert.False(t, hook.CanHandle(models.ActionTypeStaking))
	require.NoError(t, RegisterHooks(hookService, hook))

	sessions := InitializeSessions(hookService, m, zerolog.Nop())
	session := sessions.Get("s1")
	_, err := session.ApplyChange(services.FormChange{Fields: models.Patch{"recipientAddress": "abc"}})
	require.NoError(t, err)

	result, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.ActionURL, "https://blinks.example.com/api/actions/donate-sol?recipient=abc&baseAmount=0.01&"), result.ActionURL)

	params, err := utils.DecodeDonateSolURL(result.ActionURL)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTitle, params.Title)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActionURLsBuilt))
}
