package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/rxtech-lab/blink-launchpad/internal/api"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/stretchr/testify/suite"
)

type StdioServerTestSuite struct {
	suite.Suite
	dbService services.DBService
	apiServer *api.APIServer
	port      int
	client    *http.Client
}

func (suite *StdioServerTestSuite) SetupSuite() {
	suite.T().Setenv("BASE_URL", "")

	dbService, err := services.NewSqliteDBService(":memory:")
	suite.Require().NoError(err)
	suite.dbService = dbService

	apiServer, port, err := configureAndStartServer(dbService, 0, zerolog.Nop()) // 0 for random port
	suite.Require().NoError(err)
	suite.Require().NotZero(port, "Port should not be 0")

	suite.apiServer = apiServer
	suite.port = port
	suite.client = &http.Client{Timeout: 10 * time.Second}

	// Wait for server to be ready
	time.Sleep(100 * time.Millisecond)
}

func (suite *StdioServerTestSuite) TearDownSuite() {
	if suite.apiServer != nil {
		suite.apiServer.Shutdown()
	}
	if suite.dbService != nil {
		suite.dbService.Close()
	}
}

func (suite *StdioServerTestSuite) getBaseURL() string {
	return fmt.Sprintf("http://localhost:%d", suite.port)
}

func (suite *StdioServerTestSuite) TestHealthEndpointWorks() {
	resp, err := suite.client.Get(suite.getBaseURL() + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)
}

func (suite *StdioServerTestSuite) TestNoMCPEndpointInStdioMode() {
	resp, err := suite.client.Get(suite.getBaseURL() + "/mcp")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusNotFound, resp.StatusCode, "MCP is served over stdio only")
}

func (suite *StdioServerTestSuite) TestMCPServerConfigured() {
	mcpServer := suite.apiServer.GetMCPServer()
	suite.Require().NotNil(mcpServer)
	suite.NotNil(mcpServer.GetSessions())
}

func (suite *StdioServerTestSuite) TestSubmittedActionURLIsServed() {
	session := suite.apiServer.GetMCPServer().GetSessions().Get("stdio-test")
	recipient := solana.NewWallet().PublicKey().String()

	_, err := session.ApplyChange(services.FormChange{
		Fields: models.Patch{"recipientAddress": recipient, "baseAmount": "0.3"},
	})
	suite.Require().NoError(err)

	result, err := session.Submit(context.Background())
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(result.ActionURL, suite.getBaseURL()+"/api/actions/donate-sol?"), result.ActionURL)

	resp, err := suite.client.Get(result.ActionURL)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)

	var metadata models.ActionGetResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&metadata))
	suite.Equal("Donate 0.3 SOL", metadata.Label)

	page, err := suite.client.Get(result.ShareableURL)
	suite.Require().NoError(err)
	defer page.Body.Close()
	suite.Equal(http.StatusOK, page.StatusCode)
}

func TestStdioServerTestSuite(t *testing.T) {
	suite.Run(t, new(StdioServerTestSuite))
}
