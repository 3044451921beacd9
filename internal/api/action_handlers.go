package api

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

const (
	actionVersion = "2.1.3"
	// devnet genesis hash
	blockchainIDs = "solana:EtWTRABZaYq6iMfeYKouRu166VU2xqa1"
)

type actionRule struct {
	PathPattern string `json:"pathPattern"`
	APIPath     string `json:"apiPath"`
}

type actionsJSON struct {
	Rules []actionRule `json:"rules"`
}

// handleActionsJSON maps website paths to action API paths for blink clients
func (s *APIServer) handleActionsJSON(c *fiber.Ctx) error {
	setActionHeaders(c)
	return c.JSON(actionsJSON{
		Rules: []actionRule{
			{PathPattern: "/api/actions/**", APIPath: "/api/actions/**"},
		},
	})
}

// handleDonateSolMetadata answers the GET of a donate-sol action URL
func (s *APIServer) handleDonateSolMetadata(c *fiber.Ctx) error {
	setActionHeaders(c)

	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return s.actionError(c, fiber.StatusBadRequest, "Invalid query string")
	}
	params, err := utils.ParseDonateSolParams(query)
	if err != nil {
		return s.actionError(c, fiber.StatusBadRequest, "Missing recipient parameter")
	}
	if !utils.IsValidAmount(params.BaseAmount) {
		return s.actionError(c, fiber.StatusBadRequest, "Invalid baseAmount parameter")
	}

	metadata := s.donationService.Metadata(actionBaseURL(c), params)
	s.recordActionRequest(c.Method(), fiber.StatusOK)
	return c.JSON(metadata)
}

// handleDonateSolTransaction answers the POST of a donate-sol action URL with an
// unsigned transfer for the account in the body
func (s *APIServer) handleDonateSolTransaction(c *fiber.Ctx) error {
	setActionHeaders(c)

	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return s.actionError(c, fiber.StatusBadRequest, "Invalid query string")
	}
	params, err := utils.ParseDonateSolParams(query)
	if err != nil {
		return s.actionError(c, fiber.StatusBadRequest, "Missing recipient parameter")
	}

	var request models.ActionPostRequest
	if errs := decodeBody(c.Body(), &request); errs != nil {
		return s.actionError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return s.actionError(c, fiber.StatusBadRequest, "Invalid account")
	}

	response, err := s.donationService.BuildTransfer(c.UserContext(), request.Account, params, query.Get("amount"))
	switch {
	case errors.Is(err, services.ErrInvalidAccount):
		return s.actionError(c, fiber.StatusBadRequest, "Invalid account")
	case errors.Is(err, services.ErrInvalidRecipient):
		return s.actionError(c, fiber.StatusBadRequest, "Invalid recipient")
	case errors.Is(err, utils.ErrInvalidAmount):
		return s.actionError(c, fiber.StatusBadRequest, "Invalid amount")
	case err != nil:
		s.logger.Error().Err(err).Str("recipient", params.Recipient).Msg("failed to build donation transaction")
		return s.actionError(c, fiber.StatusInternalServerError, "Failed to build transaction")
	}

	s.recordActionRequest(c.Method(), fiber.StatusOK)
	return c.JSON(response)
}

func (s *APIServer) actionError(c *fiber.Ctx, status int, message string) error {
	s.recordActionRequest(c.Method(), status)
	return c.Status(status).JSON(models.ActionError{Message: message})
}

func (s *APIServer) recordActionRequest(method string, status int) {
	if s.metrics != nil {
		s.metrics.RecordActionRequest(method, strconv.Itoa(status))
	}
}

func setActionHeaders(c *fiber.Ctx) {
	c.Set("X-Action-Version", actionVersion)
	c.Set("X-Blockchain-Ids", blockchainIDs)
}

// actionBaseURL is the requested action URL without its amount parameter.
// The remaining parameters keep their original order.
func actionBaseURL(c *fiber.Ctx) string {
	base := c.BaseURL() + c.Path()
	rawQuery := string(c.Request().URI().QueryString())
	if rawQuery == "" {
		return base
	}

	kept := make([]string, 0)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if key == "amount" {
			continue
		}
		kept = append(kept, pair)
	}
	if len(kept) == 0 {
		return base
	}
	return base + "?" + strings.Join(kept, "&")
}
