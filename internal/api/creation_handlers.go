package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

const (
	// nftPlaceholderImage stands in for the uploaded image, which is never stored
	nftPlaceholderImage = "https://example.com/nft-image.png"
	createdAtLayout     = "2006-01-02T15:04:05.000Z"
)

// handleCreateBlink validates and echoes a blink configuration. Blinks are not persisted.
func (s *APIServer) handleCreateBlink(c *fiber.Ctx) error {
	kind := models.CreationKindBlink

	var config models.ActionConfig
	if errs := decodeBody(c.Body(), &config); errs != nil {
		return s.rejectCreation(c, kind, errs)
	}
	if err := s.validate.Struct(config); err != nil {
		return s.rejectCreation(c, kind, fieldErrors(err))
	}

	data, err := toJSON(config)
	if err != nil {
		return s.failCreation(c, kind, err)
	}
	data["id"] = uuid.New().String()
	data["createdAt"] = formatCreatedAt(time.Now())

	s.recordMockCreation(kind, "created")
	return c.JSON(models.CreationResponse{
		Success: true,
		Message: "Blink created successfully",
		Data:    data,
	})
}

func (s *APIServer) handleCreateToken(c *fiber.Ctx) error {
	kind := models.CreationKindToken

	var request models.TokenRequest
	if errs := decodeBody(c.Body(), &request); errs != nil {
		return s.rejectCreation(c, kind, errs)
	}
	if err := s.validate.Struct(request); err != nil {
		return s.rejectCreation(c, kind, fieldErrors(err))
	}

	data, err := toJSON(request)
	if err != nil {
		return s.failCreation(c, kind, err)
	}
	id := uuid.New().String()
	address := utils.GenerateMockAddress()
	data["id"] = id
	data["createdAt"] = formatCreatedAt(time.Now())
	data["address"] = address

	if err := s.creationService.RecordCreation(&models.CreationRecord{
		ID:      id,
		Kind:    kind,
		Name:    request.Name,
		Address: address,
		Payload: data,
	}); err != nil {
		return s.failCreation(c, kind, err)
	}

	s.recordMockCreation(kind, "created")
	return c.JSON(models.CreationResponse{
		Success: true,
		Message: "Token created successfully",
		Data:    data,
	})
}

func (s *APIServer) handleCreateNft(c *fiber.Ctx) error {
	kind := models.CreationKindNft

	request, err := parseNftForm(c)
	if err != nil {
		return s.failCreation(c, kind, err)
	}

	id := uuid.New().String()
	address := utils.GenerateMockAddress()
	data := models.JSON{
		"id":          id,
		"name":        request.Name,
		"description": request.Description,
		"imageUrl":    nftPlaceholderImage,
		"collection":  request.Collection,
		"attributes":  request.Attributes,
		"royalty":     request.Royalty,
		"createdAt":   formatCreatedAt(time.Now()),
		"address":     address,
	}

	if err := s.creationService.RecordCreation(&models.CreationRecord{
		ID:      id,
		Kind:    kind,
		Name:    request.Name,
		Address: address,
		Payload: data,
	}); err != nil {
		return s.failCreation(c, kind, err)
	}

	s.recordMockCreation(kind, "created")
	return c.JSON(models.CreationResponse{
		Success: true,
		Message: "NFT created successfully",
		Data:    data,
	})
}

// handleGetCreation returns the receipt of a token or NFT creation
func (s *APIServer) handleGetCreation(c *fiber.Ctx) error {
	record, err := s.creationService.GetCreation(c.Params("id"))
	if errors.Is(err, services.ErrCreationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(models.CreationResponse{Success: false, Error: "Not Found"})
	}
	if err != nil {
		s.logger.Error().Err(err).Str("id", c.Params("id")).Msg("failed to load creation")
		return c.Status(fiber.StatusInternalServerError).JSON(models.CreationResponse{Success: false, Error: "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": record})
}

func (s *APIServer) handleListCreations(c *fiber.Ctx) error {
	kind := models.CreationKind(c.Query("kind"))
	records, err := s.creationService.ListCreations(kind)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("failed to list creations")
		return c.Status(fiber.StatusInternalServerError).JSON(models.CreationResponse{Success: false, Error: "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// parseNftForm reads the multipart (or url-encoded) NFT form. Malformed
// attributes are an error; an unparseable royalty becomes nil.
func parseNftForm(c *fiber.Ctx) (*models.NftRequest, error) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) && !strings.HasPrefix(contentType, fiber.MIMEApplicationForm) {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	request := &models.NftRequest{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Collection:  c.FormValue("collection"),
		Attributes:  []any{},
	}

	if image, err := c.FormFile("image"); err == nil {
		request.ImageName = image.Filename
	}

	if raw := c.FormValue("attributes"); raw != "" {
		var attributes any
		if err := json.Unmarshal([]byte(raw), &attributes); err != nil {
			return nil, fmt.Errorf("failed to parse attributes: %w", err)
		}
		request.Attributes = attributes
	}

	if royalty, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("royalty")), 64); err == nil && !math.IsNaN(royalty) && !math.IsInf(royalty, 0) {
		request.Royalty = &royalty
	}

	return request, nil
}

func (s *APIServer) rejectCreation(c *fiber.Ctx, kind models.CreationKind, errs []models.FieldError) error {
	s.recordMockCreation(kind, "rejected")
	return c.Status(fiber.StatusBadRequest).JSON(models.CreationResponse{Success: false, Error: errs})
}

func (s *APIServer) failCreation(c *fiber.Ctx, kind models.CreationKind, err error) error {
	s.logger.Error().Err(err).Str("kind", string(kind)).Msg("mock creation failed")
	s.recordMockCreation(kind, "failed")
	return c.Status(fiber.StatusInternalServerError).JSON(models.CreationResponse{Success: false, Error: "Internal Server Error"})
}

func (s *APIServer) recordMockCreation(kind models.CreationKind, status string) {
	if s.metrics != nil {
		s.metrics.RecordMockCreation(string(kind), status)
	}
}

func toJSON(value any) (models.JSON, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	var data models.JSON
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return data, nil
}

func formatCreatedAt(t time.Time) string {
	return t.UTC().Format(createdAtLayout)
}
