package api

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/blink-launchpad/internal/assets"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

type ErrorPageData struct {
	Title      string
	Message    string
	StatusCode int
}

type BlinkPageData struct {
	ActionURL   string
	Title       string
	Description string
	ImageURL    string
	Label       string
	Recipient   string
}

// renderErrorPage renders the error HTML template with the provided data
func (s *APIServer) renderErrorPage(c *fiber.Ctx, statusCode int, title, message string) error {
	data := ErrorPageData{
		Title:      title,
		Message:    message,
		StatusCode: statusCode,
	}

	tmpl, err := template.New("error").Parse(string(assets.ErrorHTML))
	if err != nil {
		s.logger.Error().Err(err).Msg("error parsing error template")
		return c.Status(statusCode).SendString(title)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Msg("error rendering error template")
		return c.Status(statusCode).SendString(title)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Status(statusCode).Send(buf.Bytes())
}

// handleBlinkPage serves the shareable landing page for /blink?action=<action url>
func (s *APIServer) handleBlinkPage(c *fiber.Ctx) error {
	actionURL := c.Query("action")
	if actionURL == "" {
		return s.renderErrorPage(c, fiber.StatusBadRequest, "Missing Action",
			"This blink link does not carry an action URL. Ask the creator to share the link again.")
	}

	parsed, err := url.Parse(actionURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return s.renderErrorPage(c, fiber.StatusBadRequest, "Invalid Action",
			"The action URL of this blink is not an absolute http(s) URL.")
	}

	data := BlinkPageData{
		ActionURL: actionURL,
		Title:     "Solana Action",
	}
	// donate-sol links carry their metadata in the query
	if parsed.Path == utils.DonateSolPath {
		if params, err := utils.ParseDonateSolParams(parsed.Query()); err == nil {
			data = blinkPageFromDonation(actionURL, params)
		}
	}

	tmpl, err := template.New("blink").Parse(string(assets.BlinkHTML))
	if err != nil {
		s.logger.Error().Err(err).Msg("error parsing blink template")
		return s.renderErrorPage(c, fiber.StatusInternalServerError, "Template Error", "Failed to load the blink page.")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Msg("error rendering blink template")
		return s.renderErrorPage(c, fiber.StatusInternalServerError, "Template Error", "Failed to render the blink page.")
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

func blinkPageFromDonation(actionURL string, params models.DonateSolParams) BlinkPageData {
	return BlinkPageData{
		ActionURL:   actionURL,
		Title:       params.Title,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		Label:       fmt.Sprintf("Donate %s SOL", params.BaseAmount),
		Recipient:   params.Recipient,
	}
}
