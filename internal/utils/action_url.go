package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

const (
	// DonateSolPath is the action endpoint resolved by wallet-aware renderers
	DonateSolPath = "/api/actions/donate-sol"
	// BlinkPath is the landing page wrapping an action URL in its action parameter
	BlinkPath = "/blink"
)

var (
	ErrMissingRecipient = errors.New("missing recipient")
	ErrMissingAction    = errors.New("missing action parameter")
	ErrInvalidOrigin    = errors.New("invalid origin")
)

// NormalizeOrigin validates that origin is an absolute http(s) origin and strips
// any path, query or trailing slash.
func NormalizeOrigin(origin string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidOrigin, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidOrigin)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

// BuildDonateSolURL encodes the tipping payload into the donate-sol action URL.
// Parameters are written in a fixed order and only when the source field is
// non-empty, so the same payload always yields the same URL.
func BuildDonateSolURL(origin string, tipping models.TippingConfig) (string, error) {
	base, err := NormalizeOrigin(origin)
	if err != nil {
		return "", err
	}

	params := []struct {
		key   string
		value string
	}{
		{"recipient", tipping.RecipientAddress},
		{"baseAmount", tipping.BaseAmount},
		{"imageUrl", tipping.ImageURL},
		{"title", tipping.Title},
		{"description", tipping.Description},
	}

	var query strings.Builder
	for _, p := range params {
		if p.value == "" {
			continue
		}
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(p.key)
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(p.value))
	}

	if query.Len() == 0 {
		return base + DonateSolPath, nil
	}
	return base + DonateSolPath + "?" + query.String(), nil
}

// BuildShareableURL wraps an action URL as the action parameter of the landing page.
// The inner URL is escaped again on purpose.
func BuildShareableURL(origin string, actionURL string) (string, error) {
	base, err := NormalizeOrigin(origin)
	if err != nil {
		return "", err
	}
	return base + BlinkPath + "?action=" + url.QueryEscape(actionURL), nil
}

// ParseDonateSolParams decodes a donate-sol query. Only recipient is mandatory.
func ParseDonateSolParams(query url.Values) (models.DonateSolParams, error) {
	recipient := query.Get("recipient")
	if recipient == "" {
		return models.DonateSolParams{}, ErrMissingRecipient
	}

	return models.DonateSolParams{
		Recipient:   recipient,
		BaseAmount:  valueOrDefault(query.Get("baseAmount"), models.DefaultBaseAmount),
		ImageURL:    valueOrDefault(query.Get("imageUrl"), models.DefaultImageURL),
		Title:       valueOrDefault(query.Get("title"), models.DefaultTitle),
		Description: valueOrDefault(query.Get("description"), models.DefaultDescription),
	}, nil
}

// DecodeDonateSolURL parses a full donate-sol action URL
func DecodeDonateSolURL(rawURL string) (models.DonateSolParams, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return models.DonateSolParams{}, fmt.Errorf("invalid action url: %w", err)
	}
	return ParseDonateSolParams(parsed.Query())
}

// ExtractActionURL returns the inner action URL carried by a shareable link
func ExtractActionURL(shareableURL string) (string, error) {
	parsed, err := url.Parse(shareableURL)
	if err != nil {
		return "", fmt.Errorf("invalid shareable url: %w", err)
	}
	action := parsed.Query().Get("action")
	if action == "" {
		return "", ErrMissingAction
	}
	return action, nil
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
