package utils

import (
	"fmt"
	"os"
)

// GetPublicOrigin returns the origin action URLs are built against.
// BASE_URL overrides the local listener address.
func GetPublicOrigin(serverPort int) (string, error) {
	if baseUrl := os.Getenv("BASE_URL"); baseUrl != "" {
		origin, err := NormalizeOrigin(baseUrl)
		if err != nil {
			return "", fmt.Errorf("invalid BASE_URL env var: %w", err)
		}
		return origin, nil
	}

	return fmt.Sprintf("http://localhost:%d", serverPort), nil
}
