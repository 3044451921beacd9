package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPublicOrigin(t *testing.T) {
	tests := []struct {
		name       string
		serverPort int
		baseUrl    string
		validate   func(t *testing.T, origin string, err error)
	}{
		{
			name:       "without BASE_URL env var",
			serverPort: 9000,
			validate: func(t *testing.T, origin string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "http://localhost:9000", origin)
			},
		},
		{
			name:       "with BASE_URL env var",
			serverPort: 8080,
			baseUrl:    "https://blinks.example.com",
			validate: func(t *testing.T, origin string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "https://blinks.example.com", origin)
			},
		},
		{
			name:       "with BASE_URL containing trailing slash and path",
			serverPort: 8080,
			baseUrl:    "https://blinks.example.com/app/",
			validate: func(t *testing.T, origin string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "https://blinks.example.com", origin)
			},
		},
		{
			name:       "with BASE_URL missing scheme",
			serverPort: 8080,
			baseUrl:    "blinks.example.com",
			validate: func(t *testing.T, origin string, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid BASE_URL env var")
				assert.ErrorIs(t, err, ErrInvalidOrigin)
				assert.Equal(t, "", origin)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BASE_URL", tt.baseUrl)

			origin, err := GetPublicOrigin(tt.serverPort)
			tt.validate(t, origin, err)
		})
	}
}
