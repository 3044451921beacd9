package utils

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMockAddress(t *testing.T) {
	address := GenerateMockAddress()
	assert.Len(t, address, 44)
	for _, r := range address {
		assert.True(t, strings.ContainsRune(mockAddressAlphabet, r), "unexpected character %q", r)
	}
	assert.NotEqual(t, address, GenerateMockAddress())
}

func TestGenerateMockAddressAlphabetProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("never emits 0, O, I or l", prop.ForAll(
		func(_ int) bool {
			return !strings.ContainsAny(GenerateMockAddress(), "0OIl")
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}
