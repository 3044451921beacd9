package services_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecipient = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func fieldValue(preview models.PreviewViewModel, key string) (string, bool) {
	for _, field := range preview.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

func TestProjectPreview_TippingDefaults(t *testing.T) {
	config := models.DefaultActionConfig()
	config.Tipping.RecipientAddress = validRecipient

	preview := services.ProjectPreview(config)
	assert.Equal(t, models.ActionTypeTipping, preview.Type)
	assert.Equal(t, models.DefaultTitle, preview.Title)
	assert.Equal(t, models.DefaultDescription, preview.Description)
	assert.Equal(t, models.DefaultImageURL, preview.ImageURL)
	assert.Equal(t, "Donate SOL", preview.Label)
	assert.Equal(t, []string{"5", "10", "20"}, preview.Amounts)
	assert.Empty(t, preview.Errors)

	recipient, ok := fieldValue(preview, "recipientAddress")
	assert.True(t, ok)
	assert.Equal(t, validRecipient, recipient)
}

func TestProjectPreview_TippingMarkers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.ActionConfig)
		field  string
		code   models.PreviewErrorCode
	}{
		{
			name:   "missing recipient",
			mutate: func(c *models.ActionConfig) {},
			field:  "recipientAddress",
			code:   models.PreviewErrorMissingRecipient,
		},
		{
			name:   "recipient not base58",
			mutate: func(c *models.ActionConfig) { c.Tipping.RecipientAddress = "0OIl-not-an-address" },
			field:  "recipientAddress",
			code:   models.PreviewErrorInvalidAddress,
		},
		{
			name: "negative base amount",
			mutate: func(c *models.ActionConfig) {
				c.Tipping.RecipientAddress = validRecipient
				c.Tipping.BaseAmount = "-1"
			},
			field: "baseAmount",
			code:  models.PreviewErrorInvalidAmount,
		},
		{
			name: "suggested amount not a number",
			mutate: func(c *models.ActionConfig) {
				c.Tipping.RecipientAddress = validRecipient
				c.Tipping.SuggestedAmounts = []string{"5", "ten"}
			},
			field: "suggestedAmounts[1]",
			code:  models.PreviewErrorInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := models.DefaultActionConfig()
			tt.mutate(&config)

			preview := services.ProjectPreview(config)
			require.Len(t, preview.Errors, 1)
			assert.Equal(t, tt.field, preview.Errors[0].Field)
			assert.Equal(t, tt.code, preview.Errors[0].Code)
			assert.True(t, preview.HasError(tt.field))
			// the rest of the preview stays populated
			assert.NotEmpty(t, preview.Title)
			assert.NotEmpty(t, preview.Fields)
		})
	}
}

func TestProjectPreview_BuyNftAttributes(t *testing.T) {
	config := models.DefaultActionConfig()
	config.Type = models.ActionTypeBuyNft
	config.BuyNft.NftID = "42"
	config.BuyNft.Price = "1.5"
	config.BuyNft.Message = "rare one"

	t.Run("valid attributes are parsed", func(t *testing.T) {
		config.BuyNft.Attributes = `[{"trait_type":"eyes","value":"laser"},{"trait_type":"level","value":3}]`
		preview := services.ProjectPreview(config)
		assert.Empty(t, preview.Errors)
		require.Len(t, preview.Attributes, 2)
		assert.Equal(t, "eyes", preview.Attributes[0].TraitType)
		assert.Equal(t, "laser", preview.Attributes[0].Value)
		assert.Equal(t, float64(3), preview.Attributes[1].Value)
	})

	t.Run("malformed attributes only mark their field", func(t *testing.T) {
		config.BuyNft.Attributes = `[{"trait_type":"eyes"`
		preview := services.ProjectPreview(config)
		require.Len(t, preview.Errors, 1)
		assert.Equal(t, "attributes", preview.Errors[0].Field)
		assert.Equal(t, models.PreviewErrorMalformedJSON, preview.Errors[0].Code)
		assert.Nil(t, preview.Attributes)

		assert.Equal(t, "Buy NFT #42", preview.Title)
		assert.Equal(t, "rare one", preview.Description)
		assert.Equal(t, "Buy for 1.5 SOL", preview.Label)
		price, ok := fieldValue(preview, "price")
		assert.True(t, ok)
		assert.Equal(t, "1.5", price)
	})
}

func TestProjectPreview_CustomParameters(t *testing.T) {
	config := models.DefaultActionConfig()
	config.Type = models.ActionTypeCustom
	config.Custom.Name = "Vote"
	config.Custom.Description = "DAO vote"

	config.Custom.Parameters = `{"proposal": 7, "choice": "yes"}`
	preview := services.ProjectPreview(config)
	assert.Empty(t, preview.Errors)
	assert.Equal(t, map[string]any{"proposal": float64(7), "choice": "yes"}, preview.Parameters)

	config.Custom.Parameters = `{proposal: 7}`
	preview = services.ProjectPreview(config)
	require.Len(t, preview.Errors, 1)
	assert.Equal(t, "parameters", preview.Errors[0].Field)
	assert.Equal(t, models.PreviewErrorMalformedJSON, preview.Errors[0].Code)
	assert.Equal(t, "Vote", preview.Title)
	assert.Equal(t, "DAO vote", preview.Description)
	approval, ok := fieldValue(preview, "requiresApproval")
	assert.True(t, ok)
	assert.Equal(t, "yes", approval)
}

func TestProjectPreview_TokenSwapAndStaking(t *testing.T) {
	config := models.DefaultActionConfig()
	config.Type = models.ActionTypeTokenSwap
	config.TokenSwap.FromToken = "SOL"
	config.TokenSwap.ToToken = "USDC"
	config.TokenSwap.Amount = "2"

	preview := services.ProjectPreview(config)
	assert.Equal(t, "Swap SOL → USDC", preview.Title)
	slippage, _ := fieldValue(preview, "slippage")
	assert.Equal(t, "0.5%", slippage)
	deadline, _ := fieldValue(preview, "deadline")
	assert.Equal(t, "10 min", deadline)

	config.Type = models.ActionTypeStaking
	config.Staking.Token = "JUP"
	config.Staking.Amount = "abc"
	preview = services.ProjectPreview(config)
	assert.Equal(t, "Stake JUP", preview.Title)
	assert.True(t, preview.HasError("amount"))
	period, _ := fieldValue(preview, "period")
	assert.Equal(t, "30 days", period)
}

func TestProjectPreviewProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("equal snapshots project to equal view-models", prop.ForAll(
		func(variant any, text, amount string) bool {
			config := models.DefaultActionConfig()
			config.Type = variant.(models.ActionType)
			config.Tipping.RecipientAddress = text
			config.Tipping.BaseAmount = amount
			config.BuyNft.Attributes = text
			config.Custom.Parameters = text
			config.Staking.Amount = amount

			a := services.ProjectPreview(config)
			b := services.ProjectPreview(config.Clone())
			return reflect.DeepEqual(a, b)
		},
		gen.OneConstOf(
			models.ActionTypeTokenSwap,
			models.ActionTypeBuyNft,
			models.ActionTypeStaking,
			models.ActionTypeCustom,
			models.ActionTypeTipping,
		),
		gen.AnyString(),
		gen.OneGenOf(gen.NumString(), gen.AlphaString()),
	))

	properties.Property("projection never loses the title", prop.ForAll(
		func(attributes string) bool {
			config := models.DefaultActionConfig()
			config.Type = models.ActionTypeBuyNft
			config.BuyNft.Attributes = attributes
			return services.ProjectPreview(config).Title != ""
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
