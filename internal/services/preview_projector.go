package services

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

// ProjectPreview derives the preview view-model from a snapshot. It is pure:
// equal snapshots always give equal view-models, and a field that cannot be
// projected only adds an entry to Errors.
func ProjectPreview(config models.ActionConfig) models.PreviewViewModel {
	preview := models.PreviewViewModel{
		Type:   config.Type,
		Fields: []models.PreviewField{},
	}

	switch config.Type {
	case models.ActionTypeTipping:
		projectTipping(&preview, config.Tipping)
	case models.ActionTypeTokenSwap:
		projectTokenSwap(&preview, config.TokenSwap)
	case models.ActionTypeBuyNft:
		projectBuyNft(&preview, config.BuyNft)
	case models.ActionTypeStaking:
		projectStaking(&preview, config.Staking)
	case models.ActionTypeCustom:
		projectCustom(&preview, config.Custom)
	}
	return preview
}

func projectTipping(p *models.PreviewViewModel, t models.TippingConfig) {
	token := valueOr(t.Token, models.DefaultToken)
	p.Title = valueOr(t.Title, models.DefaultTitle)
	p.Description = valueOr(t.Description, models.DefaultDescription)
	p.ImageURL = valueOr(t.ImageURL, models.DefaultImageURL)
	p.Label = "Donate " + token

	switch {
	case t.RecipientAddress == "":
		addError(p, "recipientAddress", models.PreviewErrorMissingRecipient, "recipient address is required to share this blink")
	case !utils.IsValidSolanaAddress(t.RecipientAddress):
		addError(p, "recipientAddress", models.PreviewErrorInvalidAddress, "recipient address is not a valid base58 public key")
	}

	for i, amount := range t.SuggestedAmounts {
		p.Amounts = append(p.Amounts, amount)
		checkAmount(p, fmt.Sprintf("suggestedAmounts[%d]", i), amount)
	}
	checkAmount(p, "baseAmount", t.BaseAmount)

	addField(p, "recipientAddress", "Recipient", t.RecipientAddress)
	addField(p, "token", "Token", token)
	addField(p, "baseAmount", "Base amount", t.BaseAmount)
	if t.Message != "" {
		addField(p, "message", "Message", t.Message)
	}
	addField(p, "customAmount", "Custom amount", yesNo(t.CustomAmountAllowed))
	addField(p, "allowAnonymous", "Anonymous donations", yesNo(t.AllowAnonymous))
	addField(p, "showLeaderboard", "Leaderboard", yesNo(t.ShowLeaderboard))
}

func projectTokenSwap(p *models.PreviewViewModel, s models.TokenSwapConfig) {
	from := valueOr(s.FromToken, "?")
	to := valueOr(s.ToToken, "?")
	p.Title = fmt.Sprintf("Swap %s → %s", from, to)
	p.Description = fmt.Sprintf("Swap %s %s for %s", valueOr(s.Amount, "0"), from, to)
	p.Label = "Swap"

	checkAmount(p, "amount", s.Amount)

	addField(p, "fromToken", "From", s.FromToken)
	addField(p, "toToken", "To", s.ToToken)
	addField(p, "amount", "Amount", s.Amount)
	addField(p, "slippage", "Slippage", strconv.FormatFloat(s.SlippagePercent, 'f', -1, 64)+"%")
	addField(p, "deadline", "Deadline", fmt.Sprintf("%d min", s.DeadlineMinutes))
	addField(p, "autoExecute", "Auto execute", yesNo(s.AutoExecute))
}

func projectBuyNft(p *models.PreviewViewModel, n models.BuyNftConfig) {
	currency := valueOr(n.Currency, models.DefaultToken)
	if n.NftID != "" {
		p.Title = "Buy NFT #" + n.NftID
	} else {
		p.Title = "Buy NFT"
	}
	p.Description = n.Message
	p.Label = fmt.Sprintf("Buy for %s %s", valueOr(n.Price, "0"), currency)

	checkAmount(p, "price", n.Price)

	if n.Attributes != "" {
		var attributes []models.PreviewAttribute
		if err := json.Unmarshal([]byte(n.Attributes), &attributes); err != nil {
			addError(p, "attributes", models.PreviewErrorMalformedJSON, "attributes must be a JSON array of {trait_type, value}: "+err.Error())
		} else {
			p.Attributes = attributes
		}
	}

	addField(p, "collectionAddress", "Collection", n.CollectionAddress)
	addField(p, "nftId", "NFT", n.NftID)
	addField(p, "price", "Price", n.Price)
	addField(p, "currency", "Currency", currency)
	if n.ExpiryDate != "" {
		addField(p, "expiryDate", "Expires", n.ExpiryDate)
	}
}

func projectStaking(p *models.PreviewViewModel, s models.StakingConfig) {
	token := valueOr(s.Token, "?")
	p.Title = "Stake " + token
	p.Description = fmt.Sprintf("Stake %s %s for %d days", valueOr(s.Amount, "0"), token, s.PeriodDays)
	p.Label = "Stake"

	checkAmount(p, "amount", s.Amount)
	checkAmount(p, "expectedYield", s.ExpectedYieldPercent)

	addField(p, "token", "Token", s.Token)
	addField(p, "amount", "Amount", s.Amount)
	addField(p, "period", "Period", fmt.Sprintf("%d days", s.PeriodDays))
	if s.ExpectedYieldPercent != "" {
		addField(p, "expectedYield", "Expected yield", s.ExpectedYieldPercent+"%")
	}
	addField(p, "poolAddress", "Pool", s.PoolAddress)
	addField(p, "autoCompound", "Auto compound", yesNo(s.AutoCompound))
}

func projectCustom(p *models.PreviewViewModel, c models.CustomConfig) {
	p.Title = valueOr(c.Name, "Custom action")
	p.Description = c.Description
	p.Label = "Run"

	if c.Parameters != "" {
		var parameters any
		if err := json.Unmarshal([]byte(c.Parameters), &parameters); err != nil {
			addError(p, "parameters", models.PreviewErrorMalformedJSON, "parameters must be valid JSON: "+err.Error())
		} else {
			p.Parameters = parameters
		}
	}

	addField(p, "instructions", "Instructions", c.Instructions)
	addField(p, "requiresApproval", "Requires approval", yesNo(c.RequiresApproval))
}

func checkAmount(p *models.PreviewViewModel, field, value string) {
	if value == "" {
		return
	}
	if !utils.IsValidAmount(value) {
		addError(p, field, models.PreviewErrorInvalidAmount, fmt.Sprintf("%q is not a non-negative number", value))
	}
}

func addField(p *models.PreviewViewModel, key, label, value string) {
	p.Fields = append(p.Fields, models.PreviewField{Key: key, Label: label, Value: value})
}

func addError(p *models.PreviewViewModel, field string, code models.PreviewErrorCode, message string) {
	p.Errors = append(p.Errors, models.PreviewFieldError{Field: field, Code: code, Message: message})
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
