package models

// ActionType is the discriminant of an ActionConfig
type ActionType string

const (
	ActionTypeTokenSwap ActionType = "tokenSwap"
	ActionTypeBuyNft    ActionType = "buyNft"
	ActionTypeStaking   ActionType = "staking"
	ActionTypeCustom    ActionType = "custom"
	ActionTypeTipping   ActionType = "tipping"
)

// AllActionTypes lists every known variant in display order
var AllActionTypes = []ActionType{
	ActionTypeTokenSwap,
	ActionTypeBuyNft,
	ActionTypeStaking,
	ActionTypeCustom,
	ActionTypeTipping,
}

// IsValid reports whether t is one of the five known variants
func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeTokenSwap, ActionTypeBuyNft, ActionTypeStaking, ActionTypeCustom, ActionTypeTipping:
		return true
	}
	return false
}

// Tipping defaults shared by the editor, the URL codec and the donate-sol endpoint.
const (
	DefaultToken       = "SOL"
	DefaultBaseAmount  = "0.01"
	DefaultImageURL    = "https://cryptologos.cc/logos/solana-sol-logo.png"
	DefaultTitle       = "捐赠 SOL"
	DefaultDescription = "通过此Blink向指定地址捐赠SOL代币"
)

type TokenSwapConfig struct {
	FromToken string `json:"fromToken"`
	ToToken   string `json:"toToken"`
	Amount    string `json:"amount" validate:"omitempty,decimal"`
	// SlippagePercent is the accepted slippage in percent (0.5 = 0.5%)
	SlippagePercent float64 `json:"slippage" validate:"gte=0,lte=100"`
	// DeadlineMinutes is how long the swap stays executable
	DeadlineMinutes int  `json:"deadline" validate:"gte=0"`
	AutoExecute     bool `json:"autoExecute"`
}

type BuyNftConfig struct {
	CollectionAddress string `json:"collectionAddress"`
	NftID             string `json:"nftId"`
	Price             string `json:"price" validate:"omitempty,decimal"`
	Currency          string `json:"currency"`
	// ExpiryDate is an ISO date (YYYY-MM-DD) or empty
	ExpiryDate string `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	Message    string `json:"message"`
	// Attributes is a JSON encoded list of {trait_type, value} objects
	Attributes string `json:"attributes"`
}

type StakingConfig struct {
	Token                string `json:"token"`
	Amount               string `json:"amount" validate:"omitempty,decimal"`
	PeriodDays           int    `json:"period" validate:"gte=0"`
	ExpectedYieldPercent string `json:"expectedYield" validate:"omitempty,decimal"`
	PoolAddress          string `json:"poolAddress"`
	AutoCompound         bool   `json:"autoCompound"`
}

type CustomConfig struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	// Parameters is opaque to the model; the preview tries to read it as JSON
	Parameters       string `json:"parameters"`
	RequiresApproval bool   `json:"requiresApproval"`
}

type TippingConfig struct {
	// RecipientAddress is required before a donate-sol URL can be built
	RecipientAddress    string   `json:"recipientAddress"`
	Token               string   `json:"token"`
	SuggestedAmounts    []string `json:"suggestedAmounts" validate:"dive,decimal"`
	CustomAmountAllowed bool     `json:"customAmount"`
	Message             string   `json:"message"`
	BaseAmount          string   `json:"baseAmount" validate:"omitempty,decimal"`
	ImageURL            string   `json:"imageUrl" validate:"omitempty,url"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	AllowAnonymous      bool     `json:"allowAnonymous"`
	ShowLeaderboard     bool     `json:"showLeaderboard"`
}

// ActionConfig is the tagged union edited by a session. All five payloads are
// always present; Type selects the active one.
type ActionConfig struct {
	Type      ActionType      `json:"type" validate:"required,action_type"`
	TokenSwap TokenSwapConfig `json:"tokenSwap"`
	BuyNft    BuyNftConfig    `json:"buyNft"`
	Staking   StakingConfig   `json:"staking"`
	Custom    CustomConfig    `json:"custom"`
	Tipping   TippingConfig   `json:"tipping"`
}

// DefaultActionConfig returns the configuration a new editing session starts with
func DefaultActionConfig() ActionConfig {
	return ActionConfig{
		Type: ActionTypeTipping,
		TokenSwap: TokenSwapConfig{
			SlippagePercent: 0.5,
			DeadlineMinutes: 10,
			AutoExecute:     true,
		},
		BuyNft: BuyNftConfig{
			Currency: DefaultToken,
		},
		Staking: StakingConfig{
			PeriodDays: 30,
		},
		Custom: CustomConfig{
			RequiresApproval: true,
		},
		Tipping: TippingConfig{
			Token:               DefaultToken,
			SuggestedAmounts:    []string{"5", "10", "20"},
			CustomAmountAllowed: true,
			BaseAmount:          DefaultBaseAmount,
			ImageURL:            DefaultImageURL,
			Title:               DefaultTitle,
			Description:         DefaultDescription,
		},
	}
}

// Clone returns a deep copy so that snapshots never share backing arrays
func (c ActionConfig) Clone() ActionConfig {
	out := c
	if c.Tipping.SuggestedAmounts != nil {
		out.Tipping.SuggestedAmounts = make([]string, len(c.Tipping.SuggestedAmounts))
		copy(out.Tipping.SuggestedAmounts, c.Tipping.SuggestedAmounts)
	}
	return out
}

// Variant returns the payload for t, or nil for an unknown tag
func (c *ActionConfig) Variant(t ActionType) any {
	switch t {
	case ActionTypeTokenSwap:
		return &c.TokenSwap
	case ActionTypeBuyNft:
		return &c.BuyNft
	case ActionTypeStaking:
		return &c.Staking
	case ActionTypeCustom:
		return &c.Custom
	case ActionTypeTipping:
		return &c.Tipping
	}
	return nil
}

// Patch is a partial document for one variant, keyed by JSON field name
type Patch map[string]any
