package models

// PreviewErrorCode identifies a problem contained to a single preview field
type PreviewErrorCode string

const (
	PreviewErrorMalformedJSON    PreviewErrorCode = "malformed_attribute_json"
	PreviewErrorInvalidAmount    PreviewErrorCode = "invalid_amount"
	PreviewErrorInvalidAddress   PreviewErrorCode = "invalid_address"
	PreviewErrorMissingRecipient PreviewErrorCode = "missing_recipient"
)

// PreviewField is a label/value row rendered by the preview card
type PreviewField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// PreviewAttribute is one NFT trait parsed from BuyNftConfig.Attributes
type PreviewAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// PreviewFieldError marks a single field that could not be projected.
// The rest of the preview stays valid.
type PreviewFieldError struct {
	Field   string           `json:"field"`
	Code    PreviewErrorCode `json:"code"`
	Message string           `json:"message"`
}

// PreviewViewModel is the read-only view derived from an ActionConfig snapshot
type PreviewViewModel struct {
	Type        ActionType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	// Label is the call-to-action shown on the primary button
	Label      string              `json:"label"`
	Amounts    []string            `json:"amounts,omitempty"`
	Fields     []PreviewField      `json:"fields"`
	Attributes []PreviewAttribute  `json:"attributes,omitempty"`
	Parameters any                 `json:"parameters,omitempty"`
	Errors     []PreviewFieldError `json:"errors,omitempty"`
}

// HasError reports whether field carries an error marker
func (p PreviewViewModel) HasError(field string) bool {
	for _, e := range p.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}
