package models

// TokenRequest is the body of POST /api/token
type TokenRequest struct {
	Name        string `json:"name" validate:"required,max=32"`
	Symbol      string `json:"symbol" validate:"required,max=10"`
	Decimals    int    `json:"decimals" validate:"gte=0,lte=18"`
	TotalSupply string `json:"totalSupply" validate:"required,decimal"`
	Description string `json:"description,omitempty" validate:"max=500"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// NftRequest is decoded from the multipart form of POST /api/nft.
// Royalty is nil when the submitted value is not a number.
type NftRequest struct {
	Name        string
	Description string
	Collection  string
	Attributes  any
	Royalty     *float64
	ImageName   string
}

// FieldError describes one rejected field of a request body
type FieldError struct {
	Path    []string `json:"path"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
}

// CreationResponse is the envelope of the mock creation endpoints
type CreationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    JSON   `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}
