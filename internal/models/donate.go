package models

// DonateSolParams is the decoded query of a donate-sol action URL.
// Absent optional parameters are already replaced by their defaults.
type DonateSolParams struct {
	Recipient   string `json:"recipient"`
	BaseAmount  string `json:"baseAmount"`
	ImageURL    string `json:"imageUrl"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ActionParameter describes a user input of a linked action
type ActionParameter struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// LinkedAction is one button of a rendered action
type LinkedAction struct {
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []ActionParameter `json:"parameters,omitempty"`
}

type ActionLinks struct {
	Actions []LinkedAction `json:"actions"`
}

// ActionGetResponse is the metadata returned by GET on an action URL
type ActionGetResponse struct {
	Icon        string       `json:"icon"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Disabled    bool         `json:"disabled,omitempty"`
	Links       *ActionLinks `json:"links,omitempty"`
}

type ActionPostRequest struct {
	Account string `json:"account" validate:"required"`
}

// ActionPostResponse carries an unsigned, base64 encoded transaction template
type ActionPostResponse struct {
	Transaction string `json:"transaction"`
	Message     string `json:"message,omitempty"`
}

type ActionError struct {
	Message string `json:"message"`
}
