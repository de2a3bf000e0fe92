package request

// SetAPIKeyRequest is the body for storing a quote provider API key override.
type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}
