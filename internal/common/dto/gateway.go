package dto

// UpdateGatewayRequest represents a gateway credential update. The
// config bag is gateway-specific (PayTabs: profile_id/server_key,
// Stripe: publishable_key/secret_key).
type UpdateGatewayRequest struct {
	Description string         `json:"description"`
	Config      map[string]any `json:"config" binding:"required"`
}

// TestGatewayRequest optionally carries an unsaved credential bag to
// probe; when absent the stored credentials are tested.
type TestGatewayRequest struct {
	Config map[string]any `json:"config"`
}

// GatewayView is a gateway as shown to the dashboard: status derived
// from credentials and the enabled flag, secrets masked.
type GatewayView struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Enabled     bool           `json:"enabled"`
	Config      map[string]any `json:"config"`
}
