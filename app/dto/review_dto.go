package dto

// ReviewApplicationRequest represents the admin decision on a wholesale
// application. ApplicationID is the application's public UUID. Field values
// are checked inside the review flow, after the caller's admin access is
// established.
type ReviewApplicationRequest struct {
	ApplicationID string  `json:"application_id"`
	Decision      string  `json:"decision"`
	Plan          *string `json:"plan,omitempty"`
}

// ReviewApplicationResponse represents the outcome of a review decision.
// EmailSent is false when the decision was recorded but the notification
// could not be delivered; EmailError carries the provider message.
// Mode is "no_invite" when provisioning was skipped in favor of
// self-service registration; unset when the full invite flow ran.
type ReviewApplicationResponse struct {
	Ok         bool    `json:"ok"`
	Message    string  `json:"message"`
	Status     string  `json:"status"`
	EmailSent  bool    `json:"email_sent"`
	EmailError *string `json:"email_error,omitempty"`
	Mode       *string `json:"mode,omitempty"`
}

// ReviewProbeResponse reports reachability of the review endpoint and whether
// an Authorization header was seen, without validating the token.
type ReviewProbeResponse struct {
	Ok         bool   `json:"ok"`
	HasAuth    bool   `json:"has_auth"`
	ServerTime string `json:"server_time"`
}
