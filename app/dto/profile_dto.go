package dto

import "time"

// ProfileResponse represents the authenticated user's profile
type ProfileResponse struct {
	UserID          uint      `json:"user_id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Role            string    `json:"role"`
	WholesaleStatus string    `json:"wholesale_status"`
	WholesalePlan   *string   `json:"wholesale_plan,omitempty"`
	PlanLabel       *string   `json:"plan_label,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpdateProfileRequest represents profile fields the user may change
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
}
