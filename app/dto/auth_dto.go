package dto

import "time"

// RegisterRequest represents the storefront account registration payload
type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=100,password_strength"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// RegisterResponse represents the response after successful registration
type RegisterResponse struct {
	Message      string   `json:"message"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         UserInfo `json:"user"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	Message      string    `json:"message"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserInfo  `json:"user"`
}

// RefreshTokenRequest represents the request to refresh an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ActivateAccountRequest represents invite-link account activation: the
// one-time token from the email plus the password the reseller chooses.
type ActivateAccountRequest struct {
	Token           string `json:"token" validate:"required,len=64"`
	Password        string `json:"password" validate:"required,min=8,max=100,password_strength"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ActivateAccountResponse represents the response after account activation
type ActivateAccountResponse struct {
	Message      string   `json:"message"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         UserInfo `json:"user"`
}

// UserInfo represents user information returned in auth responses
type UserInfo struct {
	ID              uint    `json:"id" example:"123"`
	UUID            string  `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email           string  `json:"email" example:"user@example.com"`
	FullName        string  `json:"full_name" example:"Ana Gomez"`
	Role            string  `json:"role" example:"retail"`
	WholesaleStatus string  `json:"wholesale_status" example:"none"`
	WholesalePlan   *string `json:"wholesale_plan,omitempty" example:"A"`
	IsActive        *bool   `json:"is_active" example:"true"`
	CreatedAt       string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}
