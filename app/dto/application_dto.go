// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// SubmitApplicationRequest represents the public wholesale application form
type SubmitApplicationRequest struct {
	FullName string            `json:"full_name" validate:"required,max=255"`
	Email    string            `json:"email" validate:"required,email,max=255"`
	Phone    *string           `json:"phone,omitempty" validate:"omitempty,max=32"`
	Answers  map[string]string `json:"answers,omitempty" validate:"omitempty,max=30"`

	// Captcha fields are required only when captcha protection is enabled
	CaptchaID     string `json:"captcha_id,omitempty" validate:"omitempty,max=64"`
	CaptchaAnswer string `json:"captcha_answer,omitempty" validate:"omitempty,max=16"`
}

// SubmitApplicationResponse represents the response after a successful submission
type SubmitApplicationResponse struct {
	Ok            bool   `json:"ok"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

// ApplicationDTO represents a wholesale application for admin API responses
type ApplicationDTO struct {
	ID         uint              `json:"id"`
	UUID       string            `json:"uuid"`
	FullName   string            `json:"full_name"`
	Email      string            `json:"email"`
	Phone      *string           `json:"phone,omitempty"`
	Answers    map[string]string `json:"answers,omitempty"`
	Status     string            `json:"status"`
	Plan       *string           `json:"plan,omitempty"`
	ReviewedAt *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedBy *uint             `json:"reviewed_by,omitempty"`
	UserID     *uint             `json:"user_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ListApplicationsRequest represents admin listing filters
type ListApplicationsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
}

// ListApplicationsResponse represents a page of wholesale applications
type ListApplicationsResponse struct {
	Applications []ApplicationDTO `json:"applications"`
	Total        int64            `json:"total"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
}

// CaptchaResponse represents a generated captcha challenge for the public form
type CaptchaResponse struct {
	CaptchaID string `json:"captcha_id"`
	ImageB64  string `json:"image_b64"`
	ThumbB64  string `json:"thumb_b64"`
	ExpiresIn int    `json:"expires_in"`
}
