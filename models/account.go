package models

import "time"

type Account struct {
	ID          string     `json:"id"`
	SN          string     `json:"sn,omitempty"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	WebhookDetails

	// internal fields
	Password *string `json:"-"`
}

type WebhookDetails struct {
	CallbackURL *string `json:"callback_url,omitempty"`
	WebhookKey  *string `json:"-"`
}

type Credentials struct {
	ID       string
	Password string
}

type AccessToken struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AccountID   string `json:"-"`
	Token       string `json:"token"`
}
