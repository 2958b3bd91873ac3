package models

import "github.com/google/uuid"

// User is the backend's public user record. The session caches a copy.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	FullName    *string   `json:"full_name,omitempty"`
}

// DisplayName returns the full name when set, the email otherwise.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}

// UserRegister is the self-service signup payload.
type UserRegister struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// UserUpdateMe is a partial profile update; nil fields are left unchanged.
type UserUpdateMe struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdateMe) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil
}

type UpdatePassword struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Token is the response of the token-issuance endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Message is the generic {"message": "..."} response body.
type Message struct {
	Message string `json:"message"`
}
