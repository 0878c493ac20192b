package models

import "time"

// User represents a user record in DB (internal use only).
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest holds the data for creating a new user.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents credentials provided by the client.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is returned by the session check endpoint.
type SessionResponse struct {
	IsLoggedIn bool    `json:"isLoggedIn"`
	Username   *string `json:"username"`
}
