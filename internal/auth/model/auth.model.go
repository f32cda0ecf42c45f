package model

import "time"

// UserEntity is the persisted users row. It never leaves the server.
type UserEntity struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
