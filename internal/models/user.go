package models

import "time"

// user role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is user entity
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Address      string
	City         string
	CreatedAt    time.Time
}

// TokenPayload is payload of authorization token
type TokenPayload struct {
	UserID string
	Role   string
}
