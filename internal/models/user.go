package models

import (
	"time"
)

// User owns OAuth clients. Role is copied into every access token.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Name      string
	Role      string `gorm:"default:'user'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Roles accepted in access tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
