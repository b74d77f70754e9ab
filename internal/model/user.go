package model

import "time"

// Roles recognized by the auth middleware.
const (
	RoleAdmin     = "admin"
	RoleWarehouse = "warehouse"
	RoleFinance   = "finance"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Email        string
	Role         string `gorm:"not null;default:'warehouse'"`
	CreatedAt    time.Time
}
