package model

import "time"

type Warehouse struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Location  string
	CreatedAt time.Time
}
