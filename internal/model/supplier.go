package model

import "time"

type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Contact   string
	Phone     string
	Address   string
	CreatedAt time.Time
}
