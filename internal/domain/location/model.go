package location

import (
	"time"

	"family-records-go/internal/domain/status"
)

type State struct {
	ID        uint          `gorm:"primaryKey"`
	Name      string        `gorm:"size:120;not null"`
	Status    status.Status `gorm:"not null;default:1"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`
}

type City struct {
	ID        uint          `gorm:"primaryKey"`
	Name      string        `gorm:"size:120;not null"`
	StateID   uint          `gorm:"not null;index"`
	Status    status.Status `gorm:"not null;default:1"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`

	State State `gorm:"foreignKey:StateID;references:ID"`
}
