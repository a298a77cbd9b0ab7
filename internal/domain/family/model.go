package family

import (
	"time"

	"family-records-go/internal/domain/location"
	"family-records-go/internal/domain/status"
)

const (
	MaritalMarried   = "married"
	MaritalUnmarried = "unmarried"
)

type FamilyHead struct {
	ID            uint          `gorm:"primaryKey"`
	Name          string        `gorm:"size:120;not null"`
	Surname       string        `gorm:"size:120;not null"`
	DOB           time.Time     `gorm:"type:date;not null"`
	MobileNo      string        `gorm:"size:15;not null"`
	Address       string        `gorm:"size:500;not null"`
	Pincode       string        `gorm:"size:10;not null"`
	MaritalStatus string        `gorm:"size:16;not null"`
	WeddingDate   *time.Time    `gorm:"type:date"`
	PhotoPath     string        `gorm:"size:255"`
	StateID       uint          `gorm:"not null;index"`
	CityID        uint          `gorm:"not null;index"`
	Status        status.Status `gorm:"not null;default:1"`
	CreatedAt     time.Time     `gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime"`

	State location.State `gorm:"foreignKey:StateID;references:ID"`
	City  location.City  `gorm:"foreignKey:CityID;references:ID"`
}

type FamilyMember struct {
	ID            uint          `gorm:"primaryKey"`
	HeadID        uint          `gorm:"not null;index"`
	Name          string        `gorm:"size:120;not null"`
	DOB           time.Time     `gorm:"type:date;not null"`
	MaritalStatus string        `gorm:"size:16;not null"`
	WeddingDate   *time.Time    `gorm:"type:date"`
	Education     string        `gorm:"size:120"`
	Relation      string        `gorm:"size:60;not null"`
	PhotoPath     string        `gorm:"size:255"`
	Status        status.Status `gorm:"not null;default:1"`
	CreatedAt     time.Time     `gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime"`
}

type Hobby struct {
	ID        uint          `gorm:"primaryKey"`
	HeadID    uint          `gorm:"not null;index"`
	Name      string        `gorm:"size:120;not null"`
	Status    status.Status `gorm:"not null;default:1"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`
}

// HeadWithCount is a listing row: a head plus how many non-deleted members
// it has.
type HeadWithCount struct {
	FamilyHead
	MemberCount int64
}

// StateHeadCount is one dashboard chart row.
type StateHeadCount struct {
	StateName string
	Total     int64
}
