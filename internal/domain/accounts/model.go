package accounts

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:100;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// PasswordReset is ephemeral: created on a forgot-password request, deleted
// on successful reset or on first access after expiry.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"size:36;not null;uniqueIndex"`
	UserID    uint      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}
