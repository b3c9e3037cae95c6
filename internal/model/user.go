package model

import (
	"time"
)

// User is an account holder in exactly one marketplace role.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Contact      string    `gorm:"type:varchar(20)" json:"contact"`
	Location     string    `gorm:"type:varchar(150)" json:"location"`
	Latitude     float64   `gorm:"default:0" json:"latitude"`
	Longitude    float64   `gorm:"default:0" json:"longitude"`
	Language     string    `gorm:"type:varchar(50);default:English" json:"language"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DefaultLanguage is stored when registration leaves language empty.
const DefaultLanguage = "English"

// Profile is the role-specific record created next to every non-admin user.
// Retailer inventory and orders are owned by the retailer's profile ID.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	Language  string    `gorm:"type:varchar(50);default:English" json:"language"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RefreshToken stores the SHA-256 hash of a long-lived token used to mint
// new access tokens.
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TokenHash string     `gorm:"type:char(64);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// Active reports whether the token is neither revoked nor expired at now.
func (t RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
