package model

import "time"

// Alert severities, most urgent first.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Alert is a notification addressed to one user.
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Severity  string    `gorm:"type:varchar(20);not null;default:info" json:"severity"`
	Seen      bool      `gorm:"not null;default:false;index" json:"seen"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
