package model

import (
	"time"
)

const (
	ActionRegisterUser  = "REGISTER_USER"
	ActionUpdateProfile = "UPDATE_PROFILE"
	ActionCreateItem    = "CREATE_ITEM"
	ActionUpdateItem    = "UPDATE_ITEM"
	ActionDeleteItem    = "DELETE_ITEM"
	ActionCreateOrder   = "CREATE_ORDER"
	ActionUpdateOrder   = "UPDATE_ORDER"
	ActionDeleteOrder   = "DELETE_ORDER"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"` // nil for system actions
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;" json:"user,omitempty"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:jsonb" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
