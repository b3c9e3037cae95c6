package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is one stock line owned by a retailer profile.
// IDs are assigned in insertion order; "recent" views rely on that.
type InventoryItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RetailerID uint      `gorm:"not null;index" json:"retailer_id"`
	Retailer   *Profile  `gorm:"foreignKey:RetailerID;constraint:OnDelete:CASCADE;" json:"-"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Item       string    `gorm:"type:varchar(100)" json:"item"`
	Quantity   int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RetailerOrder is a purchase a retailer places with a mandi.
type RetailerOrder struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	RetailerID  uint            `gorm:"not null;index" json:"retailer_id"`
	Retailer    *Profile        `gorm:"foreignKey:RetailerID;constraint:OnDelete:CASCADE;" json:"-"`
	Source      string          `gorm:"type:varchar(150);not null" json:"source"`
	Destination string          `gorm:"type:varchar(150);not null" json:"destination"`
	Item        string          `gorm:"type:varchar(100);not null;index" json:"item"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	PricePerKg  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_per_kg"`
	StartTime   *time.Time      `json:"start_time,omitempty"`
	OrderDate   time.Time       `gorm:"not null;index" json:"order_date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
