package client

import "time"

// Role is an account role as the API spells it.
type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleMandiOwner Role = "mandi_owner"
	RoleRetailer   Role = "retailer"
	RoleAdmin      Role = "admin"
)

// Item is one inventory line of a retailer.
type Item struct {
	ID         uint      `json:"id"`
	RetailerID uint      `json:"retailer_id"`
	Name       string    `json:"name"`
	Item       string    `json:"item"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Filter selects a subset of the inventory view.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterLowStock     Filter = "low_stock"
	FilterHighQuantity Filter = "high_quantity"
	FilterRecent       Filter = "recent"
)

// Row is an item with its stock band: "Low", "Moderate" or "Sufficient".
type Row struct {
	Item
	Band string `json:"band"`
}

type Stats struct {
	TotalItems    int `json:"total_items"`
	TotalQuantity int `json:"total_quantity"`
	LowStock      int `json:"low_stock"`
	RecentlyAdded int `json:"recently_added"`
}

// View is a searched and filtered inventory. Stats cover every item.
type View struct {
	Items []Row `json:"items"`
	Stats Stats `json:"stats"`
}
