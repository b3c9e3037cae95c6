// Package inventory derives the filtered, searched and summarized view of a
// retailer's stock. Everything here is pure: inputs are never mutated.
package inventory

import (
	"sort"
	"strings"

	"agrimarket/internal/model"
)

const (
	// LowStockThreshold: quantities strictly below are low stock.
	LowStockThreshold = 10
	// HighQuantityThreshold: quantities strictly above are high quantity.
	HighQuantityThreshold = 50
	// RecentLimit caps the Recent filter.
	RecentLimit = 10
	// RecentlyAddedWindow is how many trailing items count as recently added.
	RecentlyAddedWindow = 5
)

// Filter selects a subset of the searched items.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterLowStock     Filter = "low_stock"
	FilterHighQuantity Filter = "high_quantity"
	FilterRecent       Filter = "recent"
)

// ParseFilter accepts snake_case or CamelCase names, case-insensitively.
// Unknown or empty values fall back to FilterAll.
func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "lowstock":
		return FilterLowStock
	case "highquantity":
		return FilterHighQuantity
	case "recent":
		return FilterRecent
	default:
		return FilterAll
	}
}

// Band is the stock level classification of a quantity.
type Band string

const (
	BandLow        Band = "Low"
	BandModerate   Band = "Moderate"
	BandSufficient Band = "Sufficient"
)

// Classify maps a quantity onto its band: <10 Low, 10..50 Moderate, >50 Sufficient.
func Classify(quantity int) Band {
	switch {
	case quantity < LowStockThreshold:
		return BandLow
	case quantity > HighQuantityThreshold:
		return BandSufficient
	default:
		return BandModerate
	}
}

// Row is an item together with its stock band.
type Row struct {
	model.InventoryItem
	Band Band `json:"band"`
}

// Stats summarizes the whole input, independent of search and filter.
type Stats struct {
	TotalItems    int `json:"total_items"`
	TotalQuantity int `json:"total_quantity"`
	LowStock      int `json:"low_stock"`
	RecentlyAdded int `json:"recently_added"`
}

// View is the result of DeriveView.
type View struct {
	Items []Row `json:"items"`
	Stats Stats `json:"stats"`
}

// DeriveView applies the case-insensitive name search, then the filter, and
// computes stats over the unfiltered items.
func DeriveView(items []model.InventoryItem, search string, filter Filter) View {
	searched := Search(items, search)
	filtered := Apply(searched, filter)

	rows := make([]Row, len(filtered))
	for i, it := range filtered {
		rows[i] = Row{InventoryItem: it, Band: Classify(it.Quantity)}
	}
	return View{Items: rows, Stats: Summarize(items)}
}

// Search keeps items whose name contains query, ignoring case. An empty
// query keeps everything.
func Search(items []model.InventoryItem, query string) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(items))
	if query == "" {
		return append(out, items...)
	}
	q := strings.ToLower(query)
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

// Apply returns a new slice holding the items selected by filter.
func Apply(items []model.InventoryItem, filter Filter) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(items))
	switch filter {
	case FilterLowStock:
		for _, it := range items {
			if it.Quantity < LowStockThreshold {
				out = append(out, it)
			}
		}
	case FilterHighQuantity:
		for _, it := range items {
			if it.Quantity > HighQuantityThreshold {
				out = append(out, it)
			}
		}
	case FilterRecent:
		out = append(out, items...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
		if len(out) > RecentLimit {
			out = out[:RecentLimit]
		}
	default:
		out = append(out, items...)
	}
	return out
}

// Summarize computes stats over items. RecentlyAdded counts the trailing
// window by position, not by id.
func Summarize(items []model.InventoryItem) Stats {
	s := Stats{TotalItems: len(items)}
	for _, it := range items {
		s.TotalQuantity += it.Quantity
		if it.Quantity < LowStockThreshold {
			s.LowStock++
		}
	}
	s.RecentlyAdded = min(len(items), RecentlyAddedWindow)
	return s
}
