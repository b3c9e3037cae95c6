package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"agrimarket/internal/errs"
	"agrimarket/internal/fallback"
)

const (
	DefaultLat  = 12.97
	DefaultLng  = 77.59
	DefaultCrop = "tomato"

	earthRadiusKm = 6371.0

	reasonNoPriceFeed = "simulated prices: no live price feed configured"
)

type Mandi struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	District string  `json:"district"`
}

// mandiDirectory lists the markets served. Karnataka only for now.
var mandiDirectory = []Mandi{
	{ID: 1, Name: "APMC Yeshwanthpur", Lat: 13.0220, Lng: 77.5513, District: "Bangalore Urban"},
	{ID: 2, Name: "KR Market", Lat: 12.9634, Lng: 77.5779, District: "Bangalore Urban"},
	{ID: 3, Name: "Bangalore APMC Binny Mill", Lat: 12.9780, Lng: 77.5726, District: "Bangalore Urban"},
	{ID: 4, Name: "Chikkaballapur Mandi", Lat: 13.4355, Lng: 77.7270, District: "Chikkaballapur"},
	{ID: 5, Name: "Kolar Mandi", Lat: 13.1362, Lng: 78.1296, District: "Kolar"},
	{ID: 6, Name: "Tumkur APMC", Lat: 13.3392, Lng: 77.1010, District: "Tumkur"},
	{ID: 7, Name: "Mysore Mandi", Lat: 12.3051, Lng: 76.6551, District: "Mysore"},
	{ID: 8, Name: "Mandya APMC", Lat: 12.5218, Lng: 76.8951, District: "Mandya"},
}

type priceRange struct{ min, max float64 }

// Rs per kg.
var cropPriceRanges = map[string]priceRange{
	"tomato":      {15, 55},
	"onion":       {20, 60},
	"potato":      {18, 40},
	"wheat":       {22, 35},
	"rice":        {30, 50},
	"chilli":      {80, 200},
	"carrot":      {25, 50},
	"brinjal":     {20, 45},
	"cabbage":     {12, 30},
	"cauliflower": {25, 60},
	"banana":      {20, 45},
	"mango":       {40, 120},
	"grape":       {50, 150},
	"apple":       {80, 200},
	"sugarcane":   {3, 5},
}

var defaultPriceRange = priceRange{20, 50}

// MandiQuote is a mandi with the crop price and the trip cost from the caller.
type MandiQuote struct {
	Mandi
	DistanceKm    float64 `json:"distance_km"`
	PricePerKg    float64 `json:"price_per_kg"`
	TransportCost float64 `json:"transport_cost"`
	TravelTimeMin int     `json:"travel_time_min"`
}

type MandiListing struct {
	Mandis []MandiQuote `json:"mandis"`
	Crop   string       `json:"crop"`
	Total  int          `json:"total"`
}

// PriceFeed returns the live price per kg of crop at a mandi.
type PriceFeed interface {
	Price(ctx context.Context, mandi Mandi, crop string) (float64, error)
}

type MandiService interface {
	// Nearby ranks every mandi by distance from (lat, lng) with prices for crop.
	Nearby(ctx context.Context, lat, lng float64, crop string) (fallback.Result[MandiListing], error)
}

type mandiService struct {
	feed PriceFeed

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMandiService uses feed for prices when non-nil and simulates them
// otherwise. A nil rng uses the global source.
func NewMandiService(feed PriceFeed, rng *rand.Rand) MandiService {
	return &mandiService{feed: feed, rng: rng}
}

func (s *mandiService) uniform(lo, hi float64) float64 {
	if s.rng == nil {
		return lo + rand.Float64()*(hi-lo)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// Haversine returns the great-circle distance in km.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// PriceRange returns the simulated price bounds for crop.
func PriceRange(crop string) (lo, hi float64) {
	r, ok := cropPriceRanges[strings.ToLower(strings.TrimSpace(crop))]
	if !ok {
		r = defaultPriceRange
	}
	return r.min, r.max
}

func (s *mandiService) Nearby(ctx context.Context, lat, lng float64, crop string) (fallback.Result[MandiListing], error) {
	v := &errs.ValidationError{}
	if lat < -90 || lat > 90 {
		v.AddQuery("lat", "Input should be between -90 and 90", "value_error")
	}
	if lng < -180 || lng > 180 {
		v.AddQuery("lng", "Input should be between -180 and 180", "value_error")
	}
	if err := v.OrNil(); err != nil {
		return fallback.Result[MandiListing]{}, err
	}

	crop = strings.TrimSpace(crop)
	if crop == "" {
		crop = DefaultCrop
	}
	lo, hi := PriceRange(crop)

	reason := ""
	if s.feed == nil {
		reason = reasonNoPriceFeed
	}

	quotes := make([]MandiQuote, 0, len(mandiDirectory))
	for _, m := range mandiDirectory {
		dist := Haversine(lat, lng, m.Lat, m.Lng)

		var price float64
		if s.feed != nil {
			p, err := s.feed.Price(ctx, m, crop)
			if err != nil {
				if reason == "" {
					reason = fmt.Sprintf("simulated prices: price feed unavailable: %v", err)
				}
				p = s.uniform(lo, hi)
			}
			price = p
		} else {
			price = s.uniform(lo, hi)
		}

		quotes = append(quotes, MandiQuote{
			Mandi:         m,
			DistanceKm:    roundTo(dist, 1),
			PricePerKg:    roundTo(price, 2),
			TransportCost: roundTo(dist*2.5+s.uniform(100, 500), 2),
			TravelTimeMin: int(math.Round(dist*1.8 + s.uniform(10, 30))),
		})
	}

	slices.SortStableFunc(quotes, func(a, b MandiQuote) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	listing := MandiListing{Mandis: quotes, Crop: crop, Total: len(quotes)}
	if reason != "" {
		return fallback.NewFallback(listing, reason), nil
	}
	return fallback.NewLive(listing), nil
}
