// ABOUTME: Hotel and room records plus client-side search refinement
// ABOUTME: Applies price, rating, and amenity filters and sort orders locally

package models

import (
	"net/url"
	"slices"
	"sort"
	"strconv"
)

// Sort orders accepted by hotel search
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortPopular   = "popular"
)

// SortOrders lists the valid SortBy values
var SortOrders = []string{SortPriceLow, SortPriceHigh, SortRating, SortPopular}

// Coordinates is a hotel's map position
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Location is a hotel's address
type Location struct {
	City        string       `json:"city" yaml:"city"`
	State       string       `json:"state" yaml:"state"`
	Country     string       `json:"country" yaml:"country"`
	Address     string       `json:"address" yaml:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// Room is a bookable room type within a hotel
type Room struct {
	ID          string   `json:"id" yaml:"id"`
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	MaxGuests   int      `json:"maxGuests" yaml:"maxGuests"`
	BedType     string   `json:"bedType" yaml:"bedType"`
	Available   bool     `json:"available" yaml:"available"`
	Amenities   []string `json:"amenities" yaml:"amenities"`
}

// Hotel is a hotel listing
type Hotel struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Description        string   `json:"description" yaml:"description"`
	Images             []string `json:"images" yaml:"images"`
	Location           Location `json:"location" yaml:"location"`
	Rating             float64  `json:"rating" yaml:"rating"`
	ReviewCount        int      `json:"reviewCount" yaml:"reviewCount"`
	Amenities          []string `json:"amenities" yaml:"amenities"`
	Rooms              []Room   `json:"rooms" yaml:"rooms"`
	PricePerNight      float64  `json:"pricePerNight" yaml:"pricePerNight"`
	Featured           bool     `json:"featured,omitempty" yaml:"featured,omitempty"`
	CancellationPolicy string   `json:"cancellationPolicy,omitempty" yaml:"cancellationPolicy,omitempty"`
}

// HotelFilters are search parameters. Zero values mean "not set".
type HotelFilters struct {
	Location  string
	MinPrice  float64
	MaxPrice  float64
	Rating    float64
	Amenities []string
	Guests    int
	SortBy    string
}

// Query encodes the filters the backend understands as URL query parameters.
// Zero-valued fields are omitted.
func (f HotelFilters) Query() url.Values {
	q := url.Values{}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.MinPrice != 0 {
		q.Set("minPrice", formatNumber(f.MinPrice))
	}
	if f.MaxPrice != 0 {
		q.Set("maxPrice", formatNumber(f.MaxPrice))
	}
	if f.Rating != 0 {
		q.Set("rating", formatNumber(f.Rating))
	}
	if f.Guests != 0 {
		q.Set("guests", strconv.Itoa(f.Guests))
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	return q
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidSortOrder reports whether s is empty or a known sort order
func ValidSortOrder(s string) bool {
	return s == "" || slices.Contains(SortOrders, s)
}

// FilterHotels refines a result set locally: price bounds, minimum rating,
// required amenities (all must be present), then sort order.
// The input slice is not modified.
func FilterHotels(hotels []Hotel, f HotelFilters) []Hotel {
	out := make([]Hotel, 0, len(hotels))
	for _, h := range hotels {
		if f.MinPrice != 0 && h.PricePerNight < f.MinPrice {
			continue
		}
		if f.MaxPrice != 0 && h.PricePerNight > f.MaxPrice {
			continue
		}
		if f.Rating != 0 && h.Rating < f.Rating {
			continue
		}
		if !hasAllAmenities(h.Amenities, f.Amenities) {
			continue
		}
		out = append(out, h)
	}

	switch f.SortBy {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerNight < out[j].PricePerNight })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerNight > out[j].PricePerNight })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ReviewCount > out[j].ReviewCount })
	}

	return out
}

func hasAllAmenities(have, want []string) bool {
	for _, a := range want {
		if !slices.Contains(have, a) {
			return false
		}
	}
	return true
}

// AvailableRooms returns rooms that are open for booking and fit the guest count
func (h *Hotel) AvailableRooms(guests int) []Room {
	var rooms []Room
	for _, r := range h.Rooms {
		if !r.Available {
			continue
		}
		if guests > 0 && r.MaxGuests > 0 && r.MaxGuests < guests {
			continue
		}
		rooms = append(rooms, r)
	}
	return rooms
}

// String returns "City, Country" for compact listings
func (l Location) String() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + ", " + l.Country
	case l.City != "":
		return l.City
	default:
		return l.Country
	}
}
