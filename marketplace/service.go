// Package marketplace covers the shared buyer/farmer marketplace view:
// publishing listings, rating sellers, counting views, and the client-side
// filtering and sorting of the listing feed.
package marketplace

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"agriconnect/backend"
)

// SortKey orders the listing feed.
type SortKey string

const (
	SortByRating    SortKey = "rating"
	SortByViews     SortKey = "views"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
	SortByNewest    SortKey = "newest"
)

// Backend is the slice of the backend client the service needs.
type Backend interface {
	Listings(ctx context.Context, token string) ([]backend.Listing, error)
	CreateListing(ctx context.Context, token string, input backend.ListingInput) error
	RateListing(ctx context.Context, token, listingID string, rating int) error
	RecordListingView(ctx context.Context, token, listingID string) error
}

// Service exposes marketplace operations for one session.
type Service struct {
	backend Backend
	token   string
}

// NewService builds a Service bound to a session token.
func NewService(b Backend, token string) *Service {
	return &Service{backend: b, token: token}
}

// Listings returns the full marketplace feed.
func (s *Service) Listings(ctx context.Context) ([]backend.Listing, error) {
	return s.backend.Listings(ctx, s.token)
}

// Publish validates and creates a listing from one of the caller's products.
func (s *Service) Publish(ctx context.Context, input backend.ListingInput) error {
	if input.ProductID == "" {
		return fmt.Errorf("marketplace: select a product to list")
	}
	if input.Price <= 0 {
		return fmt.Errorf("marketplace: price must be positive")
	}
	if input.Quantity <= 0 {
		return fmt.Errorf("marketplace: quantity must be positive")
	}
	return s.backend.CreateListing(ctx, s.token, input)
}

// Rate records a 1-5 star rating for a listing's seller.
func (s *Service) Rate(ctx context.Context, listingID string, rating int) error {
	if listingID == "" {
		return fmt.Errorf("marketplace: missing listing id")
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("marketplace: rating must be between 1 and 5")
	}
	return s.backend.RateListing(ctx, s.token, listingID, rating)
}

// RecordView bumps a listing's view counter. Best-effort.
func (s *Service) RecordView(ctx context.Context, listingID string) error {
	if listingID == "" {
		return fmt.Errorf("marketplace: missing listing id")
	}
	return s.backend.RecordListingView(ctx, s.token, listingID)
}

// Filter narrows the feed: free-text search over product name, description
// and farmer name; substring match on farmer location; exact (case
// insensitive) category match, where empty or "all" keeps everything.
type Filter struct {
	Query    string
	Location string
	Category string
}

// Apply filters and sorts a copy of the feed, leaving the input untouched.
func Apply(listings []backend.Listing, f Filter, sortBy SortKey) []backend.Listing {
	out := make([]backend.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	sortListings(out, sortBy)
	return out
}

func matches(l backend.Listing, f Filter) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(l.ProductName), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) &&
			!strings.Contains(strings.ToLower(l.FarmerName), q) {
			return false
		}
	}
	if f.Location != "" {
		if !strings.Contains(strings.ToLower(l.FarmerLocation), strings.ToLower(f.Location)) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(f.Category, "all") {
		if !strings.EqualFold(l.Category, f.Category) {
			return false
		}
	}
	return true
}

func sortListings(listings []backend.Listing, key SortKey) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]
		switch key {
		case SortByRating:
			return a.Rating > b.Rating
		case SortByViews:
			return a.Views > b.Views
		case SortByPriceLow:
			return a.Price < b.Price
		case SortByPriceHigh:
			return a.Price > b.Price
		case SortByNewest:
			return parseTime(a.CreatedAt).After(parseTime(b.CreatedAt))
		default:
			return false
		}
	})
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
