package marketplace

import (
	"context"
	"testing"

	"agriconnect/backend"
)

type fakeMarketBackend struct {
	listings []backend.Listing

	created []backend.ListingInput
	rated   map[string]int
	viewed  []string
}

func newFakeMarketBackend() *fakeMarketBackend {
	return &fakeMarketBackend{rated: make(map[string]int)}
}

func (f *fakeMarketBackend) Listings(_ context.Context, _ string) ([]backend.Listing, error) {
	return f.listings, nil
}

func (f *fakeMarketBackend) CreateListing(_ context.Context, _ string, input backend.ListingInput) error {
	f.created = append(f.created, input)
	return nil
}

func (f *fakeMarketBackend) RateListing(_ context.Context, _ string, listingID string, rating int) error {
	f.rated[listingID] = rating
	return nil
}

func (f *fakeMarketBackend) RecordListingView(_ context.Context, _ string, listingID string) error {
	f.viewed = append(f.viewed, listingID)
	return nil
}

func TestPublish_Validation(t *testing.T) {
	be := newFakeMarketBackend()
	svc := NewService(be, "tok")

	valid := backend.ListingInput{ProductID: "p1", Price: 850, Quantity: 100, Unit: "kg"}
	if err := svc.Publish(context.Background(), valid); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(be.created) != 1 {
		t.Fatalf("expected one created listing, got %d", len(be.created))
	}

	cases := []backend.ListingInput{
		{Price: 850, Quantity: 100},
		{ProductID: "p1", Price: 0, Quantity: 100},
		{ProductID: "p1", Price: 850, Quantity: 0},
	}
	for _, input := range cases {
		if err := svc.Publish(context.Background(), input); err == nil {
			t.Errorf("expected validation error for %+v", input)
		}
	}
}

func TestRate(t *testing.T) {
	be := newFakeMarketBackend()
	svc := NewService(be, "tok")

	if err := svc.Rate(context.Background(), "l1", 4); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if be.rated["l1"] != 4 {
		t.Fatalf("unexpected ratings: %v", be.rated)
	}

	for _, rating := range []int{0, 6, -1} {
		if err := svc.Rate(context.Background(), "l1", rating); err == nil {
			t.Errorf("expected error for rating %d", rating)
		}
	}
	if err := svc.Rate(context.Background(), "", 3); err == nil {
		t.Error("expected error for missing listing id")
	}
}

func TestRecordView(t *testing.T) {
	be := newFakeMarketBackend()
	svc := NewService(be, "tok")

	if err := svc.RecordView(context.Background(), "l1"); err != nil {
		t.Fatalf("record view: %v", err)
	}
	if len(be.viewed) != 1 || be.viewed[0] != "l1" {
		t.Fatalf("unexpected views: %v", be.viewed)
	}
}

func feed() []backend.Listing {
	return []backend.Listing{
		{ID: "l1", ProductName: "Maize", FarmerName: "Jean", FarmerLocation: "Musanze", Category: "Grains", Price: 850, Rating: 4.5, Views: 120, CreatedAt: "2025-05-01T08:00:00Z"},
		{ID: "l2", ProductName: "Tomatoes", FarmerName: "Marie", FarmerLocation: "Kigali", Category: "Vegetables", Price: 1200, Rating: 3.8, Views: 300, CreatedAt: "2025-05-20T08:00:00Z"},
		{ID: "l3", ProductName: "Irish Potatoes", FarmerName: "Claude", FarmerLocation: "Musanze", Category: "Root Crops", Price: 600, Rating: 4.9, Views: 45, CreatedAt: "2025-04-10T08:00:00Z"},
	}
}

func TestApply_Query(t *testing.T) {
	got := Apply(feed(), Filter{Query: "tomato"}, "")
	if len(got) != 1 || got[0].ID != "l2" {
		t.Fatalf("expected l2 for tomato query, got %v", got)
	}

	// Farmer name is searchable too.
	got = Apply(feed(), Filter{Query: "jean"}, "")
	if len(got) != 1 || got[0].ID != "l1" {
		t.Fatalf("expected l1 for farmer query, got %v", got)
	}
}

func TestApply_LocationAndCategory(t *testing.T) {
	got := Apply(feed(), Filter{Location: "musanze"}, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 Musanze listings, got %d", len(got))
	}

	got = Apply(feed(), Filter{Category: "vegetables"}, "")
	if len(got) != 1 || got[0].ID != "l2" {
		t.Fatalf("expected l2 for vegetables, got %v", got)
	}

	got = Apply(feed(), Filter{Category: "All"}, "")
	if len(got) != 3 {
		t.Fatalf("category All must keep everything, got %d", len(got))
	}
}

func TestApply_Sorting(t *testing.T) {
	cases := []struct {
		key   SortKey
		first string
	}{
		{SortByRating, "l3"},
		{SortByViews, "l2"},
		{SortByPriceLow, "l3"},
		{SortByPriceHigh, "l2"},
		{SortByNewest, "l2"},
	}
	for _, tc := range cases {
		got := Apply(feed(), Filter{}, tc.key)
		if got[0].ID != tc.first {
			t.Errorf("sort %s: expected %s first, got %s", tc.key, tc.first, got[0].ID)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	original := feed()
	Apply(original, Filter{}, SortByPriceLow)
	if original[0].ID != "l1" {
		t.Fatal("Apply must not reorder the input slice")
	}
}
