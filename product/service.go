// Package product manages a farmer's inventory against the backend products
// endpoints: local field validation, then straight CRUD passthrough. The
// backend owns the data; the client re-fetches after every mutation.
package product

import (
	"context"
	"fmt"

	"agriconnect/backend"
)

// Type distinguishes crop from livestock entries; each has its own category
// list.
type Type string

const (
	TypeCrop      Type = "crop"
	TypeLivestock Type = "livestock"
)

// CropCategories and LivestockCategories are the closed category choices per
// product type.
var (
	CropCategories      = []string{"Grains", "Vegetables", "Fruits", "Legumes", "Root Crops", "Other"}
	LivestockCategories = []string{"Cattle", "Goats", "Sheep", "Poultry", "Pigs", "Other"}
)

// Backend is the slice of the backend client the service needs.
type Backend interface {
	Products(ctx context.Context, token string) ([]backend.Product, error)
	CreateProduct(ctx context.Context, token string, input backend.ProductInput) error
	UpdateProduct(ctx context.Context, token, productID string, input backend.ProductInput) error
	DeleteProduct(ctx context.Context, token, productID string) error
}

// Service validates and submits product mutations for one session.
type Service struct {
	backend Backend
	token   string
}

// NewService builds a Service bound to a session token.
func NewService(b Backend, token string) *Service {
	return &Service{backend: b, token: token}
}

// List returns the caller's products.
func (s *Service) List(ctx context.Context) ([]backend.Product, error) {
	return s.backend.Products(ctx, s.token)
}

// Create validates and adds a product.
func (s *Service) Create(ctx context.Context, input backend.ProductInput) error {
	if err := validate(input); err != nil {
		return err
	}
	return s.backend.CreateProduct(ctx, s.token, input)
}

// Update validates and replaces an existing product.
func (s *Service) Update(ctx context.Context, productID string, input backend.ProductInput) error {
	if productID == "" {
		return fmt.Errorf("product: missing product id")
	}
	if err := validate(input); err != nil {
		return err
	}
	return s.backend.UpdateProduct(ctx, s.token, productID, input)
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("product: missing product id")
	}
	return s.backend.DeleteProduct(ctx, s.token, productID)
}

func validate(input backend.ProductInput) error {
	switch Type(input.Type) {
	case TypeCrop, TypeLivestock:
	default:
		return fmt.Errorf("product: invalid type %q", input.Type)
	}
	if input.Name == "" {
		return fmt.Errorf("product: name required")
	}
	if input.Quantity <= 0 {
		return fmt.Errorf("product: quantity must be positive")
	}
	if input.Unit == "" {
		return fmt.Errorf("product: unit required")
	}
	if !validCategory(Type(input.Type), input.Category) {
		return fmt.Errorf("product: invalid category %q for type %q", input.Category, input.Type)
	}
	return nil
}

func validCategory(t Type, category string) bool {
	choices := CropCategories
	if t == TypeLivestock {
		choices = LivestockCategories
	}
	for _, c := range choices {
		if c == category {
			return true
		}
	}
	return false
}
