package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a typed HTTP client for the hosted backend's edge functions.
// Every call sends a bearer token: either a session access token or the
// public anonymous key for pre-auth endpoints. The client holds no session
// state; callers pass the token per request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
}

// NewClient builds a Client for the given functions base URL and anonymous
// key. Both are required; the anonymous key doubles as the bearer token for
// endpoints reachable before login.
func NewClient(baseURL, anonKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend: empty base URL")
	}
	if anonKey == "" {
		return nil, fmt.Errorf("backend: empty anonymous key")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		anonKey:    anonKey,
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// AnonKey returns the public anonymous key the client was built with.
func (c *Client) AnonKey() string {
	return c.anonKey
}

// Signup creates an account via POST /signup using the anonymous key.
func (c *Client) Signup(ctx context.Context, payload SignupPayload) error {
	return c.do(ctx, http.MethodPost, "/signup", c.anonKey, payload, nil)
}

// BuyerSignup creates a buyer account via the standalone portal endpoint.
func (c *Client) BuyerSignup(ctx context.Context, payload BuyerSignupPayload) error {
	return c.do(ctx, http.MethodPost, "/buyer-signup", c.anonKey, payload, nil)
}

// GetProfile fetches the caller's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (Profile, error) {
	var resp struct {
		Profile Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", token, nil, &resp); err != nil {
		return Profile{}, err
	}
	return resp.Profile, nil
}

// UpdateProfile writes mutable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/profile", token, update, nil)
}

// Products lists the caller's products.
func (c *Client) Products(ctx context.Context, token string) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// CreateProduct adds a product.
func (c *Client) CreateProduct(ctx context.Context, token string, input ProductInput) error {
	return c.do(ctx, http.MethodPost, "/products", token, input, nil)
}

// UpdateProduct replaces an existing product.
func (c *Client) UpdateProduct(ctx context.Context, token, productID string, input ProductInput) error {
	return c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(productID), token, input, nil)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(productID), token, nil, nil)
}

// Listings returns all marketplace listings.
func (c *Client) Listings(ctx context.Context, token string) ([]Listing, error) {
	var resp struct {
		Listings []Listing `json:"listings"`
	}
	if err := c.do(ctx, http.MethodGet, "/marketplace/listings", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Listings, nil
}

// CreateListing publishes a product to the marketplace.
func (c *Client) CreateListing(ctx context.Context, token string, input ListingInput) error {
	return c.do(ctx, http.MethodPost, "/marketplace/listings", token, input, nil)
}

// RateListing records a buyer rating for a listing's seller.
func (c *Client) RateListing(ctx context.Context, token, listingID string, rating int) error {
	body := struct {
		ListingID string `json:"listingId"`
		Rating    int    `json:"rating"`
	}{ListingID: listingID, Rating: rating}
	return c.do(ctx, http.MethodPost, "/marketplace/rate", token, body, nil)
}

// RecordListingView bumps a listing's view counter.
func (c *Client) RecordListingView(ctx context.Context, token, listingID string) error {
	return c.do(ctx, http.MethodPost, "/marketplace/view/"+url.PathEscape(listingID), token, nil, nil)
}

// BuyerOrders lists the caller's orders.
func (c *Client) BuyerOrders(ctx context.Context, token string) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/buyer-orders", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// TransporterDeliveries lists the caller's delivery jobs.
func (c *Client) TransporterDeliveries(ctx context.Context, token string) ([]Delivery, error) {
	var resp struct {
		Deliveries []Delivery `json:"deliveries"`
	}
	if err := c.do(ctx, http.MethodGet, "/transporter-deliveries", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Deliveries, nil
}

// AdminStats fetches platform aggregates. Admin token required.
func (c *Client) AdminStats(ctx context.Context, token string) (AdminStats, error) {
	var resp struct {
		Stats AdminStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin-stats", token, nil, &resp); err != nil {
		return AdminStats{}, err
	}
	return resp.Stats, nil
}

// AdminUsers lists all registered users. Admin token required.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]AdminUser, error) {
	var resp struct {
		Users []AdminUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin-users", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ChatMessages returns up to limit community chat messages.
func (c *Client) ChatMessages(ctx context.Context, token string, limit int) ([]ChatMessage, error) {
	path := "/chat/messages"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp struct {
		Messages []ChatMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// PostChatMessage appends a message to the community chat.
func (c *Client) PostChatMessage(ctx context.Context, token, message, language string) error {
	body := struct {
		Message  string `json:"message"`
		Language string `json:"language"`
	}{Message: message, Language: language}
	return c.do(ctx, http.MethodPost, "/chat/messages", token, body, nil)
}

// Weather fetches conditions for a location. Reachable with the anonymous
// key; the marketing pages call it before any login.
func (c *Client) Weather(ctx context.Context, location string) (Weather, error) {
	var out Weather
	path := "/weather?location=" + url.QueryEscape(location)
	if err := c.do(ctx, http.MethodGet, path, c.anonKey, nil, &out); err != nil {
		return Weather{}, err
	}
	return out, nil
}

// Announcements lists ministry bulletins.
func (c *Client) Announcements(ctx context.Context, token string) ([]Announcement, error) {
	var resp struct {
		Announcements []Announcement `json:"announcements"`
	}
	if err := c.do(ctx, http.MethodGet, "/announcements", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Announcements, nil
}

// FeedbackList returns public testimonials. Anonymous access.
func (c *Client) FeedbackList(ctx context.Context) ([]Feedback, error) {
	var resp struct {
		Feedback []Feedback `json:"feedback"`
	}
	if err := c.do(ctx, http.MethodGet, "/feedback", c.anonKey, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Feedback, nil
}

// SubmitFeedback posts a testimonial. Anonymous access.
func (c *Client) SubmitFeedback(ctx context.Context, name, message string) error {
	body := struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}{Name: name, Message: message}
	return c.do(ctx, http.MethodPost, "/feedback", c.anonKey, body, nil)
}

// do performs one JSON request. A nil out discards the response body; a
// non-2xx status is decoded into *APIError with the backend's message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
