// Package backendtest runs an in-memory stand-in for the hosted backend:
// the edge function routes plus the auth token and logout endpoints, backed
// by seedable state and call records. Tests point a backend.Client and
// backend.AuthClient at it and drive the real HTTP path.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"agriconnect/backend"
)

// AnonKey is the anonymous key every fake server accepts.
const AnonKey = "test-anon-key"

// signingSecret signs the access tokens the fake auth endpoint issues.
const signingSecret = "backendtest-secret"

// Credentials is one recorded password-grant attempt.
type Credentials struct {
	Email    string
	Password string
}

type account struct {
	password string
	metadata backend.UserMetadata
}

type failure struct {
	status  int
	message string
}

// Server is the fake backend. Seed the exported fields before driving the
// client; inspect the call records after.
type Server struct {
	httpServer *httptest.Server

	mu       sync.Mutex
	accounts map[string]account
	failures map[string]failure

	// Seedable responses.
	Profile       backend.Profile
	Products      []backend.Product
	Listings      []backend.Listing
	Orders        []backend.Order
	Deliveries    []backend.Delivery
	Stats         backend.AdminStats
	Users         []backend.AdminUser
	Messages      []backend.ChatMessage
	Announcements []backend.Announcement
	Feedback      []backend.Feedback
	WeatherData   backend.Weather

	// Call records.
	SignupRequests      []backend.SignupPayload
	BuyerSignupRequests []backend.BuyerSignupPayload
	TokenRequests       []Credentials
	LogoutTokens        []string
	ProfileUpdates      []backend.ProfileUpdate
	CreatedProducts     []backend.ProductInput
	CreatedListings     []backend.ListingInput
	RatedListings       []string
	ViewedListings      []string
	WeatherLocations    []string
	BearerTokens        []string
}

// New starts a fake backend and registers its shutdown with the test.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		accounts: make(map[string]account),
		failures: make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", s.handleToken)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/buyer-signup", s.handleBuyerSignup)
	mux.HandleFunc("/profile", s.handleProfile)
	mux.HandleFunc("/products", s.handleProducts)
	mux.HandleFunc("/products/", s.handleProducts)
	mux.HandleFunc("/marketplace/listings", s.handleListings)
	mux.HandleFunc("/marketplace/rate", s.handleRate)
	mux.HandleFunc("/marketplace/view/", s.handleView)
	mux.HandleFunc("/buyer-orders", s.handleOrders)
	mux.HandleFunc("/transporter-deliveries", s.handleDeliveries)
	mux.HandleFunc("/admin-stats", s.handleStats)
	mux.HandleFunc("/admin-users", s.handleUsers)
	mux.HandleFunc("/chat/messages", s.handleChat)
	mux.HandleFunc("/weather", s.handleWeather)
	mux.HandleFunc("/announcements", s.handleAnnouncements)
	mux.HandleFunc("/feedback", s.handleFeedback)

	s.httpServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.intercept(w, r) {
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.httpServer.Close)
	return s
}

// URL returns the fake backend's base URL.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Client returns a backend.Client wired to the fake.
func (s *Server) Client(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.NewClient(s.httpServer.URL, AnonKey)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	return c
}

// AuthClient returns a backend.AuthClient wired to the fake.
func (s *Server) AuthClient(t *testing.T) *backend.AuthClient {
	t.Helper()
	a, err := backend.NewAuthClient(s.httpServer.URL, AnonKey)
	if err != nil {
		t.Fatalf("build auth client: %v", err)
	}
	return a
}

// FailNext makes the given "METHOD /path" respond with an error body until
// cleared. The message is rendered in the backend's error envelope.
func (s *Server) FailNext(methodAndPath string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[methodAndPath] = failure{status: status, message: message}
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// AccessToken signs a session token carrying the given metadata, the same
// shape the fake token endpoint issues.
func AccessToken(t *testing.T, userID string, metadata backend.UserMetadata) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"user_metadata": map[string]any{
			"name":     metadata.Name,
			"userType": metadata.UserType,
			"language": metadata.Language,
			"location": metadata.Location,
		},
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(signingSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func (s *Server) intercept(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	s.BearerTokens = append(s.BearerTokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	f, ok := s.failures[r.Method+" "+r.URL.Path]
	s.mu.Unlock()
	if !ok {
		return false
	}
	writeError(w, f.status, f.message)
	return true
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	creds.Email = body.Email
	creds.Password = body.Password

	s.mu.Lock()
	s.TokenRequests = append(s.TokenRequests, creds)
	acct, ok := s.accounts[creds.Email]
	s.mu.Unlock()

	if !ok || acct.password != creds.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error_description": "Invalid login credentials",
		})
		return
	}

	token := signToken(creds.Email, acct.metadata)
	writeJSON(w, http.StatusOK, backend.Session{
		AccessToken:  token,
		TokenType:    "bearer",
		ExpiresIn:    3600,
		RefreshToken: "refresh-" + creds.Email,
		User: backend.SessionUser{
			ID:       "user-" + creds.Email,
			Email:    creds.Email,
			Metadata: acct.metadata,
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.LogoutTokens = append(s.LogoutTokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload backend.SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[payload.Email]; exists {
		writeError(w, http.StatusBadRequest, "User already registered")
		return
	}
	s.SignupRequests = append(s.SignupRequests, payload)
	s.accounts[payload.Email] = account{
		password: payload.Password,
		metadata: backend.UserMetadata{
			Name:     payload.Name,
			UserType: payload.UserRole,
			Language: payload.Language,
			Location: payload.Location,
		},
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account created"})
}

func (s *Server) handleBuyerSignup(w http.ResponseWriter, r *http.Request) {
	var payload backend.BuyerSignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[payload.Email]; exists {
		writeError(w, http.StatusBadRequest, "User already registered")
		return
	}
	s.BuyerSignupRequests = append(s.BuyerSignupRequests, payload)
	s.accounts[payload.Email] = account{
		password: payload.Password,
		metadata: backend.UserMetadata{
			Name:     payload.Name,
			UserType: "buyer",
			Language: payload.Language,
			Location: payload.Location,
		},
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account created"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		profile := s.Profile
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]backend.Profile{"profile": profile})
	case http.MethodPut:
		var update backend.ProfileUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		s.mu.Lock()
		s.ProfileUpdates = append(s.ProfileUpdates, update)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		products := s.Products
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string][]backend.Product{"products": products})
	case http.MethodPost, http.MethodPut:
		var input backend.ProductInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		s.mu.Lock()
		s.CreatedProducts = append(s.CreatedProducts, input)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	case http.MethodDelete:
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		listings := s.Listings
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string][]backend.Listing{"listings": listings})
	case http.MethodPost:
		var input backend.ListingInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		s.mu.Lock()
		s.CreatedListings = append(s.CreatedListings, input)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ListingID string `json:"listingId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	s.RatedListings = append(s.RatedListings, body.ListingID)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/marketplace/view/")
	s.mu.Lock()
	s.ViewedListings = append(s.ViewedListings, id)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	orders := s.Orders
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]backend.Order{"orders": orders})
}

func (s *Server) handleDeliveries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	deliveries := s.Deliveries
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]backend.Delivery{"deliveries": deliveries})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.Stats
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]backend.AdminStats{"stats": stats})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := s.Users
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]backend.AdminUser{"users": users})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		messages := s.Messages
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string][]backend.ChatMessage{"messages": messages})
	case http.MethodPost:
		var body struct {
			Message  string `json:"message"`
			Language string `json:"language"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.Messages = append(s.Messages, backend.ChatMessage{
			ID:        "m-" + time.Now().Format("150405.000000000"),
			UserID:    "user-test",
			UserName:  "Test User",
			Message:   body.Message,
			Language:  body.Language,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.WeatherLocations = append(s.WeatherLocations, r.URL.Query().Get("location"))
	weather := s.WeatherData
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, weather)
}

func (s *Server) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	announcements := s.Announcements
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]backend.Announcement{"announcements": announcements})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		feedback := s.Feedback
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string][]backend.Feedback{"feedback": feedback})
	case http.MethodPost:
		var body struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.Feedback = append(s.Feedback, backend.Feedback{
			ID:        "f-" + time.Now().Format("150405.000000000"),
			Name:      body.Name,
			Message:   body.Message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func signToken(email string, metadata backend.UserMetadata) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-" + email,
		"user_metadata": map[string]any{
			"name":     metadata.Name,
			"userType": metadata.UserType,
			"language": metadata.Language,
			"location": metadata.Location,
		},
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(signingSecret))
	if err != nil {
		return "unsigned"
	}
	return signed
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
