// Package feedback handles the public testimonial wall on the marketing
// pages: anonymous-key submission and listing.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"agriconnect/backend"
)

// Backend is the slice of the backend client the service needs.
type Backend interface {
	FeedbackList(ctx context.Context) ([]backend.Feedback, error)
	SubmitFeedback(ctx context.Context, name, message string) error
}

// Service validates and relays feedback submissions.
type Service struct {
	backend Backend
}

// NewService builds a Service over the backend collaborator.
func NewService(b Backend) *Service {
	return &Service{backend: b}
}

// Submit posts a testimonial. Name and message are both required.
func (s *Service) Submit(ctx context.Context, name, message string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("feedback: name required")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("feedback: message required")
	}
	return s.backend.SubmitFeedback(ctx, name, message)
}

// List returns all public testimonials.
func (s *Service) List(ctx context.Context) ([]backend.Feedback, error) {
	return s.backend.FeedbackList(ctx)
}
