package auth

import (
	"context"
	"errors"
	"fmt"

	"agriconnect/backend"
)

// SignupBackend is the slice of the backend client the provisioner needs.
type SignupBackend interface {
	Signup(ctx context.Context, payload backend.SignupPayload) error
	BuyerSignup(ctx context.Context, payload backend.BuyerSignupPayload) error
}

// Provisioner submits validated registrations and authenticates the new
// account. For non-admin roles the caller must only invoke it after the
// payment simulator reported success.
type Provisioner struct {
	backend SignupBackend
	auth    backend.Authenticator
}

// NewProvisioner builds a Provisioner over the given backend and
// authentication collaborators.
func NewProvisioner(b SignupBackend, a backend.Authenticator) *Provisioner {
	return &Provisioner{backend: b, auth: a}
}

// Provision creates the account and immediately logs in with the same
// credentials, returning the resulting session. A rejected signup surfaces
// as *SignupError and the login call is never made; the pending signup's
// payment state is not reusable on a later attempt. A login failure after a
// successful signup is terminal for this attempt and also surfaces as
// *SignupError.
func (p *Provisioner) Provision(ctx context.Context, pending *PendingSignup) (backend.Session, error) {
	if pending == nil {
		return backend.Session{}, fmt.Errorf("auth: nil pending signup")
	}

	if err := p.backend.Signup(ctx, pending.Request.Payload()); err != nil {
		return backend.Session{}, asSignupError(err)
	}
	return p.login(ctx, pending.Request.Email, pending.Request.Password)
}

// ProvisionBuyer runs the standalone buyer portal variant against the
// dedicated buyer-signup endpoint.
func (p *Provisioner) ProvisionBuyer(ctx context.Context, pending *PendingSignup) (backend.Session, error) {
	if pending == nil {
		return backend.Session{}, fmt.Errorf("auth: nil pending signup")
	}

	req := pending.Request
	payload := backend.BuyerSignupPayload{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Language:    string(req.Language),
	}
	if details, ok := req.Details.(BuyerDetails); ok {
		payload.BusinessName = details.BusinessName
	}

	if err := p.backend.BuyerSignup(ctx, payload); err != nil {
		return backend.Session{}, asSignupError(err)
	}
	return p.login(ctx, req.Email, req.Password)
}

// Login authenticates existing credentials. Auth failures pass through as
// *backend.AuthError for inline display.
func (p *Provisioner) Login(ctx context.Context, email, password string) (backend.Session, error) {
	return p.auth.SignIn(ctx, email, password)
}

func (p *Provisioner) login(ctx context.Context, email, password string) (backend.Session, error) {
	session, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		return backend.Session{}, &SignupError{Message: fmt.Sprintf("account created but login failed: %v", err)}
	}
	return session, nil
}

func asSignupError(err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return &SignupError{Status: apiErr.Status, Message: apiErr.Message}
	}
	return &SignupError{Message: err.Error()}
}
