package auth

import (
	"fmt"
	"time"

	"agriconnect/backend"
)

type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleBuyer       Role = "buyer"
	RoleTransporter Role = "transporter"
	RoleAdmin       Role = "admin"
)

// Language is a UI language preference code.
type Language string

const (
	LanguageEnglish     Language = "en"
	LanguageFrench      Language = "fr"
	LanguageKinyarwanda Language = "rw"
)

// ParseRole validates a role string against the closed enum.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !isValidRole(role) {
		return "", fmt.Errorf("auth: invalid role %q", s)
	}
	return role, nil
}

func isValidRole(role Role) bool {
	switch role {
	case RoleFarmer, RoleBuyer, RoleTransporter, RoleAdmin:
		return true
	default:
		return false
	}
}

func isValidLanguage(lang Language) bool {
	switch lang {
	case LanguageEnglish, LanguageFrench, LanguageKinyarwanda:
		return true
	default:
		return false
	}
}

// RoleDetails is the role-specific portion of a registration: exactly one
// variant per role, so a request can never carry fields for the wrong role.
type RoleDetails interface {
	role() Role
}

// FarmerDetails carries the farmer-only registration fields. Both are
// optional on the form.
type FarmerDetails struct {
	FarmSize string
	FarmType string
}

func (FarmerDetails) role() Role { return RoleFarmer }

// BuyerDetails carries the buyer-only registration fields.
type BuyerDetails struct {
	BusinessName string
}

func (BuyerDetails) role() Role { return RoleBuyer }

// TransporterDetails carries the transporter-only registration fields.
type TransporterDetails struct {
	VehicleType string
}

func (TransporterDetails) role() Role { return RoleTransporter }

// AdminDetails carries the admin-only registration fields. Username is
// required; only authorized usernames are accepted server-side.
type AdminDetails struct {
	Username string
}

func (AdminDetails) role() Role { return RoleAdmin }

// RegistrationRequest is the validated output of the credential collector.
type RegistrationRequest struct {
	Email    string
	Password string
	Name     string
	Role     Role
	Language Language
	Location string

	// PhoneNumber and IDNumber are required for every role except admin.
	PhoneNumber string
	IDNumber    string

	Details RoleDetails
}

// Payload flattens the request into the signup wire shape. The switch is
// exhaustive over the role variants.
func (r RegistrationRequest) Payload() backend.SignupPayload {
	p := backend.SignupPayload{
		Email:       r.Email,
		Password:    r.Password,
		Name:        r.Name,
		UserRole:    string(r.Role),
		Language:    string(r.Language),
		Location:    r.Location,
		PhoneNumber: r.PhoneNumber,
		IDNumber:    r.IDNumber,
	}
	switch d := r.Details.(type) {
	case FarmerDetails:
		p.FarmSize = d.FarmSize
		p.FarmType = d.FarmType
	case BuyerDetails:
		p.BusinessName = d.BusinessName
	case TransporterDetails:
		p.VehicleType = d.VehicleType
	case AdminDetails:
		p.AdminUsername = d.Username
	}
	return p
}

// PendingSignup holds a validated registration while the payment step runs.
// Created by the collector, consumed by the provisioner on payment success,
// discarded on cancel.
type PendingSignup struct {
	Request         RegistrationRequest
	AmountMinorUnit int
	CreatedAt       time.Time
}

// RequiresPayment reports whether the payment simulator must run before the
// account can be provisioned. Admin accounts bypass payment.
func (p PendingSignup) RequiresPayment() bool {
	return p.Request.Role != RoleAdmin
}
