package auth

import (
	"time"

	"agriconnect/pricing"
)

// Collect validates a registration and, if it passes, parks it as a
// PendingSignup priced for the selected role. No network I/O happens here;
// the next step is the payment simulator (or the provisioner directly for
// admins).
func Collect(req RegistrationRequest) (*PendingSignup, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	return &PendingSignup{
		Request:         req,
		AmountMinorUnit: pricing.AmountForRole(pricing.Role(req.Role)),
		CreatedAt:       time.Now(),
	}, nil
}

// Validate checks required-field presence. Email, password and display name
// are always required; phone number and national ID for every non-admin
// role; the admin username for admins. The role switch is exhaustive.
func Validate(req RegistrationRequest) error {
	if req.Email == "" {
		return &ValidationError{Field: "email", Message: "required"}
	}
	if req.Password == "" {
		return &ValidationError{Field: "password", Message: "required"}
	}
	if req.Name == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if !isValidRole(req.Role) {
		return &ValidationError{Field: "role", Message: "unknown role"}
	}
	if req.Language != "" && !isValidLanguage(req.Language) {
		return &ValidationError{Field: "language", Message: "unknown language"}
	}
	if req.Details != nil && req.Details.role() != req.Role {
		return &ValidationError{Field: "role", Message: "details do not match selected role"}
	}

	switch req.Role {
	case RoleFarmer, RoleBuyer, RoleTransporter:
		if req.PhoneNumber == "" {
			return &ValidationError{Field: "phoneNumber", Message: "required"}
		}
		if req.IDNumber == "" {
			return &ValidationError{Field: "idNumber", Message: "required"}
		}
	case RoleAdmin:
		details, ok := req.Details.(AdminDetails)
		if !ok || details.Username == "" {
			return &ValidationError{Field: "adminUsername", Message: "required"}
		}
	}
	return nil
}

// CollectBuyerPortal validates the standalone buyer portal form and prices
// it at the cheaper verification fee.
func CollectBuyerPortal(req RegistrationRequest) (*PendingSignup, error) {
	if err := ValidateBuyerPortal(req); err != nil {
		return nil, err
	}
	req.Role = RoleBuyer
	return &PendingSignup{
		Request:         req,
		AmountMinorUnit: pricing.BuyerPortalAmount,
		CreatedAt:       time.Now(),
	}, nil
}

// ValidateBuyerPortal checks the standalone buyer portal form, which asks for
// fewer fields than the main signup: name, email, password and phone number.
func ValidateBuyerPortal(req RegistrationRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.PhoneNumber == "" {
		return &ValidationError{Field: "form", Message: "please fill in all required fields"}
	}
	if req.Language != "" && !isValidLanguage(req.Language) {
		return &ValidationError{Field: "language", Message: "unknown language"}
	}
	return nil
}
