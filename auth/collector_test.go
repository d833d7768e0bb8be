package auth

import (
	"errors"
	"testing"
)

func validFarmerRequest() RegistrationRequest {
	return RegistrationRequest{
		Email:       "jean@example.com",
		Password:    "growmaize",
		Name:        "Jean Bosco",
		Role:        RoleFarmer,
		Language:    LanguageKinyarwanda,
		Location:    "Musanze",
		PhoneNumber: "0788123456",
		IDNumber:    "119900123456789",
		Details:     FarmerDetails{FarmSize: "2 ha", FarmType: "mixed"},
	}
}

func TestCollect_Farmer(t *testing.T) {
	pending, err := Collect(validFarmerRequest())
	if err != nil {
		t.Fatalf("collect: unexpected error: %v", err)
	}
	if pending.AmountMinorUnit != 2500 {
		t.Fatalf("expected farmer fee 2500, got %d", pending.AmountMinorUnit)
	}
	if !pending.RequiresPayment() {
		t.Fatal("farmer signup must require payment")
	}
	if pending.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestCollect_AdminBypassesPayment(t *testing.T) {
	pending, err := Collect(RegistrationRequest{
		Email:    "root@example.com",
		Password: "adminpass",
		Name:     "Platform Admin",
		Role:     RoleAdmin,
		Details:  AdminDetails{Username: "root"},
	})
	if err != nil {
		t.Fatalf("collect: unexpected error: %v", err)
	}
	if pending.AmountMinorUnit != 0 {
		t.Fatalf("expected zero admin fee, got %d", pending.AmountMinorUnit)
	}
	if pending.RequiresPayment() {
		t.Fatal("admin signup must not require payment")
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegistrationRequest)
		field  string
	}{
		{"missing email", func(r *RegistrationRequest) { r.Email = "" }, "email"},
		{"missing password", func(r *RegistrationRequest) { r.Password = "" }, "password"},
		{"missing name", func(r *RegistrationRequest) { r.Name = "" }, "name"},
		{"missing phone", func(r *RegistrationRequest) { r.PhoneNumber = "" }, "phoneNumber"},
		{"missing id number", func(r *RegistrationRequest) { r.IDNumber = "" }, "idNumber"},
		{"unknown role", func(r *RegistrationRequest) { r.Role = "merchant"; r.Details = nil }, "role"},
		{"unknown language", func(r *RegistrationRequest) { r.Language = "sw" }, "language"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validFarmerRequest()
			tc.mutate(&req)
			err := Validate(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestValidate_PhoneAndIDRequiredPerRole(t *testing.T) {
	for _, role := range []Role{RoleFarmer, RoleBuyer, RoleTransporter} {
		req := validFarmerRequest()
		req.Role = role
		req.Details = nil
		req.PhoneNumber = ""
		if err := Validate(req); err == nil {
			t.Errorf("role %s: expected error for missing phone", role)
		}
	}

	admin := RegistrationRequest{
		Email:    "root@example.com",
		Password: "adminpass",
		Name:     "Platform Admin",
		Role:     RoleAdmin,
		Details:  AdminDetails{Username: "root"},
	}
	if err := Validate(admin); err != nil {
		t.Fatalf("admin without phone or id should validate, got %v", err)
	}
}

func TestValidate_AdminUsernameRequired(t *testing.T) {
	req := RegistrationRequest{
		Email:    "root@example.com",
		Password: "adminpass",
		Name:     "Platform Admin",
		Role:     RoleAdmin,
	}
	err := Validate(req)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "adminUsername" {
		t.Fatalf("expected adminUsername validation error, got %v", err)
	}
}

func TestValidate_DetailsMustMatchRole(t *testing.T) {
	req := validFarmerRequest()
	req.Details = TransporterDetails{VehicleType: "truck"}
	if err := Validate(req); err == nil {
		t.Fatal("expected error for mismatched role details")
	}
}

func TestPayload_RoleSpecificFields(t *testing.T) {
	req := validFarmerRequest()
	p := req.Payload()
	if p.UserRole != "farmer" || p.FarmSize != "2 ha" || p.FarmType != "mixed" {
		t.Fatalf("unexpected farmer payload: %+v", p)
	}
	if p.VehicleType != "" || p.AdminUsername != "" {
		t.Fatalf("farmer payload must not carry other roles' fields: %+v", p)
	}

	req.Role = RoleTransporter
	req.Details = TransporterDetails{VehicleType: "motorbike"}
	p = req.Payload()
	if p.VehicleType != "motorbike" || p.FarmSize != "" {
		t.Fatalf("unexpected transporter payload: %+v", p)
	}
}

func TestCollectBuyerPortal(t *testing.T) {
	pending, err := CollectBuyerPortal(RegistrationRequest{
		Email:       "marie@example.com",
		Password:    "freshveg",
		Name:        "Marie Claire",
		PhoneNumber: "0722334455",
	})
	if err != nil {
		t.Fatalf("collect: unexpected error: %v", err)
	}
	if pending.Request.Role != RoleBuyer {
		t.Fatalf("portal signup must force buyer role, got %s", pending.Request.Role)
	}
	if pending.AmountMinorUnit != 500 {
		t.Fatalf("expected portal fee 500, got %d", pending.AmountMinorUnit)
	}
}

func TestCollectBuyerPortal_MissingField(t *testing.T) {
	_, err := CollectBuyerPortal(RegistrationRequest{
		Email:    "marie@example.com",
		Password: "freshveg",
	})
	if err == nil {
		t.Fatal("expected error for incomplete portal form")
	}
}
