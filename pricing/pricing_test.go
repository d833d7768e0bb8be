package pricing

import (
	"strings"
	"testing"
)

func TestAmountForRole(t *testing.T) {
	cases := []struct {
		role   Role
		amount int
	}{
		{RoleFarmer, 2500},
		{RoleBuyer, 1500},
		{RoleTransporter, 1000},
		{RoleAdmin, 0},
	}
	for _, tc := range cases {
		if got := AmountForRole(tc.role); got != tc.amount {
			t.Errorf("AmountForRole(%s) = %d, want %d", tc.role, got, tc.amount)
		}
	}
}

func TestAmountForRole_Stable(t *testing.T) {
	first := AmountForRole(RoleFarmer)
	for i := 0; i < 10; i++ {
		if got := AmountForRole(RoleFarmer); got != first {
			t.Fatalf("amount changed between calls: %d then %d", first, got)
		}
	}
	if first < 0 {
		t.Fatalf("expected non-negative amount, got %d", first)
	}
}

func TestAmountForRole_UnknownFallsBackToFarmer(t *testing.T) {
	if got := AmountForRole(Role("merchant")); got != 2500 {
		t.Fatalf("expected farmer fallback 2500, got %d", got)
	}
}

func TestBuyerPortalCheaperThanBuyer(t *testing.T) {
	if BuyerPortalAmount >= AmountForRole(RoleBuyer) {
		t.Fatalf("portal fee %d should be below buyer fee %d", BuyerPortalAmount, AmountForRole(RoleBuyer))
	}
}

func TestNotice(t *testing.T) {
	if got := Notice(RoleFarmer, "en"); !strings.Contains(got, "2,500 FRW") {
		t.Errorf("farmer notice missing amount: %q", got)
	}
	if got := Notice(RoleBuyer, "fr"); !strings.Contains(got, "1,500 FRW") {
		t.Errorf("buyer fr notice missing amount: %q", got)
	}
	if got := Notice(RoleTransporter, "rw"); !strings.Contains(got, "1,000 FRW") {
		t.Errorf("transporter rw notice missing amount: %q", got)
	}
	if got := Notice(RoleAdmin, "en"); !strings.Contains(got, "No payment required") {
		t.Errorf("admin notice should waive payment: %q", got)
	}
}

func TestNotice_Fallbacks(t *testing.T) {
	if got := Notice(Role("merchant"), "en"); got != Notice(RoleFarmer, "en") {
		t.Errorf("unknown role should use farmer notice, got %q", got)
	}
	if got := Notice(RoleFarmer, "sw"); got != Notice(RoleFarmer, "en") {
		t.Errorf("unknown language should fall back to English, got %q", got)
	}
}
