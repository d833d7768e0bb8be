package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"agriconnect/backend"
)

func TestSessionStore_SetNotifiesSubscribers(t *testing.T) {
	store := NewSessionStore()

	var seen []*backend.Session
	unsubscribe := store.Subscribe(func(s *backend.Session) {
		seen = append(seen, s)
	})
	defer unsubscribe()

	session := &backend.Session{AccessToken: "tok-1"}
	store.Set(session)

	if got := store.Get(); got != session {
		t.Fatalf("expected stored session, got %+v", got)
	}
	if len(seen) != 1 || seen[0] != session {
		t.Fatalf("expected one notification with the session, got %v", seen)
	}

	store.Clear()
	if store.Get() != nil {
		t.Fatal("expected nil session after clear")
	}
	if len(seen) != 2 || seen[1] != nil {
		t.Fatalf("expected nil notification on clear, got %v", seen)
	}
}

func TestSessionStore_Unsubscribe(t *testing.T) {
	store := NewSessionStore()

	calls := 0
	unsubscribe := store.Subscribe(func(*backend.Session) { calls++ })

	store.Set(&backend.Session{AccessToken: "a"})
	unsubscribe()
	store.Set(&backend.Session{AccessToken: "b"})

	if calls != 1 {
		t.Fatalf("expected one call before unsubscribe, got %d", calls)
	}
}

func signedToken(t *testing.T, metadata map[string]any) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           "user-1",
		"user_metadata": metadata,
		"exp":           time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRoleFromSession_TokenClaimWins(t *testing.T) {
	session := &backend.Session{
		AccessToken: signedToken(t, map[string]any{"userType": "transporter"}),
		User: backend.SessionUser{
			Metadata: backend.UserMetadata{UserType: "buyer"},
		},
	}
	if got := RoleFromSession(session); got != RoleTransporter {
		t.Fatalf("expected transporter from token claim, got %s", got)
	}
}

func TestRoleFromSession_MetadataFallback(t *testing.T) {
	session := &backend.Session{
		AccessToken: "not-a-jwt",
		User: backend.SessionUser{
			Metadata: backend.UserMetadata{UserType: "admin"},
		},
	}
	if got := RoleFromSession(session); got != RoleAdmin {
		t.Fatalf("expected admin from metadata, got %s", got)
	}
}

func TestRoleFromSession_DefaultsToFarmer(t *testing.T) {
	if got := RoleFromSession(nil); got != RoleFarmer {
		t.Fatalf("expected farmer for nil session, got %s", got)
	}

	session := &backend.Session{
		AccessToken: signedToken(t, map[string]any{"userType": "merchant"}),
	}
	if got := RoleFromSession(session); got != RoleFarmer {
		t.Fatalf("expected farmer for unknown role claim, got %s", got)
	}

	session = &backend.Session{AccessToken: "garbage"}
	if got := RoleFromSession(session); got != RoleFarmer {
		t.Fatalf("expected farmer for undecodable token, got %s", got)
	}
}
