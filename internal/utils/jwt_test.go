package utils

import (
	"strings"
	"testing"
	"time"
)

func init() {
	SetJWTSecret("projecthub-unit-test-secret")
}

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		userID   uint
		username string
		role     string
	}{
		{"regular user", 7, "alice", "user"},
		{"admin", 1, "site-admin", "admin"},
		{"high id", 90210, "bob", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.username, tt.role, 24)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if strings.Count(token, ".") != 2 {
				t.Fatalf("token is not in header.payload.signature form: %q", token)
			}

			claims, err := ParseToken(token)
			if err != nil {
				t.Fatalf("ParseToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("UserID = %d, want %d", claims.UserID, tt.userID)
			}
			if claims.Username != tt.username {
				t.Errorf("Username = %q, want %q", claims.Username, tt.username)
			}
			if claims.Role != tt.role {
				t.Errorf("Role = %q, want %q", claims.Role, tt.role)
			}
		})
	}
}

func TestGenerateToken_DistinctPerUser(t *testing.T) {
	a, err := GenerateToken(1, "alice", "user", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	b, err := GenerateToken(2, "bob", "user", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if a == b {
		t.Error("tokens for different users should differ")
	}
}

func TestParseToken_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"wrong segment count", "only.two"},
		{"tampered signature", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.bogus.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token); err == nil {
				t.Errorf("ParseToken(%q) should fail", tt.token)
			}
		})
	}
}

func TestParseToken_SecretRotation(t *testing.T) {
	SetJWTSecret("before-rotation")
	token, err := GenerateToken(3, "carol", "user", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	SetJWTSecret("after-rotation")
	_, parseErr := ParseToken(token)

	SetJWTSecret("projecthub-unit-test-secret")

	if parseErr == nil {
		t.Error("token signed under the old secret should no longer parse")
	}
}

func TestGenerateToken_ExpiryHorizon(t *testing.T) {
	token, err := GenerateToken(4, "dave", "user", 2)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	want := time.Now().Add(2 * time.Hour)
	got := claims.ExpiresAt.Time
	if got.Before(time.Now()) {
		t.Error("freshly issued token must not be expired")
	}
	if d := got.Sub(want); d < -time.Minute || d > time.Minute {
		t.Errorf("expiry off by %v from the requested horizon", d)
	}
	if claims.IssuedAt == nil {
		t.Error("IssuedAt claim should be set")
	}
}
