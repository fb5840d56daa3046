package middleware

import (
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("u123")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u123" {
		t.Errorf("userId = %q, want u123", claims.UserID)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < TokenTTL-time.Minute || remaining > TokenTTL {
		t.Errorf("token expiry %v away, want about %v", remaining, TokenTTL)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseToken(bad); err == nil {
			t.Errorf("ParseToken(%q) succeeded, want error", bad)
		}
	}
}

func TestSessionSuperseded(t *testing.T) {
	cases := []struct {
		stored, presented string
		want              bool
	}{
		{"", "tok-a", false},      // no cached session, stay valid
		{"tok-a", "tok-a", false}, // presented token is the active one
		{"tok-b", "tok-a", true},  // a newer login replaced it
	}
	for _, c := range cases {
		if got := sessionSuperseded(c.stored, c.presented); got != c.want {
			t.Errorf("sessionSuperseded(%q, %q) = %v, want %v", c.stored, c.presented, got, c.want)
		}
	}
}

func TestRevocationKey(t *testing.T) {
	if RevocationKey("tok-a") != "revoked:tok-a" {
		t.Errorf("key = %q", RevocationKey("tok-a"))
	}
	if RevocationKey("tok-a") == RevocationKey("tok-b") {
		t.Error("distinct tokens must not share a revocation key")
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	token, err := IssueToken("u123")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); err == nil {
		t.Error("tampered token parsed, want error")
	}
}
