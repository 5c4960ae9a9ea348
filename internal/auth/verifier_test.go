package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/voyatalk/voyatalk/internal/domain"
)

func newTestVerifier() *Verifier {
	return NewVerifier("test-secret", time.Hour, "token")
}

func TestIssueAndVerify(t *testing.T) {
	v := newTestVerifier()

	token, err := v.Issue(domain.Identity{UserID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != "u1" || identity.Username != "alice" {
		t.Errorf("got identity %+v, want u1/alice", identity)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	v := newTestVerifier()

	token, err := v.Issue(domain.Identity{UserID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"tampered", token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(tt.token); err == nil {
				t.Errorf("Verify(%q) succeeded, want error", tt.token)
			}
		})
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	other := NewVerifier("other-secret", time.Hour, "token")
	token, err := other.Issue(domain.Identity{UserID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := newTestVerifier().Verify(token); err == nil {
		t.Error("token signed with a different secret verified")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewVerifier("test-secret", -time.Minute, "token")
	token, err := v.Issue(domain.Identity{UserID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := v.Verify(token); err == nil {
		t.Error("expired token verified")
	}
}

func TestExtractToken(t *testing.T) {
	v := newTestVerifier()

	r, _ := http.NewRequest(http.MethodGet, "/ws", nil)
	if _, ok := v.ExtractToken(r); ok {
		t.Error("extracted token from request without cookie")
	}

	r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
	token, ok := v.ExtractToken(r)
	if !ok || token != "abc" {
		t.Errorf("got (%q, %v), want (abc, true)", token, ok)
	}
}
