package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	signed, err := iss.Issue("drsmith", []string{"VET"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := iss.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "drsmith" {
		t.Fatalf("subject = %q, want drsmith", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "VET" {
		t.Fatalf("roles = %v, want [VET]", claims.Roles)
	}
}

func TestValidate_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)

	signed, err := iss.Issue("drsmith", []string{"VET"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	iss.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := iss.Validate(signed); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret-a", time.Hour).Issue("drsmith", []string{"VET"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Validate(signed); err != ErrBadSignature {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestValidate_TamperedPayload(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	signed, err := iss.Issue("drsmith", []string{"USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Swap the role inside the payload without re-signing.
	parts := strings.Split(signed, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	body["roles"] = []string{"ADMIN"}
	forged, _ := json.Marshal(body)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	if _, err := iss.Validate(strings.Join(parts, ".")); err != ErrBadSignature {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	if _, err := iss.Validate("not-a-token"); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
