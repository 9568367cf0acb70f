package utils

import (
	"strconv"
	"testing"
	"time"
)

func TestNewReservationID_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		id, err := NewReservationID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if len(id) != 13 {
			t.Fatalf("expected 13 digits, got %q", id)
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			t.Fatalf("parse %q: %v", id, err)
		}
		if n < reservationIDMin || n >= reservationIDMax {
			t.Fatalf("id %d out of range", n)
		}
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cases := []struct {
		name   string
		stored string
		plain  string
		want   bool
	}{
		{"bcrypt match", hash, "s3cret", true},
		{"bcrypt mismatch", hash, "nope", false},
		{"legacy plaintext match", "admin123", "admin123", true},
		{"legacy plaintext mismatch", "admin123", "admin124", false},
		{"empty stored", "", "x", false},
	}
	for _, tc := range cases {
		if got := VerifyPassword(tc.stored, tc.plain); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "alice", RoleAdmin, 5)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !tok.Exp.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", tok.Exp)
	}
	claims, err := ParseAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims["sub"] != "alice" || claims["role"] != RoleAdmin {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if _, err := ParseAccessToken("other", tok.Token); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestNewAccessToken_EmptySecret(t *testing.T) {
	if _, err := NewAccessToken("", "alice", RoleAdmin, 5); err == nil {
		t.Fatalf("expected error")
	}
}
