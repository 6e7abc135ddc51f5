package utils

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(JWTClaim{
		ID:    "64f0c2a1b3d4e5f6a7b8c9d0",
		Email: "admin@example.com",
		Role:  "ADMIN",
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("expected email to survive the round trip, got %q", claims.Email)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("expected role to survive the round trip, got %q", claims.Role)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("expected expiry after issue time")
	}
}

func TestTokenCarriesStaffFields(t *testing.T) {
	token, err := GenerateToken(JWTClaim{
		ID:          "64f0c2a1b3d4e5f6a7b8c9d1",
		Email:       "cashier@example.com",
		Role:        "STAFF",
		StaffID:     "64f0c2a1b3d4e5f6a7b8c9d2",
		Department:  "Sales",
		Designation: "Cashier",
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.Department != "Sales" || claims.Designation != "Cashier" {
		t.Errorf("staff fields lost: %+v", claims)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(JWTClaim{ID: "x", Email: "a@b.c", Role: "STAFF"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
