package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	farmerID := "farmer-123"

	tok, err := GenerateToken(farmerID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetFarmerIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetFarmerIDFromToken error: %v", err)
	}
	if got != farmerID {
		t.Fatalf("farmerID mismatch: got %q want %q", got, farmerID)
	}
}

func TestGetFarmerIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("f1", []byte("secret"), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err = GetFarmerIDFromToken(tok, []byte("secret")); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestGetFarmerIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("f2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err = GetFarmerIDFromToken(tok, []byte("wrong-secret")); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestGetFarmerIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := GetFarmerIDFromToken("not.a.jwt", []byte("k")); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
