package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("kofi_22", "knust", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Username != "kofi_22" || claims.School != "knust" {
		t.Errorf("claims = %s/%s, want kofi_22/knust", claims.Username, claims.School)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("kofi_22", "knust", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("expired token parsed without error")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("garbage token parsed without error")
	}
}
