package utils

import (
	"testing"

	"github.com/Kamaljaya32/Laundry/internal/config"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/google/uuid"
)

func TestPasswordHashing(t *testing.T) {
	password := "rahasia123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == password {
		t.Error("Hash should not equal the plain password")
	}

	if !CheckPasswordHash(password, hash) {
		t.Error("Correct password rejected")
	}
	if CheckPasswordHash("salah", hash) {
		t.Error("Wrong password accepted")
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	user := &models.User{
		ID:    uuid.NewString(),
		Email: "owner@laundry.test",
		Name:  "Ifa",
	}

	access, refresh, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("Expected both tokens to be generated")
	}

	claims, err := ValidateToken(access, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Access token did not validate: %v", err)
	}
	if claims["id"] != user.ID {
		t.Errorf("Expected id claim %s, got %v", user.ID, claims["id"])
	}
	if claims["email"] != user.Email {
		t.Errorf("Expected email claim %s, got %v", user.Email, claims["email"])
	}
	if IsRefreshToken(claims) {
		t.Error("Access token misidentified as refresh token")
	}

	refreshClaims, err := ValidateToken(refresh, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Refresh token did not validate: %v", err)
	}
	if !IsRefreshToken(refreshClaims) {
		t.Error("Refresh token not identified by its type claim")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "correct-secret"}
	user := &models.User{ID: uuid.NewString(), Email: "a@b.c", Name: "A"}

	access, _, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}

	if _, err := ValidateToken(access, "other-secret"); err == nil {
		t.Error("Token signed with a different secret should not validate")
	}
	if _, err := ValidateToken("not-a-token", cfg.JWTSecret); err == nil {
		t.Error("Garbage token should not validate")
	}
}
