package jwt

import (
	"testing"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{ID: 42, Role: models.ROLE_ADMIN}
	token, expiresAt, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresAt <= time.Now().Unix() {
		t.Fatalf("expiresAt = %d, want in the future", expiresAt)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != models.ROLE_ADMIN {
		t.Fatalf("role = %q, want admin", claims.Role)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{ID: 42, Role: models.ROLE_USER}
	token, _, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, _, err := GenerateToken(&models.User{ID: 1}); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}
