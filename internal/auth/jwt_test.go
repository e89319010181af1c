package auth

import (
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/internhub-dev/internhub/internal/types"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	if err := InitJWTSecret(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	tokenString, err := GenerateJWT(42, "intern@school.test", types.RoleIntern)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	token, err := VerifyJWT(tokenString)
	if err != nil {
		t.Fatalf("VerifyJWT failed: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}

	if userID, _ := claims["user_id"].(float64); uint(userID) != 42 {
		t.Errorf("expected user_id 42, got %v", claims["user_id"])
	}
	if role, _ := claims["role"].(string); role != "INTERN" {
		t.Errorf("expected role INTERN, got %v", claims["role"])
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	if _, err := VerifyJWT("not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
	signed, err := other.SignedString([]byte("a-different-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := VerifyJWT(signed); err == nil {
		t.Error("expected an error for a token signed with another secret")
	}
}
