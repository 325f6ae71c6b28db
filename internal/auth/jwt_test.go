package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, issuer, userID, role string, expiry time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	return token
}

func TestParseToken(t *testing.T) {
	token := signToken(t, "secret", "issuer", "user-1", "student", time.Hour)
	claims, err := ParseToken("secret", "issuer", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token := signToken(t, "secret", "issuer", "user-1", "student", time.Hour)
	if _, err := ParseToken("other", "issuer", token); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	token := signToken(t, "secret", "someone-else", "user-1", "student", time.Hour)
	if _, err := ParseToken("secret", "issuer", token); err == nil {
		t.Fatalf("expected issuer mismatch")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token := signToken(t, "secret", "issuer", "user-1", "student", -time.Minute)
	if _, err := ParseToken("secret", "issuer", token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "issuer"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseToken("secret", "issuer", token); err == nil {
		t.Fatalf("expected alg none to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CheckPassword(hash, "secret-password"); err != nil {
		t.Fatalf("expected password to match")
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected password mismatch")
	}
}
