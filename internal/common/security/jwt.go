package security

import (
	"errors"
	"time"

	"staynest/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

// ErrInvalidToken covers signature mismatch, structural corruption and
// staleness. Callers must never trust a token that yields it.
var ErrInvalidToken = errors.New("invalid or expired session token")

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a signed session token bound to the server secret.
// The payload carries the identity plus a freshness window.
func GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(config.AppConfig.JWTExp).Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken is a pure function of (token, secret): it either returns the
// embedded claims or ErrInvalidToken. Partial trust is never an outcome.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil || token == nil {
		return nil, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	if v, ok := token.Get("user_id"); ok {
		claims["user_id"] = v
	}
	if v, ok := token.Get("email"); ok {
		claims["email"] = v
	}

	if _, err := GetUserIDFromClaims(claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Helper functions to extract claims, used by middleware and handlers
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}
