package util

import (
	"fmt"
	"strconv"
	"time"

	"github.com/1Garv23/share-smote/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued session token stays usable.
const TokenValidity = 7 * 24 * time.Hour

// JwtCustomClaims carries the account id and nothing else.
type JwtCustomClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// CreateAccessToken signs a bearer token for the user, valid for seven days.
func CreateAccessToken(user *models.User, secret string) (string, error) {
	userIDStr := strconv.FormatUint(uint64(user.ID), 10)

	claims := &JwtCustomClaims{
		ID: userIDStr,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return t, nil
}

// IsAuthorized reports whether the token is validly signed and unexpired.
func IsAuthorized(requestToken string, secret string) (bool, error) {
	_, err := jwt.Parse(requestToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExtractIDFromToken returns the account id embedded in a valid token.
func ExtractIDFromToken(requestToken string, secret string) (string, error) {
	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(requestToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.ID, nil
}
