// Package auth issues and validates the HS256 JWTs handed to clients on
// login and signup.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/krishimitre/krishimitre/internal/common"
)

// Claims carries the registered claims plus the authenticated farmer's ID.
type Claims struct {
	jwt.RegisteredClaims
	FarmerID string
}

func GenerateToken(farmerID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		FarmerID: farmerID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetFarmerIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.FarmerID, nil
}
