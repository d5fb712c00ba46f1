package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT signing key, loaded from the environment in main.
var JwtKey = []byte("your_secret_key")

// Claims carries the authenticated user's id in the token, matching the
// `{id}` payload the clients were issued historically.
type Claims struct {
	UserID string `json:"id"`
	jwt.StandardClaims
}

// GenerateJWT mints a signed token for the given user id.
func GenerateJWT(userID string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}
