package auth

import "github.com/golang-jwt/jwt/v5"

// Claims represents JWT token claims; sub carries the username
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the subject claim
func (c *Claims) Username() string {
	return c.Subject
}
