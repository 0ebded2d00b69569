package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims are the claims read from identity provider tokens.
// The user id is the registered subject claim.
type CustomClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// UserID returns the owner id carried by the token
func (c *CustomClaims) UserID() string {
	return c.Subject
}
