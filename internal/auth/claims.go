package auth

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT claims structure issued by the identity provider.
// org_id scopes every request to a single tenant.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	OrgID                string `json:"org_id"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}
