package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT claims structure issued by the identity
// provider. DictRole carries the dictionary role assigned at signup or by
// an admin; an empty value means plain USER.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Name                 string `json:"name"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	DictRole             string `json:"dict_role"`
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// GetDictRole maps the dict_role claim onto the role ladder, defaulting
// unknown or missing values to USER.
func (c *AccessClaims) GetDictRole() Role {
	role := Role(c.DictRole)
	if !role.Valid() {
		return RoleUser
	}
	return role
}
