package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload of every access token issued by /oauth/token.
// UID is the id of the user owning the client, as a decimal string.
type AccessClaims struct {
	UID   string `json:"uid"`
	Role  string `json:"role"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns UID as a number. Zero and non-numeric values are rejected.
func (c *AccessClaims) UserID() (uint, error) {
	if c.UID == "" {
		return 0, errors.New("token missing required 'uid' claim")
	}
	id, err := strconv.ParseUint(c.UID, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid uid claim %q", c.UID)
	}
	return uint(id), nil
}

// Validate is called by the jwt parser after the registered claims pass.
func (c *AccessClaims) Validate() error {
	if _, err := c.UserID(); err != nil {
		return err
	}
	switch c.Role {
	case models.RoleAdmin, models.RoleUser:
		return nil
	case "":
		return errors.New("token missing required 'role' claim")
	default:
		return fmt.Errorf("invalid role '%s'. Allowed roles: admin, user", c.Role)
	}
}

// ParseAccessToken verifies an HMAC signed access token and its claims.
func ParseAccessToken(tokenString string, secret []byte) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
