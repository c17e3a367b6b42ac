package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func accessClaims(uid, role string, expiresIn time.Duration) *AccessClaims {
	now := time.Now()
	return &AccessClaims{
		UID:  uid,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
}

func TestParseAccessToken(t *testing.T) {
	secret := []byte(testJWTSecret)

	testCases := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid", token: sign(t, jwt.SigningMethodHS512, secret, accessClaims("3", "admin", time.Hour))},
		{name: "expired", token: sign(t, jwt.SigningMethodHS512, secret, accessClaims("3", "admin", -time.Minute)), wantErr: true},
		{name: "no uid", token: sign(t, jwt.SigningMethodHS512, secret, accessClaims("", "admin", time.Hour)), wantErr: true},
		{name: "zero uid", token: sign(t, jwt.SigningMethodHS512, secret, accessClaims("0", "admin", time.Hour)), wantErr: true},
		{name: "unknown role", token: sign(t, jwt.SigningMethodHS512, secret, accessClaims("3", "root", time.Hour)), wantErr: true},
		{name: "wrong key", token: sign(t, jwt.SigningMethodHS512, []byte("other"), accessClaims("3", "admin", time.Hour)), wantErr: true},
		{name: "unsigned", token: sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, accessClaims("3", "admin", time.Hour)), wantErr: true},
		{name: "missing exp", token: sign(t, jwt.SigningMethodHS256, secret, &AccessClaims{UID: "3", Role: "user"}), wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseAccessToken(tt.token, secret)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			id, err := claims.UserID()
			require.NoError(t, err)
			assert.Equal(t, uint(3), id)
		})
	}
}
