package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// JWTAccessGenerate signs AccessClaims for go-oauth2. The role is read from the
// users table at issue time, so a token never carries a role its owner lost.
type JWTAccessGenerate struct {
	key    []byte
	method jwt.SigningMethod
	db     *gorm.DB
}

func NewJWTAccessGenerate(key []byte, method jwt.SigningMethod, db *gorm.DB) *JWTAccessGenerate {
	return &JWTAccessGenerate{key: key, method: method, db: db}
}

// Token implements oauth2.AccessGenerate.
func (g *JWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	ti := data.TokenInfo

	// client_credentials has no resource owner; the client's owner stands in
	uid := data.UserID
	if uid == "" {
		uid = data.Client.GetUserID()
	}
	if uid == "" {
		return "", "", fmt.Errorf("client %s has no owner", data.Client.GetID())
	}

	role, err := g.ownerRole(ctx, uid)
	if err != nil {
		return "", "", err
	}

	claims := &AccessClaims{
		UID:   uid,
		Role:  role,
		Scope: ti.GetScope(),
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{data.Client.GetID()},
			IssuedAt:  jwt.NewNumericDate(ti.GetAccessCreateAt()),
			ExpiresAt: jwt.NewNumericDate(ti.GetAccessCreateAt().Add(ti.GetAccessExpiresIn())),
		},
	}
	access, err := jwt.NewWithClaims(g.method, claims).SignedString(g.key)
	if err != nil {
		return "", "", err
	}

	if !isGenRefresh {
		return access, "", nil
	}
	refresh, err := jwt.NewWithClaims(g.method, jwt.RegisteredClaims{
		ID:        access,
		ExpiresAt: jwt.NewNumericDate(ti.GetRefreshCreateAt().Add(ti.GetRefreshExpiresIn())),
	}).SignedString(g.key)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (g *JWTAccessGenerate) ownerRole(ctx context.Context, uid string) (string, error) {
	id, err := strconv.ParseUint(uid, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid owner id %q: %w", uid, err)
	}

	var user models.User
	if err := g.db.WithContext(ctx).Select("role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("owner %d not found", id)
		}
		return "", fmt.Errorf("looking up owner role: %w", err)
	}
	if user.Role == "" {
		return models.RoleUser, nil
	}
	return user.Role, nil
}
