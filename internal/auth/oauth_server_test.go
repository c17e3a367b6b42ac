package auth

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/database"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// createClient stores a user with role and a client owned by it.
func createClient(t *testing.T, db *gorm.DB, clientID, plainSecret, role string) *models.OAuthClient {
	user := &models.User{Email: clientID + "@pizza.com", Name: clientID, Role: role}
	require.NoError(t, db.Create(user).Error)

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(plainSecret), bcrypt.MinCost)
	require.NoError(t, err)

	client := &models.OAuthClient{
		ID:         clientID,
		Secret:     string(hashedSecret),
		Domain:     "http://localhost",
		Scopes:     "read write",
		UserID:     user.ID,
		GrantTypes: "client_credentials",
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func TestOAuthServerInitialization(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, testJWTSecret)
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
}

func TestJWTTokenGeneration(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)
	client := createClient(t, db, "test_client", "test_secret", models.RoleAdmin)

	tokenInfo, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "test_secret",
		Scope:        "read",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokenInfo.GetAccess())

	claims, err := ParseAccessToken(tokenInfo.GetAccess(), []byte(testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, client.GetUserID(), claims.UID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "read", claims.Scope)
	assert.Equal(t, jwt.ClaimStrings{"test_client"}, claims.Audience)

	parsed, _, err := jwt.NewParser().ParseUnverified(tokenInfo.GetAccess(), &AccessClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())

	_, err = ParseAccessToken(tokenInfo.GetAccess(), []byte("another-secret"))
	assert.Error(t, err)

	// The token is persisted by the GORM token store.
	stored, err := NewGormTokenStore(db).GetByAccess(context.Background(), tokenInfo.GetAccess())
	require.NoError(t, err)
	assert.Equal(t, "test_client", stored.GetClientID())
}

func TestJWTTokenGenerationRejectsWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)
	createClient(t, db, "test_client", "test_secret", models.RoleAdmin)

	_, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "wrong",
	})
	assert.Error(t, err)
}

func TestClientStoreIntegration(t *testing.T) {
	db := setupTestDB(t)
	createClient(t, db, "integration_test_client", "secret", models.RoleUser)

	clientStore := NewGormClientStore(db)
	retrieved, err := clientStore.GetByID(context.Background(), "integration_test_client")
	require.NoError(t, err)
	assert.Equal(t, "integration_test_client", retrieved.GetID())

	_, err = clientStore.GetByID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestTokenStoreHasNoAuthorizationCodes(t *testing.T) {
	store := NewGormTokenStore(setupTestDB(t))
	_, err := store.GetByCode(context.Background(), "anything")
	assert.Error(t, err)
	assert.NoError(t, store.RemoveByCode(context.Background(), "anything"))
}
