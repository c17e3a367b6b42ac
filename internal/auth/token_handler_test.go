package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTokenRouter(t *testing.T) (*gin.Engine, *OAuthService) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)
	createClient(t, db, "test_client_id", "test_secret", models.RoleAdmin)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)
	return router, oauthService
}

func postToken(router *gin.Engine, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClientCredentialsFlow(t *testing.T) {
	router, _ := setupTokenRouter(t)

	w := postToken(router, "grant_type=client_credentials&client_id=test_client_id&client_secret=test_secret&scope=read")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Bearer", response["token_type"])

	accessToken := response["access_token"].(string)
	assert.Equal(t, 2, strings.Count(accessToken, "."), "access token should be a JWT")
}

func TestClientCredentialsInvalidSecret(t *testing.T) {
	router, _ := setupTokenRouter(t)

	w := postToken(router, "grant_type=client_credentials&client_id=test_client_id&client_secret=wrong_secret")
	assert.GreaterOrEqual(t, w.Code, 400)
}

func TestUnsupportedGrantType(t *testing.T) {
	router, _ := setupTokenRouter(t)

	w := postToken(router, "grant_type=password&client_id=test_client_id&client_secret=test_secret&username=a&password=b")
	assert.GreaterOrEqual(t, w.Code, 400)
}
