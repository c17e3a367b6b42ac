package middleware

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/auth"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/gin-gonic/gin"
)

// Context keys set by OAuth2Auth.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClientID = "clientID"
	ContextScopes   = "scopes"
)

// OAuth2Auth accepts requests carrying a Bearer access token from /oauth/token
// and exposes its claims under the Context* keys.
func OAuth2Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := auth.ParseAccessToken(tokenString, jwtSecret)
		if err != nil {
			respondWithOAuth2Error(c, http.StatusUnauthorized, models.ErrInvalidToken, err.Error())
			return
		}

		// Validate already checked the uid
		userID, _ := claims.UserID()
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)
		if len(claims.Audience) > 0 {
			c.Set(ContextClientID, claims.Audience[0])
		}
		if claims.Scope != "" {
			c.Set(ContextScopes, claims.Scope)
		}

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, aborting with
// an RFC 6750 error when it is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
		respondWithOAuth2Error(c, http.StatusUnauthorized, "authorization_required",
			"Missing Authorization header. A valid Bearer token is required.")
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		respondWithOAuth2Error(c, http.StatusUnauthorized, models.ErrInvalidRequest,
			"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		respondWithOAuth2Error(c, http.StatusUnauthorized, models.ErrInvalidToken, "Bearer token is empty")
		return "", false
	}
	return token, true
}

func respondWithOAuth2Error(c *gin.Context, status int, errorCode, description string) {
	c.AbortWithStatusJSON(status, models.NewOAuth2Error(errorCode, description))
}
