package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/config"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/database"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/events"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "main-test-secret"

func setupApp(t *testing.T) (*application, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	app := newApplication(db, events.NopPublisher{}, testJWTSecret)
	router := gin.New()
	app.setupRoutes(router)
	return app, router
}

// issueToken registers a client owned by a user with role and runs the client_credentials grant.
func issueToken(t *testing.T, app *application, router *gin.Engine, role string) string {
	users := services.NewUserService(app.db)
	user, _, err := users.GetOrCreateUser(role+"@example.com", role, role)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	clientID := role + "-client"
	require.NoError(t, services.NewClientService(app.db).CreateClient(&models.OAuthClient{
		ID:         clientID,
		Secret:     string(hash),
		Name:       clientID,
		UserID:     user.ID,
		GrantTypes: "client_credentials",
	}))

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {"s3cret"},
	}
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func call(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	_, router := setupApp(t)
	w := call(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	app, router := setupApp(t)

	w := call(router, http.MethodPost, "/api/v1/protected/admin/restaurants", "", `{"name":"Dino's"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userToken := issueToken(t, app, router, models.RoleUser)
	w = call(router, http.MethodPost, "/api/v1/protected/admin/restaurants", userToken, `{"name":"Dino's"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(router, http.MethodGet, "/api/v1/protected/clients", userToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuRoundTrip(t *testing.T) {
	app, router := setupApp(t)
	token := issueToken(t, app, router, models.RoleAdmin)

	w := call(router, http.MethodPost, "/api/v1/protected/admin/restaurants", token, `{"name":"Dino's","address":"1 Main St"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var restaurant models.RestaurantResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurant))

	w = call(router, http.MethodPost, "/api/v1/protected/admin/pizzas", token, `{"name":"Margherita","ingredients":"Dough, Tomato Sauce, Cheese"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pizza models.PizzaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pizza))

	body := fmt.Sprintf(`{"restaurant_id":%d,"pizza_id":%d,"price":12}`, restaurant.ID, pizza.ID)
	w = call(router, http.MethodPost, "/api/v1/protected/admin/restaurant_pizzas", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(router, http.MethodGet, fmt.Sprintf("/api/v1/public/restaurants/%d", restaurant.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurant))
	require.Len(t, restaurant.Pizzas, 1)
	assert.Equal(t, "Margherita", restaurant.Pizzas[0].Name)

	w = call(router, http.MethodDelete, fmt.Sprintf("/api/v1/protected/admin/pizzas/%d", pizza.ID), token, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = call(router, http.MethodGet, fmt.Sprintf("/api/v1/public/restaurants/%d", restaurant.ID), "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurant))
	assert.Empty(t, restaurant.Pizzas)
}

func TestSeedDatabaseOnce(t *testing.T) {
	app, router := setupApp(t)

	seedDatabase(app, &config.Config{})
	seedDatabase(app, &config.Config{})

	w := call(router, http.MethodGet, "/api/v1/public/restaurants", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var restaurants []models.RestaurantResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	assert.Len(t, restaurants, 3)
}
