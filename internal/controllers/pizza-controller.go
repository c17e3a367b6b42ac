package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(c *gin.Context)
	// GetRestaurantsForPizza lists the restaurants serving a pizza
	GetRestaurantsForPizza(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza and its associations
	DeletePizza(c *gin.Context)
}

type pizzaController struct {
	service     services.PizzaService
	menuService services.RestaurantPizzaService
}

// PizzaRequest is the body accepted when creating or updating a pizza.
// Name must be present but may be empty.
type PizzaRequest struct {
	Name        *string `json:"name"`
	Ingredients string  `json:"ingredients"`
	Image       string  `json:"image"`
}

// bindPizzaRequest decodes the body and requires the name key, writing a 400 response otherwise.
func bindPizzaRequest(ctx *gin.Context) (PizzaRequest, bool) {
	var req PizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return req, false
	}
	if req.Name == nil {
		respondInvalidBody(ctx, errors.New("name is required"))
		return req, false
	}
	return req, true
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService, menuService services.RestaurantPizzaService) PizzaController {
	return &pizzaController{service: service, menuService: menuService}
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get a list of all pizzas with optional filtering
// @Tags pizzas
// @Accept json
// @Produce json
// @Param name query string false "Filter by pizza name (partial match)"
// @Success 200 {array} models.PizzaResponse
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/pizzas [get]
func (c *pizzaController) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(ctx.Query("name"))
	if err != nil {
		respondWithError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, models.SerializePizzas(pizzas))
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza by its ID
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id} [get]
func (c *pizzaController) GetPizzaByID(ctx *gin.Context) {
	pizzaID, ok := parseID(ctx, "id", "pizza")
	if !ok {
		return
	}

	pizza, err := c.service.GetPizzaByID(pizzaID)
	if err != nil {
		respondWithError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, models.SerializePizza(pizza))
}

// GetRestaurantsForPizza godoc
// @Summary List restaurants serving a pizza
// @Description Restaurants reachable through the pizza's price associations
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {array} models.RestaurantSummary
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id}/restaurants [get]
func (c *pizzaController) GetRestaurantsForPizza(ctx *gin.Context) {
	pizzaID, ok := parseID(ctx, "id", "pizza")
	if !ok {
		return
	}

	if _, err := c.service.GetPizzaByID(pizzaID); err != nil {
		respondWithError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	restaurants, err := c.menuService.RestaurantsFor(pizzaID)
	if err != nil {
		respondWithError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, models.SummarizeRestaurants(restaurants))
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza. Names longer than 50 characters are rejected.
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body PizzaRequest true "Pizza object"
// @Success 201 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas [post]
func (c *pizzaController) CreatePizza(ctx *gin.Context) {
	req, ok := bindPizzaRequest(ctx)
	if !ok {
		return
	}

	pizza, err := c.service.CreatePizza(*req.Name, req.Ingredients, req.Image)
	if err != nil {
		respondWithError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusCreated, models.SerializePizza(pizza))
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Update a pizza with the input payload
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param pizza body PizzaRequest true "Pizza object"
// @Success 200 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id} [put]
func (c *pizzaController) UpdatePizza(ctx *gin.Context) {
	pizzaID, ok := parseID(ctx, "id", "pizza")
	if !ok {
		return
	}

	req, ok := bindPizzaRequest(ctx)
	if !ok {
		return
	}

	updated, err := c.service.UpdatePizza(models.Pizza{
		ID:          pizzaID,
		Name:        *req.Name,
		Ingredients: req.Ingredients,
		Image:       req.Image,
	})
	if err != nil {
		respondWithError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, models.SerializePizza(updated))
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its ID together with its restaurant associations
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id} [delete]
func (c *pizzaController) DeletePizza(ctx *gin.Context) {
	pizzaID, ok := parseID(ctx, "id", "pizza")
	if !ok {
		return
	}

	if err := c.service.DeletePizza(pizzaID); err != nil {
		respondWithError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}
