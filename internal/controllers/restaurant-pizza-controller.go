package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RestaurantPizzaController handles the priced associations between restaurants and pizzas
type RestaurantPizzaController interface {
	GetAllRestaurantPizzas(c *gin.Context)
	GetRestaurantPizzaByID(c *gin.Context)
	CreateRestaurantPizza(c *gin.Context)
	UpdatePrice(c *gin.Context)
	DeleteRestaurantPizza(c *gin.Context)
}

type restaurantPizzaController struct {
	service services.RestaurantPizzaService
}

// RestaurantPizzaRequest is the body accepted when adding a pizza to a restaurant.
// Price accepts a JSON number or string.
type RestaurantPizzaRequest struct {
	RestaurantID uint             `json:"restaurant_id"`
	PizzaID      uint             `json:"pizza_id"`
	Price        *decimal.Decimal `json:"price" binding:"required" swaggertype:"number"`
}

// PriceRequest is the body accepted when repricing an association
type PriceRequest struct {
	Price *decimal.Decimal `json:"price" binding:"required" swaggertype:"number"`
}

// NewRestaurantPizzaController creates a new instance of RestaurantPizzaController
func NewRestaurantPizzaController(service services.RestaurantPizzaService) RestaurantPizzaController {
	return &restaurantPizzaController{service: service}
}

// GetAllRestaurantPizzas godoc
// @Summary List restaurant pizza associations
// @Tags restaurant_pizzas
// @Produce json
// @Success 200 {array} models.RestaurantPizzaResponse
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/restaurant_pizzas [get]
func (c *restaurantPizzaController) GetAllRestaurantPizzas(ctx *gin.Context) {
	rps, err := c.service.GetAllRestaurantPizzas()
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, models.SerializeRestaurantPizzas(rps))
}

// GetRestaurantPizzaByID godoc
// @Summary Get a restaurant pizza association
// @Tags restaurant_pizzas
// @Produce json
// @Param id path int true "RestaurantPizza ID"
// @Success 200 {object} models.RestaurantPizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurant_pizzas/{id} [get]
func (c *restaurantPizzaController) GetRestaurantPizzaByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "restaurant pizza")
	if !ok {
		return
	}

	rp, err := c.service.GetRestaurantPizzaByID(id)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, models.SerializeRestaurantPizza(rp))
}

// CreateRestaurantPizza godoc
// @Summary Add a pizza to a restaurant
// @Description Price must be a whole number between 1 and 30. Both parents must exist.
// @Tags restaurant_pizzas
// @Accept json
// @Produce json
// @Param restaurant_pizza body RestaurantPizzaRequest true "Association"
// @Success 201 {object} models.RestaurantPizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurant_pizzas [post]
func (c *restaurantPizzaController) CreateRestaurantPizza(ctx *gin.Context) {
	var req RestaurantPizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	rp, err := c.service.CreateRestaurantPizza(req.RestaurantID, req.PizzaID, *req.Price)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusCreated, models.SerializeRestaurantPizza(rp))
}

// UpdatePrice godoc
// @Summary Change the price of an association
// @Tags restaurant_pizzas
// @Accept json
// @Produce json
// @Param id path int true "RestaurantPizza ID"
// @Param price body PriceRequest true "New price"
// @Success 200 {object} models.RestaurantPizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurant_pizzas/{id} [put]
func (c *restaurantPizzaController) UpdatePrice(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "restaurant pizza")
	if !ok {
		return
	}

	var req PriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	rp, err := c.service.UpdatePrice(id, *req.Price)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, models.SerializeRestaurantPizza(rp))
}

// DeleteRestaurantPizza godoc
// @Summary Remove a pizza from a restaurant
// @Tags restaurant_pizzas
// @Param id path int true "RestaurantPizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurant_pizzas/{id} [delete]
func (c *restaurantPizzaController) DeleteRestaurantPizza(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "restaurant pizza")
	if !ok {
		return
	}

	if err := c.service.DeleteRestaurantPizza(id); err != nil {
		respondWithError(ctx, err, models.ErrRestaurantPizzaNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}
