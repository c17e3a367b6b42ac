package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
)

// RestaurantController handles HTTP requests related to restaurants
type RestaurantController interface {
	GetAllRestaurants(c *gin.Context)
	GetRestaurantByID(c *gin.Context)
	// GetPizzasForRestaurant lists the menu of one restaurant with prices
	GetPizzasForRestaurant(c *gin.Context)
	CreateRestaurant(c *gin.Context)
	UpdateRestaurant(c *gin.Context)
	// DeleteRestaurant deletes a restaurant and its associations
	DeleteRestaurant(c *gin.Context)
}

type restaurantController struct {
	service     services.RestaurantService
	menuService services.RestaurantPizzaService
}

// RestaurantRequest is the body accepted when creating or updating a restaurant
type RestaurantRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// MenuEntry is one priced pizza on a restaurant's menu
type MenuEntry struct {
	RestaurantPizzaID uint                `json:"restaurant_pizza_id"`
	Price             string              `json:"price"`
	Pizza             models.PizzaSummary `json:"pizza"`
}

// NewRestaurantController creates a new instance of RestaurantController
func NewRestaurantController(service services.RestaurantService, menuService services.RestaurantPizzaService) RestaurantController {
	return &restaurantController{service: service, menuService: menuService}
}

func (c *restaurantController) serialize(restaurant models.Restaurant) (models.RestaurantResponse, error) {
	pizzas, err := c.menuService.PizzasFor(restaurant.ID)
	if err != nil {
		return models.RestaurantResponse{}, err
	}
	return models.SerializeRestaurant(restaurant, pizzas), nil
}

// GetAllRestaurants godoc
// @Summary Get all restaurants
// @Description Get every restaurant with the pizzas it serves
// @Tags restaurants
// @Produce json
// @Param name query string false "Filter by restaurant name (partial match)"
// @Success 200 {array} models.RestaurantResponse
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/restaurants [get]
func (c *restaurantController) GetAllRestaurants(ctx *gin.Context) {
	restaurants, err := c.service.GetAllRestaurants(ctx.Query("name"))
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}

	out := make([]models.RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		resp, err := c.serialize(r)
		if err != nil {
			respondWithError(ctx, err, models.ErrRestaurantNotFound)
			return
		}
		out = append(out, resp)
	}
	ctx.JSON(http.StatusOK, out)
}

// GetRestaurantByID godoc
// @Summary Get restaurant by ID
// @Description Get a single restaurant with the pizzas it serves
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.RestaurantResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurants/{id} [get]
func (c *restaurantController) GetRestaurantByID(ctx *gin.Context) {
	restaurantID, ok := parseID(ctx, "id", "restaurant")
	if !ok {
		return
	}

	restaurant, err := c.service.GetRestaurantByID(restaurantID)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	resp, err := c.serialize(restaurant)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetPizzasForRestaurant godoc
// @Summary Get a restaurant's menu
// @Description List the pizzas a restaurant serves together with their prices
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {array} MenuEntry
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurants/{id}/pizzas [get]
func (c *restaurantController) GetPizzasForRestaurant(ctx *gin.Context) {
	restaurantID, ok := parseID(ctx, "id", "restaurant")
	if !ok {
		return
	}

	if _, err := c.service.GetRestaurantByID(restaurantID); err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	associations, err := c.menuService.AssociationsFor(restaurantID)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	pizzas, err := c.menuService.PizzasFor(restaurantID)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}

	byID := make(map[uint]models.Pizza, len(pizzas))
	for _, p := range pizzas {
		byID[p.ID] = p
	}
	menu := make([]MenuEntry, 0, len(associations))
	for _, rp := range associations {
		p := byID[rp.PizzaID]
		menu = append(menu, MenuEntry{
			RestaurantPizzaID: rp.ID,
			Price:             rp.Price.StringFixed(2),
			Pizza: models.PizzaSummary{
				ID:          p.ID,
				Name:        p.Name,
				Ingredients: p.Ingredients,
				Image:       p.Image,
			},
		})
	}
	ctx.JSON(http.StatusOK, menu)
}

// CreateRestaurant godoc
// @Summary Create a new restaurant
// @Description Create a restaurant. Names must be unique.
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurant body RestaurantRequest true "Restaurant object"
// @Success 201 {object} models.RestaurantResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurants [post]
func (c *restaurantController) CreateRestaurant(ctx *gin.Context) {
	var req RestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	restaurant, err := c.service.CreateRestaurant(req.Name, req.Address)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	ctx.JSON(http.StatusCreated, models.SerializeRestaurant(restaurant, nil))
}

// UpdateRestaurant godoc
// @Summary Update a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param restaurant body RestaurantRequest true "Restaurant object"
// @Success 200 {object} models.RestaurantResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurants/{id} [put]
func (c *restaurantController) UpdateRestaurant(ctx *gin.Context) {
	restaurantID, ok := parseID(ctx, "id", "restaurant")
	if !ok {
		return
	}

	var req RestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	updated, err := c.service.UpdateRestaurant(models.Restaurant{ID: restaurantID, Name: req.Name, Address: req.Address})
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	resp, err := c.serialize(updated)
	if err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Description Delete a restaurant together with its pizza associations
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurants/{id} [delete]
func (c *restaurantController) DeleteRestaurant(ctx *gin.Context) {
	restaurantID, ok := parseID(ctx, "id", "restaurant")
	if !ok {
		return
	}

	if err := c.service.DeleteRestaurant(restaurantID); err != nil {
		respondWithError(ctx, err, models.ErrRestaurantNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}
