package services

import (
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/events"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RestaurantPizzaService manages the priced associations between restaurants and pizzas
type RestaurantPizzaService interface {
	// GetAllRestaurantPizzas retrieves every association
	GetAllRestaurantPizzas() ([]models.RestaurantPizza, error)
	// GetRestaurantPizzaByID retrieves an association by its ID
	GetRestaurantPizzaByID(id uint) (models.RestaurantPizza, error)
	// CreateRestaurantPizza offers a pizza at a restaurant for a price
	CreateRestaurantPizza(restaurantID, pizzaID uint, price decimal.Decimal) (models.RestaurantPizza, error)
	// UpdatePrice changes the price of an existing association
	UpdatePrice(id uint, price decimal.Decimal) (models.RestaurantPizza, error)
	// DeleteRestaurantPizza removes a single association
	DeleteRestaurantPizza(id uint) error
	// AssociationsFor lists the association rows of a restaurant
	AssociationsFor(restaurantID uint) ([]models.RestaurantPizza, error)
	// PizzasFor lists the pizzas a restaurant offers
	PizzasFor(restaurantID uint) ([]models.Pizza, error)
	// RestaurantsFor lists the restaurants offering a pizza
	RestaurantsFor(pizzaID uint) ([]models.Restaurant, error)
}

type restaurantPizzaService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewRestaurantPizzaService creates a new instance of RestaurantPizzaService
func NewRestaurantPizzaService(db *gorm.DB, publisher events.Publisher) RestaurantPizzaService {
	return &restaurantPizzaService{db: db, publisher: publisherOrNop(publisher)}
}

func (s *restaurantPizzaService) GetAllRestaurantPizzas() ([]models.RestaurantPizza, error) {
	var rps []models.RestaurantPizza
	if err := s.db.Order("id").Find(&rps).Error; err != nil {
		return nil, err
	}
	return rps, nil
}

func (s *restaurantPizzaService) GetRestaurantPizzaByID(id uint) (models.RestaurantPizza, error) {
	var rp models.RestaurantPizza
	if err := s.db.First(&rp, id).Error; err != nil {
		return models.RestaurantPizza{}, translateError(err)
	}
	return rp, nil
}

func (s *restaurantPizzaService) CreateRestaurantPizza(restaurantID, pizzaID uint, price decimal.Decimal) (models.RestaurantPizza, error) {
	rp, err := models.NewRestaurantPizza(restaurantID, pizzaID, price)
	if err != nil {
		return models.RestaurantPizza{}, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Restaurant{}, restaurantID, "restaurant"); err != nil {
			return err
		}
		if err := ensureExists(tx, &models.Pizza{}, pizzaID, "pizza"); err != nil {
			return err
		}
		return tx.Create(rp).Error
	})
	if err != nil {
		return models.RestaurantPizza{}, translateError(err)
	}

	log.WithFields(logrus.Fields{
		"restaurant_pizza_id": rp.ID,
		"restaurant_id":       rp.RestaurantID,
		"pizza_id":            rp.PizzaID,
		"price":               rp.Price.StringFixed(2),
	}).Info("Pizza added to restaurant")
	publish(s.publisher, events.Event{
		Type:              events.RestaurantPizzaCreated,
		RestaurantID:      rp.RestaurantID,
		PizzaID:           rp.PizzaID,
		RestaurantPizzaID: rp.ID,
		Price:             &rp.Price,
	})
	return *rp, nil
}

func (s *restaurantPizzaService) UpdatePrice(id uint, price decimal.Decimal) (models.RestaurantPizza, error) {
	var rp models.RestaurantPizza
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rp, id).Error; err != nil {
			return err
		}
		if err := rp.SetPrice(price); err != nil {
			return err
		}
		return tx.Save(&rp).Error
	})
	if err != nil {
		return models.RestaurantPizza{}, translateError(err)
	}
	return rp, nil
}

func (s *restaurantPizzaService) DeleteRestaurantPizza(id uint) error {
	var rp models.RestaurantPizza
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rp, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RestaurantPizza{}, id).Error
	})
	if err != nil {
		return translateError(err)
	}
	publish(s.publisher, events.Event{
		Type:              events.RestaurantPizzaDeleted,
		RestaurantID:      rp.RestaurantID,
		PizzaID:           rp.PizzaID,
		RestaurantPizzaID: rp.ID,
	})
	return nil
}

func (s *restaurantPizzaService) AssociationsFor(restaurantID uint) ([]models.RestaurantPizza, error) {
	var rps []models.RestaurantPizza
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("id").Find(&rps).Error; err != nil {
		return nil, err
	}
	return rps, nil
}

func (s *restaurantPizzaService) PizzasFor(restaurantID uint) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	err := s.db.
		Joins("JOIN restaurant_pizzas ON restaurant_pizzas.pizza_id = pizzas.id").
		Where("restaurant_pizzas.restaurant_id = ?", restaurantID).
		Order("restaurant_pizzas.id").
		Find(&pizzas).Error
	if err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *restaurantPizzaService) RestaurantsFor(pizzaID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.
		Joins("JOIN restaurant_pizzas ON restaurant_pizzas.restaurant_id = restaurants.id").
		Where("restaurant_pizzas.pizza_id = ?", pizzaID).
		Order("restaurant_pizzas.id").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}
