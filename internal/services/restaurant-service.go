package services

import (
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/events"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RestaurantService provides methods to interact with the restaurant database
type RestaurantService interface {
	// GetAllRestaurants retrieves restaurants, optionally filtered by a partial name
	GetAllRestaurants(name string) ([]models.Restaurant, error)
	// GetRestaurantByID retrieves a restaurant by its ID
	GetRestaurantByID(id uint) (models.Restaurant, error)
	// CreateRestaurant creates a new restaurant with a unique name
	CreateRestaurant(name, address string) (models.Restaurant, error)
	// UpdateRestaurant updates the name and address of an existing restaurant
	UpdateRestaurant(restaurant models.Restaurant) (models.Restaurant, error)
	// DeleteRestaurant deletes a restaurant and every association it has
	DeleteRestaurant(id uint) error
}

type restaurantService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewRestaurantService creates a new instance of RestaurantService
func NewRestaurantService(db *gorm.DB, publisher events.Publisher) RestaurantService {
	return &restaurantService{db: db, publisher: publisherOrNop(publisher)}
}

func (s *restaurantService) GetAllRestaurants(name string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	q := s.db.Order("id")
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if err := q.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *restaurantService) GetRestaurantByID(id uint) (models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, id).Error; err != nil {
		return models.Restaurant{}, translateError(err)
	}
	return restaurant, nil
}

func (s *restaurantService) CreateRestaurant(name, address string) (models.Restaurant, error) {
	restaurant := models.NewRestaurant(name, address)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Restaurant{}, name, 0); err != nil {
			return err
		}
		return tx.Create(restaurant).Error
	})
	if err != nil {
		return models.Restaurant{}, translateError(err)
	}
	log.WithFields(logrus.Fields{"restaurant_id": restaurant.ID, "name": restaurant.Name}).Info("Restaurant created")
	return *restaurant, nil
}

func (s *restaurantService) UpdateRestaurant(restaurant models.Restaurant) (models.Restaurant, error) {
	var existing models.Restaurant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, restaurant.ID).Error; err != nil {
			return err
		}
		if err := ensureUniqueName(tx, &models.Restaurant{}, restaurant.Name, restaurant.ID); err != nil {
			return err
		}
		existing.Name = restaurant.Name
		existing.Address = restaurant.Address
		return tx.Save(&existing).Error
	})
	if err != nil {
		return models.Restaurant{}, translateError(err)
	}
	return existing, nil
}

func (s *restaurantService) DeleteRestaurant(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Restaurant{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.RestaurantPizza{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Restaurant{}, id).Error
	})
	if err != nil {
		return translateError(err)
	}
	log.WithField("restaurant_id", id).Info("Restaurant deleted with its associations")
	publish(s.publisher, events.Event{Type: events.RestaurantDeleted, RestaurantID: id})
	return nil
}
