package services

import (
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/events"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PizzaService provides methods to interact with the pizza database
type PizzaService interface {
	// GetAllPizzas retrieves pizzas, optionally filtered by a partial name
	GetAllPizzas(name string) ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(id uint) (models.Pizza, error)
	// CreatePizza validates and creates a new pizza
	CreatePizza(name, ingredients, image string) (models.Pizza, error)
	// UpdatePizza updates an existing pizza in the database
	UpdatePizza(pizza models.Pizza) (models.Pizza, error)
	// DeletePizza deletes a pizza and every association it has
	DeletePizza(id uint) error
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB, publisher events.Publisher) PizzaService {
	return &pizzaService{db: db, publisher: publisherOrNop(publisher)}
}

func (s *pizzaService) GetAllPizzas(name string) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	q := s.db.Order("id")
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if err := q.Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(id uint) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.First(&pizza, id).Error; err != nil {
		return models.Pizza{}, translateError(err)
	}
	return pizza, nil
}

func (s *pizzaService) CreatePizza(name, ingredients, image string) (models.Pizza, error) {
	pizza, err := models.NewPizza(name, ingredients, image)
	if err != nil {
		return models.Pizza{}, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Pizza{}, name, 0); err != nil {
			return err
		}
		return tx.Create(pizza).Error
	})
	if err != nil {
		return models.Pizza{}, translateError(err)
	}
	log.WithFields(logrus.Fields{"pizza_id": pizza.ID, "name": pizza.Name}).Info("Pizza created")
	return *pizza, nil
}

// UpdatePizza loads the stored row first so CreatedAt survives the save.
func (s *pizzaService) UpdatePizza(pizza models.Pizza) (models.Pizza, error) {
	var existing models.Pizza
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, pizza.ID).Error; err != nil {
			return err
		}
		if err := existing.SetName(pizza.Name); err != nil {
			return err
		}
		if err := ensureUniqueName(tx, &models.Pizza{}, pizza.Name, pizza.ID); err != nil {
			return err
		}
		existing.Ingredients = pizza.Ingredients
		existing.Image = pizza.Image
		return tx.Save(&existing).Error
	})
	if err != nil {
		return models.Pizza{}, translateError(err)
	}
	return existing, nil
}

func (s *pizzaService) DeletePizza(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Pizza{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("pizza_id = ?", id).Delete(&models.RestaurantPizza{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pizza{}, id).Error
	})
	if err != nil {
		return translateError(err)
	}
	log.WithField("pizza_id", id).Info("Pizza deleted with its associations")
	publish(s.publisher, events.Event{Type: events.PizzaDeleted, PizzaID: id})
	return nil
}
