package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RestaurantPizza associates one Restaurant with one Pizza at a price.
// It is removed together with either parent.
type RestaurantPizza struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	PizzaID      uint            `json:"pizza_id" gorm:"not null;index"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0.00"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (RestaurantPizza) TableName() string {
	return "restaurant_pizzas"
}

// NewRestaurantPizza builds an unsaved association. Both parent ids are required
// and the price must pass ValidatePrice.
func NewRestaurantPizza(restaurantID, pizzaID uint, price decimal.Decimal) (*RestaurantPizza, error) {
	rp := &RestaurantPizza{RestaurantID: restaurantID, PizzaID: pizzaID}
	if err := rp.checkReferences(); err != nil {
		return nil, err
	}
	if err := rp.SetPrice(price); err != nil {
		return nil, err
	}
	return rp, nil
}

// SetPrice assigns the price only if it passes ValidatePrice.
func (rp *RestaurantPizza) SetPrice(price decimal.Decimal) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	rp.Price = price
	return nil
}

func (rp *RestaurantPizza) checkReferences() error {
	if rp.RestaurantID == 0 {
		return fmt.Errorf("%w: restaurant_id is required", ErrReference)
	}
	if rp.PizzaID == 0 {
		return fmt.Errorf("%w: pizza_id is required", ErrReference)
	}
	return nil
}

// BeforeSave re-runs the field checks for records built without the constructor.
func (rp *RestaurantPizza) BeforeSave(tx *gorm.DB) error {
	if err := rp.checkReferences(); err != nil {
		return err
	}
	return ValidatePrice(rp.Price)
}
