package models

import (
	"time"

	"gorm.io/gorm"
)

// Pizza is a root entity. CreatedAt and UpdatedAt are maintained by GORM.
type Pizza struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Ingredients string    `json:"ingredients"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Image       string    `json:"image"`

	RestaurantPizzas []RestaurantPizza `json:"-" gorm:"foreignKey:PizzaID;constraint:OnDelete:CASCADE"`
}

func (Pizza) TableName() string {
	return "pizzas"
}

// NewPizza builds an unsaved pizza, rejecting names longer than MaxPizzaNameLength.
func NewPizza(name, ingredients, image string) (*Pizza, error) {
	p := &Pizza{Ingredients: ingredients, Image: image}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	return p, nil
}

// SetName assigns the name only if it passes ValidatePizzaName.
func (p *Pizza) SetName(name string) error {
	if err := ValidatePizzaName(name); err != nil {
		return err
	}
	p.Name = name
	return nil
}

// BeforeSave keeps records built without SetName from reaching storage.
func (p *Pizza) BeforeSave(tx *gorm.DB) error {
	return ValidatePizzaName(p.Name)
}
