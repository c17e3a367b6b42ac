package models

// Restaurant is a root entity. Deleting it removes its RestaurantPizza rows.
type Restaurant struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex;not null"`
	Address string `json:"address"`

	RestaurantPizzas []RestaurantPizza `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// NewRestaurant builds an unsaved restaurant.
func NewRestaurant(name, address string) *Restaurant {
	return &Restaurant{Name: name, Address: address}
}
