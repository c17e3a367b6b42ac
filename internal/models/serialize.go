package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PizzaSummary is a pizza nested under a restaurant. Timestamps are left out.
type PizzaSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Image       string `json:"image"`
}

// RestaurantResponse is the serialized form of a Restaurant and the pizzas it offers.
type RestaurantResponse struct {
	ID      uint           `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Pizzas  []PizzaSummary `json:"pizzas"`
}

// PizzaResponse is the serialized form of a Pizza.
type PizzaResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Ingredients string    `json:"ingredients"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RestaurantPizzaResponse is the serialized form of an association, flat ids only.
type RestaurantPizzaResponse struct {
	ID           uint            `json:"id"`
	Price        decimal.Decimal `json:"price"`
	PizzaID      uint            `json:"pizza_id"`
	RestaurantID uint            `json:"restaurant_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SerializeRestaurant renders a restaurant with the given pizzas, typically from PizzasFor.
func SerializeRestaurant(r Restaurant, pizzas []Pizza) RestaurantResponse {
	summaries := make([]PizzaSummary, 0, len(pizzas))
	for _, p := range pizzas {
		summaries = append(summaries, PizzaSummary{
			ID:          p.ID,
			Name:        p.Name,
			Ingredients: p.Ingredients,
			Image:       p.Image,
		})
	}
	return RestaurantResponse{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		Pizzas:  summaries,
	}
}

func SerializePizza(p Pizza) PizzaResponse {
	return PizzaResponse{
		ID:          p.ID,
		Name:        p.Name,
		Ingredients: p.Ingredients,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func SerializePizzas(pizzas []Pizza) []PizzaResponse {
	out := make([]PizzaResponse, 0, len(pizzas))
	for _, p := range pizzas {
		out = append(out, SerializePizza(p))
	}
	return out
}

func SerializeRestaurantPizza(rp RestaurantPizza) RestaurantPizzaResponse {
	return RestaurantPizzaResponse{
		ID:           rp.ID,
		Price:        rp.Price,
		PizzaID:      rp.PizzaID,
		RestaurantID: rp.RestaurantID,
		CreatedAt:    rp.CreatedAt,
		UpdatedAt:    rp.UpdatedAt,
	}
}

func SerializeRestaurantPizzas(rps []RestaurantPizza) []RestaurantPizzaResponse {
	out := make([]RestaurantPizzaResponse, 0, len(rps))
	for _, rp := range rps {
		out = append(out, SerializeRestaurantPizza(rp))
	}
	return out
}

// RestaurantSummary is a restaurant listed under a pizza, without its menu.
type RestaurantSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func SummarizeRestaurants(restaurants []Restaurant) []RestaurantSummary {
	out := make([]RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, RestaurantSummary{ID: r.ID, Name: r.Name, Address: r.Address})
	}
	return out
}
