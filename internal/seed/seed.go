// Package seed loads restaurants, pizzas and their prices from YAML into an empty database.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

//go:embed data.yaml
var defaultData []byte

type RestaurantData struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type PizzaData struct {
	Name        string `yaml:"name"`
	Ingredients string `yaml:"ingredients"`
	Image       string `yaml:"image"`
}

// MenuData prices one pizza at one restaurant, both referenced by name.
// Price is kept as a string so YAML floats do not lose precision.
type MenuData struct {
	Restaurant string `yaml:"restaurant"`
	Pizza      string `yaml:"pizza"`
	Price      string `yaml:"price"`
}

type Data struct {
	Restaurants []RestaurantData `yaml:"restaurants"`
	Pizzas      []PizzaData      `yaml:"pizzas"`
	Menu        []MenuData       `yaml:"menu"`
}

// Result counts the records a seeding run created.
type Result struct {
	Restaurants  int
	Pizzas       int
	Associations int
	Skipped      bool
}

// Load decodes seed data, rejecting unknown keys.
func Load(r io.Reader) (*Data, error) {
	var data Data
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&data); err != nil {
		if err == io.EOF {
			return &data, nil
		}
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &data, nil
}

func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the seed data bundled with the binary.
func Default() (*Data, error) {
	return Load(bytes.NewReader(defaultData))
}

type Seeder struct {
	restaurants services.RestaurantService
	pizzas      services.PizzaService
	menu        services.RestaurantPizzaService
}

func NewSeeder(restaurants services.RestaurantService, pizzas services.PizzaService, menu services.RestaurantPizzaService) *Seeder {
	return &Seeder{restaurants: restaurants, pizzas: pizzas, menu: menu}
}

// Seed inserts data through the services so every validator applies.
// It does nothing when restaurants or pizzas already exist.
func (s *Seeder) Seed(data *Data) (Result, error) {
	var result Result

	existingRestaurants, err := s.restaurants.GetAllRestaurants("")
	if err != nil {
		return result, err
	}
	existingPizzas, err := s.pizzas.GetAllPizzas("")
	if err != nil {
		return result, err
	}
	if len(existingRestaurants) > 0 || len(existingPizzas) > 0 {
		log.Info("Database already has data, skipping seed")
		result.Skipped = true
		return result, nil
	}

	restaurantIDs := make(map[string]uint, len(data.Restaurants))
	for _, r := range data.Restaurants {
		created, err := s.restaurants.CreateRestaurant(r.Name, r.Address)
		if err != nil {
			return result, fmt.Errorf("seeding restaurant %q: %w", r.Name, err)
		}
		restaurantIDs[r.Name] = created.ID
		result.Restaurants++
	}

	pizzaIDs := make(map[string]uint, len(data.Pizzas))
	for _, p := range data.Pizzas {
		created, err := s.pizzas.CreatePizza(p.Name, p.Ingredients, p.Image)
		if err != nil {
			return result, fmt.Errorf("seeding pizza %q: %w", p.Name, err)
		}
		pizzaIDs[p.Name] = created.ID
		result.Pizzas++
	}

	for _, m := range data.Menu {
		price, err := decimal.NewFromString(m.Price)
		if err != nil {
			return result, fmt.Errorf("seeding menu entry %s/%s: invalid price %q: %w", m.Restaurant, m.Pizza, m.Price, err)
		}
		// Unknown names map to id 0, which the service reports as a reference error
		if _, err := s.menu.CreateRestaurantPizza(restaurantIDs[m.Restaurant], pizzaIDs[m.Pizza], price); err != nil {
			return result, fmt.Errorf("seeding menu entry %s/%s: %w", m.Restaurant, m.Pizza, err)
		}
		result.Associations++
	}

	log.WithFields(logrus.Fields{
		"restaurants":  result.Restaurants,
		"pizzas":       result.Pizzas,
		"associations": result.Associations,
	}).Info("Seed data loaded")
	return result, nil
}
