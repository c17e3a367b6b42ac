//go:build integration
// +build integration

package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgres starts a throwaway postgres container and returns a migrated connection.
func setupPostgres(t *testing.T) *gorm.DB {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not connect to docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=testpass",
			"POSTGRES_USER=testuser",
			"POSTGRES_DB=testdb",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "could not start postgres")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	cfg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "127.0.0.1",
		Port:     resource.GetPort("5432/tcp"),
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		SSLMode:  "disable",
	}

	var db *gorm.DB
	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
		if openErr != nil {
			return openErr
		}
		return ping(db)
	})
	require.NoError(t, err, "postgres never became ready")
	require.NoError(t, Migrate(db))
	return db
}

func TestPostgresSchema(t *testing.T) {
	db := setupPostgres(t)
	m := db.Migrator()

	assert.True(t, m.HasConstraint(&models.RestaurantPizza{}, "fk_restaurant_pizzas_pizza_id_pizzas"))
	assert.True(t, m.HasConstraint(&models.RestaurantPizza{}, "fk_restaurant_pizzas_restaurant_id_restaurants"))

	columns, err := m.ColumnTypes(&models.RestaurantPizza{})
	require.NoError(t, err)
	for _, c := range columns {
		if c.Name() != "price" {
			continue
		}
		precision, scale, ok := c.DecimalSize()
		require.True(t, ok)
		assert.Equal(t, int64(10), precision)
		assert.Equal(t, int64(2), scale)
	}
}

func TestPostgresCascadeAndDuplicates(t *testing.T) {
	db := setupPostgres(t)

	restaurant := models.NewRestaurant("Dino's", "Main St")
	require.NoError(t, db.Create(restaurant).Error)
	pizza, err := models.NewPizza("Margherita", "tomato,cheese", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(pizza).Error)
	rp, err := models.NewRestaurantPizza(restaurant.ID, pizza.ID, decimal.NewFromInt(12))
	require.NoError(t, err)
	require.NoError(t, db.Create(rp).Error)

	err = db.Create(models.NewRestaurant("Dino's", "Elm St")).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	orphan, err := models.NewRestaurantPizza(restaurant.ID, pizza.ID+100, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.ErrorIs(t, db.Create(orphan).Error, gorm.ErrForeignKeyViolated)

	require.NoError(t, db.Delete(&models.Pizza{}, pizza.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.RestaurantPizza{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, fmt.Sprintf("join rows for pizza %d should be gone", pizza.ID))
}
