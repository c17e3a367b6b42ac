package main

import (
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-pizza-restaurants/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/auth"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/config"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/controllers"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/database"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/events"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/seed"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// application holds everything the routes need
type application struct {
	db        *gorm.DB
	publisher events.Publisher

	restaurantService      services.RestaurantService
	pizzaService           services.PizzaService
	restaurantPizzaService services.RestaurantPizzaService

	restaurantController      controllers.RestaurantController
	pizzaController           controllers.PizzaController
	restaurantPizzaController controllers.RestaurantPizzaController
	clientController          *controllers.ClientController
	oauthService              *auth.OAuthService

	jwtSecret []byte
}

// @title Pizza Restaurants API
// @version 1.0
// @description Restaurants, pizzas and the prices restaurants charge for them
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()

	// Initialize database connection
	db := setupDatabase(configuration)

	publisher := setupPublisher(configuration)
	if closer, ok := publisher.(*events.AMQPPublisher); ok {
		defer closer.Close()
	}

	app := newApplication(db, publisher, configuration.JWTSecret)
	seedDatabase(app, configuration)

	// Initialize Gin router
	router := app.setupRouter()

	// Start the server
	log.Infof("Starting server on %s", configuration.Address())
	if err := router.Run(configuration.Address()); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment.
// LOG_LEVEL, when valid, wins over the environment default.
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
	if level, err := log.ParseLevel(config.GetEnvWithDefault("LOG_LEVEL", "")); err == nil {
		log.SetLevel(level)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf.String())
	return conf
}

// setupDatabase opens the configured database and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.Database)
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// setupPublisher connects to RabbitMQ when AMQP_URL is set. Without it, events are dropped.
func setupPublisher(conf *config.Config) events.Publisher {
	if conf.AMQPURL == "" {
		log.Info("AMQP_URL not set, menu events disabled")
		return events.NopPublisher{}
	}
	publisher, err := events.DialAMQP(conf.AMQPURL, events.DefaultExchange)
	if err != nil {
		log.WithError(err).Warn("Could not connect to RabbitMQ, menu events disabled")
		return events.NopPublisher{}
	}
	return publisher
}

// newApplication builds services and controllers on top of db
func newApplication(db *gorm.DB, publisher events.Publisher, jwtSecret string) *application {
	app := &application{
		db:                     db,
		publisher:              publisher,
		restaurantService:      services.NewRestaurantService(db, publisher),
		pizzaService:           services.NewPizzaService(db, publisher),
		restaurantPizzaService: services.NewRestaurantPizzaService(db, publisher),
		oauthService:           auth.NewOAuthService(db, jwtSecret),
		jwtSecret:              []byte(jwtSecret),
	}
	app.restaurantController = controllers.NewRestaurantController(app.restaurantService, app.restaurantPizzaService)
	app.pizzaController = controllers.NewPizzaController(app.pizzaService, app.restaurantPizzaService)
	app.restaurantPizzaController = controllers.NewRestaurantPizzaController(app.restaurantPizzaService)
	app.clientController = controllers.NewClientController(services.NewClientService(db))
	return app
}

// seedDatabase loads SEED_FILE, or the bundled data, into an empty database
func seedDatabase(app *application, conf *config.Config) {
	var (
		data *seed.Data
		err  error
	)
	if conf.SeedFile != "" {
		data, err = seed.LoadFile(conf.SeedFile)
	} else {
		data, err = seed.Default()
	}
	checkPanicErr(err)

	seeder := seed.NewSeeder(app.restaurantService, app.pizzaService, app.restaurantPizzaService)
	result, err := seeder.Seed(data)
	checkPanicErr(err)
	if !result.Skipped {
		log.Infof("Database seeded with %d restaurants, %d pizzas and %d menu entries",
			result.Restaurants, result.Pizzas, result.Associations)
	}
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func (app *application) setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	app.setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func (app *application) setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", app.healthCheckHandler)

	// OAuth2 token endpoint, client_credentials only
	router.POST("/oauth/token", app.oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/restaurants", app.restaurantController.GetAllRestaurants)
			publicApi.GET("/restaurants/:id", app.restaurantController.GetRestaurantByID)
			publicApi.GET("/restaurants/:id/pizzas", app.restaurantController.GetPizzasForRestaurant)

			publicApi.GET("/pizzas", app.pizzaController.GetAllPizzas)
			publicApi.GET("/pizzas/:id", app.pizzaController.GetPizzaByID)
			publicApi.GET("/pizzas/:id/restaurants", app.pizzaController.GetRestaurantsForPizza)

			publicApi.GET("/restaurant_pizzas", app.restaurantPizzaController.GetAllRestaurantPizzas)
			publicApi.GET("/restaurant_pizzas/:id", app.restaurantPizzaController.GetRestaurantPizzaByID)
		}

		// Protected routes (requires a Bearer JWT from /oauth/token)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.OAuth2Auth(app.jwtSecret))
		{
			protectedApi.POST("/clients", app.clientController.CreateClient)
			protectedApi.GET("/clients", app.clientController.ListClients)
			protectedApi.DELETE("/clients/:id", app.clientController.DeleteClient)

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole(models.RoleAdmin))
			{
				adminApi.POST("/restaurants", app.restaurantController.CreateRestaurant)
				adminApi.PUT("/restaurants/:id", app.restaurantController.UpdateRestaurant)
				adminApi.DELETE("/restaurants/:id", app.restaurantController.DeleteRestaurant)

				adminApi.POST("/pizzas", app.pizzaController.CreatePizza)
				adminApi.PUT("/pizzas/:id", app.pizzaController.UpdatePizza)
				adminApi.DELETE("/pizzas/:id", app.pizzaController.DeletePizza)

				adminApi.POST("/restaurant_pizzas", app.restaurantPizzaController.CreateRestaurantPizza)
				adminApi.PUT("/restaurant_pizzas/:id", app.restaurantPizzaController.UpdatePrice)
				adminApi.DELETE("/restaurant_pizzas/:id", app.restaurantPizzaController.DeleteRestaurantPizza)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (app *application) healthCheckHandler(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if sqlDB, err := app.db.DB(); err != nil || sqlDB.Ping() != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-pizza-restaurants",
	})
}
