package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/config"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/database"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Creates a client_credentials client for local development, owned by a user with the given role.
func main() {
	role := flag.String("role", models.RoleAdmin, "User role (admin or user)")
	flag.Parse()

	if *role != models.RoleAdmin && *role != models.RoleUser {
		log.Fatalf("Unknown role %q, expected admin or user", *role)
	}

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
	conf, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.InitDatabase(conf.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	// Fixed development credentials per role
	clientID, clientSecret := "dev-client", "dev-secret-123"
	if *role == models.RoleUser {
		clientID, clientSecret = "user-client", "user-secret-123"
	}

	clients := services.NewClientService(db)
	if _, err := clients.GetClientByID(clientID); err == nil {
		fmt.Printf("Development client already exists for role '%s'!\n", *role)
		printCredentials(conf, clientID, clientSecret)
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		log.WithError(err).Fatal("Failed to look up client")
	}

	user, created, err := services.NewUserService(db).GetOrCreateUser(
		fmt.Sprintf("%s@pizza.com", *role), fmt.Sprintf("%s User", *role), *role)
	if err != nil {
		log.WithError(err).Fatal("Failed to get user for role")
	}
	if created {
		fmt.Printf("Created new user: %s (ID: %d, Role: %s)\n", user.Email, user.ID, user.Role)
	} else {
		fmt.Printf("Found existing user: %s (ID: %d, Role: %s)\n", user.Email, user.ID, user.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("Failed to hash secret")
	}

	client := &models.OAuthClient{
		ID:         clientID,
		Secret:     string(hash),
		Name:       fmt.Sprintf("Development %s Client", *role),
		Domain:     "http://localhost",
		UserID:     user.ID,
		Scopes:     "read write",
		GrantTypes: "client_credentials",
	}
	if err := clients.CreateClient(client); err != nil {
		log.WithError(err).Fatal("Failed to create client")
	}

	fmt.Printf("✓ Development OAuth client created for role '%s'!\n", *role)
	printCredentials(conf, clientID, clientSecret)
}

func printCredentials(conf *config.Config, clientID, clientSecret string) {
	fmt.Printf("Client ID: %s\n", clientID)
	fmt.Printf("Client Secret: %s\n", clientSecret)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://%s/oauth/token \\\n", conf.Address())
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", clientID)
	fmt.Printf("  -d 'client_secret=%s'\n", clientSecret)
}
