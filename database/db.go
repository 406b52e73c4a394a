package database

import (
	"fmt"
	"os"

	"facturation-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Pacific/Tahiti",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
}

func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Medecin{},
		&models.Code{},
		&models.Facturation{},
		&models.Paiement{},
		&models.BordereauRun{},
		&models.RemiseCheque{},
		&models.IdempotencyKey{},
	); err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}
}

// FromCtx returns the per-request transaction installed by middlewares.Tx,
// falling back to the shared handle for routes outside the TX chain.
func FromCtx(c *fiber.Ctx) *gorm.DB {
	if tx, ok := c.Locals("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return DB
}
