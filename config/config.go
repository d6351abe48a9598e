package config

import (
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port            string `envconfig:"PORT" default:"8080"`
	DatabaseDSN     string `envconfig:"DATABASE_DSN" required:"true"`
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
	FrontendURL     string `envconfig:"FRONTEND_URL"`
	UploadDir       string `envconfig:"UPLOAD_DIR" default:"uploads"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// ConnectDatabase opens the Postgres connection. TranslateError is on so
// unique-constraint violations come back as gorm.ErrDuplicatedKey.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}
