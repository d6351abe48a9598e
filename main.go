package main

import (
	"os"

	"learnsphere/config"
	"learnsphere/models"
	"learnsphere/payments"
	"learnsphere/routes"
	"learnsphere/utils"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}

	db, err := config.ConnectDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	if err := migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("upload dir setup failed", zap.Error(err))
	}

	utils.SeedDemoCourses(db)

	gateway := payments.NewStripeGateway(cfg.StripeSecretKey)

	r := routes.SetupRouter(db, cfg, gateway, log)

	addr := ":" + cfg.Port
	log.Info("server running", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Course{},
		&models.Booking{},
		&models.Progress{},
		&models.Rating{},
	)
}
