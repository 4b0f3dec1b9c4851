package config

import (
	"fmt"
	"strings"
	"time"

	"ecommerce-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	GinMode         string        `envconfig:"GIN_MODE" default:"debug"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	DBDriver        string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DatabaseDSN     string        `envconfig:"DATABASE_DSN" default:"ecommerce.db"`
	JWTSecret       string        `envconfig:"JWT_SECRET" default:"ecommerce_api_dev_secret"`
	TokenTTL        time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Restock sweep: products strictly below RestockThreshold are reset to RestockTarget.
	RestockThreshold int `envconfig:"RESTOCK_THRESHOLD" default:"10"`
	RestockTarget    int `envconfig:"RESTOCK_TARGET" default:"50"`
}

// Load reads the configuration from the environment, after loading a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.RestockTarget < cfg.RestockThreshold {
		return nil, fmt.Errorf("RESTOCK_TARGET (%d) must not be below RESTOCK_THRESHOLD (%d)",
			cfg.RestockTarget, cfg.RestockThreshold)
	}
	return &cfg, nil
}

// OpenDB connects to the configured store and migrates the schema.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Each connection to an in-memory sqlite database sees its own empty database.
	if cfg.DBDriver == "sqlite" && strings.Contains(cfg.DatabaseDSN, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.CustomerAccount{},
		&models.Product{},
		&models.Order{},
		&models.OrderStatusHistory{},
	)
}
