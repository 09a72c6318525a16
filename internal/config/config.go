package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// HTTP
	Port string `envconfig:"PORT" default:"5000"`
	// DB
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	// JWT
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// Bootstrap admin
	AdminName     string `envconfig:"ADMIN_NAME" default:"System Administrator"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:""`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:""`
	// Infra
	NatsURL      string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	OtelEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

func (c App) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}
