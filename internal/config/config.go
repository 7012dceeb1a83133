// internal/config/config.go
package config

import (
    "fmt"
    "os"
)

// Config carries every setting the service reads from the environment.
type Config struct {
    DBUser     string
    DBPassword string
    DBHost     string
    DBPort     string
    DBName     string

    HTTPAddr string

    // Base URL of the collaborating product service. Read at boot and
    // logged; no call site uses it yet.
    ProductServiceURL string

    // When set, customer lifecycle events go to RabbitMQ instead of the
    // in-memory queue.
    AMQPURL string
}

func Load() Config {
    return Config{
        DBUser:            getenv("DB_USER", "postgres"),
        DBPassword:        getenv("DB_PASSWORD", "postgres"),
        DBHost:            getenv("DB_HOST", "localhost"),
        DBPort:            getenv("DB_PORT", "5432"),
        DBName:            getenv("DB_NAME", "customers"),
        HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
        ProductServiceURL: getenv("PRODUCT_SERVICE_URL", "http://localhost:8000"),
        AMQPURL:           os.Getenv("AMQP_URL"),
    }
}

// DSN builds the postgres connection string for lib/pq.
func (c Config) DSN() string {
    return fmt.Sprintf(
        "postgres://%s:%s@%s:%s/%s?sslmode=disable",
        c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
    )
}

func getenv(key, fallback string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return fallback
}
