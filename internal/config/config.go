package config

import (
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	JWTSecret       string
	Port            string
	OperatorWorkers int
}

// ProcessEnvironmentVariables builds the config from defaults overridden by
// environment variables. Defaults match the docker compose setup.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(map[string]interface{}{
		"postgres_address":  "localhost",
		"postgres_port":     "5433",
		"postgres_db":       "postgres",
		"postgres_username": "postgres",
		"postgres_password": "testpassword",
		"jwt_secret":        "local-dev-secret",
		"port":              "9446",
		"operator_workers":  4,
	}, "."), nil)
	if err != nil {
		return nil, err
	}

	err = k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, err
	}

	return &Config{
		PostgresAddress:  k.String("postgres_address"),
		PostgresPort:     k.String("postgres_port"),
		PostgresDB:       k.String("postgres_db"),
		PostgresUsername: k.String("postgres_username"),
		PostgresPassword: k.String("postgres_password"),
		JWTSecret:        k.String("jwt_secret"),
		Port:             k.String("port"),
		OperatorWorkers:  k.Int("operator_workers"),
	}, nil
}

// ConnectionString assembles the lib/pq DSN for the configured database.
func (c *Config) ConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
