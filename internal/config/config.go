package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`

	JWTSecret    string `env:"JWT_SECRET,required"`
	TokenTTLMins int    `env:"TOKEN_TTL_MINS" envDefault:"720"`

	// Operator login for mutating endpoints. The hash is a bcrypt hash
	// of the operator password.
	OperatorName         string `env:"OPERATOR_NAME" envDefault:"operator"`
	OperatorPasswordHash string `env:"OPERATOR_PASSWORD_HASH,required"`

	LaundryName     string `env:"LAUNDRY_NAME" envDefault:"Sudirman Laundry"`
	LaundryLocation string `env:"LAUNDRY_LOCATION" envDefault:"Jakarta, Indonesia"`

	// Tariff in monetary units per unit weight. Wash-only and
	// ironed-only orders share the standard rate.
	RateFullService   float64 `env:"RATE_FULL_SERVICE" envDefault:"8000"`
	RateStandard      float64 `env:"RATE_STANDARD" envDefault:"6000"`
	ExpressMultiplier float64 `env:"EXPRESS_MULTIPLIER" envDefault:"1.5"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
