package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	Addr        string `env:"ADDR" envDefault:":8080"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	// DemoMode keeps the launch-page behavior of reporting a signup as
	// joined when the store never answered. Set to false to surface those
	// as failures instead.
	DemoMode bool `env:"WAITLIST_DEMO_MODE" envDefault:"true"`
}

// LoadConfig parses the configuration from process environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
