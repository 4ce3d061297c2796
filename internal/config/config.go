package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs at startup. It is built once in
// main and injected into constructors, nothing reads the environment after that.
type Config struct {
	DBConnectionString string
	JWTSecret          string
	Port               string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	cfg := &Config{
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Port:               os.Getenv("PORT"),
	}

	if cfg.DBConnectionString == "" {
		return nil, errors.New("no DB_CONNECTION_STRING provided")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("no JWT_SECRET provided")
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}

	return cfg, nil
}
