package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	App      *Appconfig
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Srv      *Serviceconfig
	Log      *Loggerconfig
}

type Appconfig struct {
	JwtSecret    string
	TokenTTL     time.Duration
	ResetCodeTTL time.Duration
}

type DBconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMqconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type Serviceconfig struct {
	DirectoryServicePort string `yaml:"directory_service"`
}

type Loggerconfig struct {
	Level string `yaml:"level"`
}

func New() (*Config, error) {
	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		return val
	}

	cnf := &Config{
		App: &Appconfig{
			JwtSecret:    getEnv("JWT_SECRET", "membrohub-dev-secret"),
			TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
			ResetCodeTTL: time.Duration(getEnvInt("RESET_CODE_TTL_MINUTES", 15)) * time.Minute,
		},
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "membrohub_user"),
			Password: getEnv("DB_PASSWORD", "membrohub_pass"),
			Database: getEnv("DB_NAME", "membrohub_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
		Srv: &Serviceconfig{
			DirectoryServicePort: getEnv("DIRECTORY_SERVICE_PORT", "3000"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}

// DSN builds the postgres connection string shared by pgx and goose.
func (c *DBconfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Database)
}
