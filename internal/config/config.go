package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config параметры сервиса. Загружается один раз в main и передаётся явно —
// никаких глобальных синглтонов.
type Config struct {
	Addr     string   `yaml:"addr"`
	Database Database `yaml:"database"`
	Auth     Auth     `yaml:"auth"`
	Seed     bool     `yaml:"seed"`
}

// Database настройки хранилища: memory для тестов и разработки, sqlite для работы
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Auth учётные данные администратора и параметры токена
type Auth struct {
	AdminUser       string `yaml:"admin_user"`
	AdminPassword   string `yaml:"admin_password"`
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

// TokenTTL срок жизни токена
func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

func Default() Config {
	return Config{
		Addr: ":8080",
		Database: Database{
			Driver: "sqlite",
			DSN:    "database.db",
		},
		Auth: Auth{
			AdminUser:       "admin",
			AdminPassword:   "admin",
			JWTSecret:       "dev-secret",
			TokenTTLMinutes: 60,
		},
		Seed: true,
	}
}

// Load читает YAML-файл поверх значений по умолчанию; пустой путь — только
// умолчания. Секрет можно переопределить переменной окружения KIOSK_JWT_SECRET.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("KIOSK_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && c.Database.DSN == "" {
		return fmt.Errorf("sqlite driver requires dsn")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("token_ttl_minutes must be positive")
	}
	return nil
}
