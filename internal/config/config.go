package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeTUI  = "tui"
	ModeHTTP = "http"

	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string  `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	Mode     string  `yaml:"mode" env:"MODE" env-default:"tui"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
	Field    Field   `yaml:"field"`
}

type Storage struct {
	Backend    string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite-path" env:"STORAGE_SQLITE_PATH" env-default:"tictactoe.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Field configures the persisted form field.
type Field struct {
	Key     string `yaml:"key" env:"FIELD_KEY" env-default:"name"`
	Default string `yaml:"default" env:"FIELD_DEFAULT" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModeTUI, ModeHTTP:
	default:
		return fmt.Errorf("unknown mode %q", that.Mode)
	}

	switch that.Storage.Backend {
	case BackendRedis, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", that.Storage.Backend)
	}

	if that.Field.Key == "" {
		return fmt.Errorf("field key is empty")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
