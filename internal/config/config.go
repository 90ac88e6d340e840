package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"os"
	"time"
)

var (
	ErrConfigNotLoaded = errors.New("config not loaded")
)

type Environment string

const (
	Production  Environment = "prod"
	Development Environment = "dev"
)

func (e *Environment) SetValue(s string) error {
	*e = Environment(s)
	if *e != Production && *e != Development {
		return configNotLoadedErr(`only "prod" and "dev" environments are allowed`)
	}
	return nil
}

type CacheDriver string

const (
	CacheMemory CacheDriver = "memory"
	CacheRedis  CacheDriver = "redis"
)

func (d *CacheDriver) SetValue(s string) error {
	*d = CacheDriver(s)
	if *d != CacheMemory && *d != CacheRedis {
		return configNotLoadedErr(`only "memory" and "redis" cache drivers are allowed`)
	}
	return nil
}

type Config struct {
	App struct {
		Env           Environment `yaml:"env" env:"ENV" env-required:""`
		DefaultLocale string      `yaml:"default_locale" env:"DEFAULT_LOCALE" env-default:"en"`
	} `yaml:"app" env-prefix:"APP_" env-required:""`

	Server struct {
		Host string `yaml:"host" env:"HOST" env-default:"localhost"`
		Port int    `yaml:"port" env:"PORT" env-default:"8080"`
	} `yaml:"server" env-prefix:"SERVER_"`

	Cache struct {
		Driver    CacheDriver   `yaml:"driver" env:"DRIVER" env-default:"memory"`
		RedisAddr string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
		TTL       time.Duration `yaml:"ttl" env:"TTL" env-default:"10m"`
	} `yaml:"cache" env-prefix:"CACHE_"`

	Questionnaire struct {
		LoadingDelay time.Duration `yaml:"loading_delay" env:"LOADING_DELAY" env-default:"1500ms"`
		SessionTTL   time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"30m"`
	} `yaml:"questionnaire" env-prefix:"QUESTIONNAIRE_"`
}

// Load reads the config file and applies environment overrides. A .env file
// next to the working directory is loaded first when present.
func Load(filePath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, configNotLoadedErr("failed to read .env: %w", err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadConfig(filePath, cfg); err != nil {
		return nil, configNotLoadedErr("config not loaded: %w", err)
	}

	return cfg, nil
}

func MustLoad(filePath string) *Config {
	cfg, err := Load(filePath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func configNotLoadedErr(format string, args ...any) error {
	return errors.Join(fmt.Errorf(format, args...), ErrConfigNotLoaded)
}
