package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	HistoryDriverRedis  = "redis"
	HistoryDriverSQLite = "sqlite"

	CacheScopeMove = "move"
	CacheScopeGame = "game"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Redis    Redis   `yaml:"redis"`
	History  History `yaml:"history"`
	Engine   Engine  `yaml:"engine"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type History struct {
	Driver     string `yaml:"driver" env:"HISTORY_DRIVER" env-default:"redis"`
	SQLitePath string `yaml:"sqlite-path" env:"HISTORY_SQLITE_PATH" env-default:"game_history.db"`
}

type Engine struct {
	SearchDepth int    `yaml:"search-depth" env:"ENGINE_SEARCH_DEPTH" env-default:"1"`
	CacheScope  string `yaml:"cache-scope" env:"ENGINE_CACHE_SCOPE" env-default:"move"`
	CacheSize   int    `yaml:"cache-size" env:"ENGINE_CACHE_SIZE" env-default:"65536"`
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

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// SharedCache reports whether a session keeps its search cache between moves.
func (that *Engine) SharedCache() bool {
	return that.CacheScope == CacheScopeGame
}
