package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=3000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the credential validity window. Expiry is the only
	// deactivation mechanism; there is no server-side blacklist.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`
	// GenerationTimeout bounds a single provider call.
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT, default=30s"`

	Mongo  MongoConfig
	Redis  RedisConfig
	OpenAI OpenAIConfig
	Admin  AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ai_learning"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
	Model  string `env:"OPENAI_MODEL, default=gpt-3.5-turbo"`
}

// AdminConfig is the bootstrap administrator identity used by cmd/seed.
type AdminConfig struct {
	Name  string `env:"ADMIN_NAME,  default=Admin"`
	Phone string `env:"ADMIN_PHONE, default=0500000000"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
