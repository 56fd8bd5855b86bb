package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"3008"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"timerbot-whatsapp"`

	// Meta WhatsApp Cloud API 配置
	MetaJWTToken     string `env:"META_JWT_TOKEN"`
	MetaNumberID     string `env:"META_NUMBER_ID"`
	MetaVerifyToken  string `env:"META_VERIFY_TOKEN"`
	MetaAPIVersion   string `env:"META_API_VERSION" envDefault:"v22.0"`
	MetaGraphBaseURL string `env:"META_GRAPH_BASE_URL" envDefault:"https://graph.facebook.com"`

	// 后端考勤服务配置
	BackendAPIURL         string `env:"BACKEND_API_URL" envDefault:"http://localhost:3001"`
	BackendAPISecret      string `env:"BACKEND_API_SECRET" envDefault:"dev-secret"`
	BackendTimeoutSeconds int    `env:"BACKEND_TIMEOUT_SECONDS" envDefault:"10"`

	// 坐标缓存与去重配置
	CacheBackend         string `env:"CACHE_BACKEND" envDefault:"memory"` // memory, redis
	LocationTTLSeconds   int    `env:"LOCATION_TTL_SECONDS" envDefault:"300"`
	DedupTTLHours        int    `env:"DEDUP_TTL_HOURS" envDefault:"24"`
	SweepIntervalSeconds int    `env:"SWEEP_INTERVAL_SECONDS" envDefault:"60"`

	// Redis 配置（仅 CACHE_BACKEND=redis 时使用）
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"timerbot"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler  float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.MetaJWTToken == "" {
		log.Printf("WARN: META_JWT_TOKEN is not set, outbound WhatsApp messages will not work")
	}
	if Cfg.MetaNumberID == "" {
		log.Printf("WARN: META_NUMBER_ID is not set, outbound WhatsApp messages will not work")
	}
	if Cfg.MetaVerifyToken == "" {
		log.Printf("WARN: META_VERIFY_TOKEN is not set, webhook verification handshake will fail")
	}

	if Cfg.BackendAPISecret == "dev-secret" && Cfg.IsProduction() {
		log.Fatal("BACKEND_API_SECRET must be set in production")
	}

	if Cfg.CacheBackend != "memory" && Cfg.CacheBackend != "redis" {
		log.Fatalf("Unsupported CACHE_BACKEND: %s", Cfg.CacheBackend)
	}
}

func (c *Config) LocationTTL() time.Duration {
	return time.Duration(c.LocationTTLSeconds) * time.Second
}

func (c *Config) DedupTTL() time.Duration {
	return time.Duration(c.DedupTTLHours) * time.Hour
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSeconds) * time.Second
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
