// config - источник загрузки конфигурации AgriLearn.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Конфигурация читается один раз при старте и дальше не меняется.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Auth     AuthConfig     `yaml:"auth"`
	Guard    GuardConfig    `yaml:"guard"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
	Photos   PhotoConfig    `yaml:"photos"`
	Weather  WeatherConfig  `yaml:"weather"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// IsProduction — production-окружение: cookie выставляются с флагом Secure.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// HTTPConfig — публичный HTTP-сервер.
type HTTPConfig struct {
	Host      string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port      string `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus и проб.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// AuthConfig — секреты и сроки жизни токенов.
// Сроки задаются целым числом секунд.
type AuthConfig struct {
	AccessSecret      string `yaml:"access_secret" env:"JWT_ACCESS_SECRET"`
	RefreshSecret     string `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET"`
	AccessExpiration  int    `yaml:"access_expiration" env:"JWT_ACCESS_EXPIRATION" env-default:"3600"`
	RefreshExpiration int    `yaml:"refresh_expiration" env:"JWT_REFRESH_EXPIRATION" env-default:"2592000"`
}

func (a AuthConfig) AccessTTL() time.Duration {
	return time.Duration(a.AccessExpiration) * time.Second
}

func (a AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(a.RefreshExpiration) * time.Second
}

// GuardConfig — защищаемые страницы и адрес формы входа.
type GuardConfig struct {
	LoginPath         string   `yaml:"login_path" env:"GUARD_LOGIN_PATH" env-default:"/auth/login"`
	ProtectedPrefixes []string `yaml:"protected_prefixes" env:"GUARD_PROTECTED_PREFIXES" env-separator:"," env-default:"/dashboard,/plant-disease,/crop-suggestion,/soil-analysis,/weather-forecast,/market-prices"`
}

// PostgresConfig — DSN и размер пула.
type PostgresConfig struct {
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	MaxConns        int32         `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"10"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"5m"`
}

// RedisConfig — кэш погоды; пустой URL отключает кэш.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

// Enabled — задан ли адрес Redis.
func (r RedisConfig) Enabled() bool { return r.URL != "" }

// S3Config — хранилище фотографий растений; пустой endpoint отключает загрузку.
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT"`
	RootUser      string        `yaml:"root_user" env:"S3_ROOT_USER"`
	RootPassword  string        `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket        string        `yaml:"bucket" env:"S3_BUCKET" env-default:"plant-photos"`
	UseSSL        bool          `yaml:"use_ssl" env:"S3_USE_SSL" env-default:"false"`
	PresignTTL    time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"10m"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

func (s S3Config) Enabled() bool { return s.Endpoint != "" }

type PhotoConfig struct {
	MaxSizeBytes        int64    `yaml:"max_size_bytes" env:"PHOTO_MAX_SIZE_BYTES" env-default:"10485760"`
	AllowedContentTypes []string `yaml:"allowed_content_types" env:"PHOTO_ALLOWED_CONTENT_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/webp"`
}

// WeatherConfig — провайдер погоды и фоновое обновление кэша.
// Пустой APIKey отключает погодный модуль.
type WeatherConfig struct {
	APIKey          string        `yaml:"api_key" env:"WEATHER_API_KEY"`
	BaseURL         string        `yaml:"base_url" env:"WEATHER_BASE_URL" env-default:"https://api.openweathermap.org"`
	Cities          []string      `yaml:"cities" env:"WEATHER_CITIES" env-separator:"," env-default:"bangalore,chennai,delhi,mumbai,kolkata,hyderabad,davangere"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"WEATHER_REFRESH_INTERVAL" env-default:"1h"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env:"WEATHER_CACHE_TTL" env-default:"2h"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"WEATHER_REQUEST_TIMEOUT" env-default:"10s"`
}

func (w WeatherConfig) Enabled() bool { return w.APIKey != "" }

// TimeoutConfig — таймаут обработки запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	read := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return read(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return read(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return read("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Postgres.URL == "" {
		return fmt.Errorf("postgres.url is required")
	}

	if p, err := strconv.Atoi(c.HTTP.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("http.port must be a valid TCP port (1..65535)")
	}

	if c.Auth.AccessExpiration <= 0 {
		return fmt.Errorf("auth.access_expiration must be positive")
	}

	if c.Auth.RefreshExpiration <= 0 {
		return fmt.Errorf("auth.refresh_expiration must be positive")
	}

	if c.Auth.AccessSecret != "" && c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("auth.access_secret and auth.refresh_secret must differ")
	}

	if !strings.HasPrefix(c.Guard.LoginPath, "/") {
		return fmt.Errorf("guard.login_path must be an absolute path")
	}

	for _, p := range c.Guard.ProtectedPrefixes {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("guard.protected_prefixes: %q must start with /", p)
		}
	}

	if c.S3.Enabled() {
		if c.S3.RootUser == "" || c.S3.RootPassword == "" {
			return fmt.Errorf("s3.root_user and s3.root_password are required when s3.endpoint is set")
		}

		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required")
		}
	}

	if c.Photos.MaxSizeBytes <= 0 {
		c.Photos.MaxSizeBytes = 10 * 1024 * 1024 // 10 MiB
	}

	if c.Weather.RefreshInterval <= 0 {
		c.Weather.RefreshInterval = time.Hour
	}

	return nil
}
