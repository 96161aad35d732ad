package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Auth      AuthConfig      `toml:"auth"`
	Refresh   RefreshConfig   `toml:"refresh"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Rooms     RoomsConfig     `toml:"rooms"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	RequestTimeout  int      `toml:"request_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// AuthConfig настройки сессий и паролей
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	JWTIssuer     string `toml:"jwt_issuer"`
	TokenTTL      int    `toml:"token_ttl"` // минуты
	BcryptCost    int    `toml:"bcrypt_cost"`
	AdminUsername string `toml:"admin_username"`
	AdminPassword string `toml:"admin_password"`
}

// TokenTTLDuration время жизни токена
func (a AuthConfig) TokenTTLDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Minute
}

// RefreshConfig период обновления представлений
type RefreshConfig struct {
	Interval int `toml:"interval"` // секунды
}

// IntervalDuration период обновления
func (r RefreshConfig) IntervalDuration() time.Duration {
	return time.Duration(r.Interval) * time.Second
}

// RedisConfig канал сигналов об устаревших данных между экземплярами
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

// RateLimitConfig ограничение частоты запросов на запись
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	IdleTTL int     `toml:"idle_ttl"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RoomsConfig файл с каталогом аудиторий
type RoomsConfig struct {
	SeedFile string `toml:"seed_file"`
}

// Переменные окружения, перекрывающие секреты из файла
const (
	EnvDBPassword    = "DB_PASSWORD"
	EnvJWTSecret     = "JWT_SECRET"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvAdminPassword = "ADMIN_PASSWORD"
	EnvHTTPPort      = "HTTP_PORT"
)

// Load читает TOML файл, подтягивает .env и переменные окружения,
// проставляет значения по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDBPassword); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv(EnvAdminPassword); v != "" {
		cfg.Auth.AdminPassword = v
	}
	if v := os.Getenv(EnvHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvHTTPPort, v)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 5
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime <= 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Database.TxMaxRetries <= 0 {
		cfg.Database.TxMaxRetries = 3
	}

	if cfg.Auth.JWTIssuer == "" {
		cfg.Auth.JWTIssuer = "smc-lab-reservation"
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 720
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}

	// 15 минут, как обновляется боковая панель календаря
	if cfg.Refresh.Interval <= 0 {
		cfg.Refresh.Interval = 900
	}

	if cfg.Redis.Channel == "" {
		cfg.Redis.Channel = "lab-reservation:stale"
	}

	if cfg.RateLimit.RPS <= 0 {
		cfg.RateLimit.RPS = 5
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.RateLimit.IdleTTL <= 0 {
		cfg.RateLimit.IdleTTL = 600
	}

	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "lab_reservation"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if len(c.Auth.JWTSecret) < 16 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 16 bytes (or set %s)", EnvJWTSecret))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost out of range: %d", c.Auth.BcryptCost))
	}
	if c.Auth.AdminUsername != "" && c.Auth.AdminPassword == "" {
		errs = append(errs, fmt.Errorf("auth.admin_password is required with admin_username (or set %s)", EnvAdminPassword))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
