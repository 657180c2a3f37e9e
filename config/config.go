package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Queue       QueueConfig
	Kafka       KafkaConfig
	Mail        MailConfig
	Push        PushConfig
	GoogleOAuth GoogleOAuthConfig
}

type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
	ClientURL   string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type QueueConfig struct {
	Driver      string
	Name        string
	Workers     int
	MaxAttempts int
	User        string
	Password    string
}

type KafkaConfig struct {
	Enabled           bool
	BootstrapServers  string
	APIKey            string
	APISecret         string
	ContributionTopic string
}

type MailConfig struct {
	Enabled      bool
	From         string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

type PushConfig struct {
	Enabled     bool
	Endpoint    string
	AccessToken string
}

type GoogleOAuthConfig struct {
	Enabled      bool
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Tenure"),
			Environment: getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			ClientURL:   getEnv("CLIENT_URL", "http://localhost:8081"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			DSN:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			DBName:          getEnv("DB_NAME", "tenure"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
			AccessTTL:     getEnvDuration("JWT_ACCESS_TTL", 24*time.Hour),
			RefreshTTL:    getEnvDuration("JWT_REFRESH_TTL", 8*time.Hour),
			Issuer:        getEnv("JWT_ISSUER", "tenure"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Queue: QueueConfig{
			Driver:      getEnv("QUEUE_DRIVER", "redis"),
			Name:        getEnv("QUEUE_NAME", "tenure"),
			Workers:     getEnvInt("QUEUE_WORKERS", 4),
			MaxAttempts: getEnvInt("QUEUE_MAX_ATTEMPTS", 3),
			User:        getEnv("QUEUE_USER", ""),
			Password:    getEnv("QUEUE_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Enabled:           getEnvBool("KAFKA_ENABLED", false),
			BootstrapServers:  getEnv("KAFKA_BOOTSTRAP_SERVERS", ""),
			APIKey:            getEnv("KAFKA_API_KEY", ""),
			APISecret:         getEnv("KAFKA_API_SECRET", ""),
			ContributionTopic: getEnv("KAFKA_CONTRIBUTION_TOPIC", "contribution_committed"),
		},
		Mail: MailConfig{
			Enabled:      getEnvBool("MAIL_ENABLED", false),
			From:         getEnv("MAIL_FROM", ""),
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RefreshToken: getEnv("GMAIL_OAUTH", ""),
		},
		Push: PushConfig{
			Enabled:     getEnvBool("PUSH_ENABLED", false),
			Endpoint:    getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
			AccessToken: getEnv("EXPO_ACCESS_TOKEN", ""),
		},
		GoogleOAuth: GoogleOAuthConfig{
			Enabled:      getEnvBool("GOOGLE_OAUTH_ENABLED", false),
			ClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_OAUTH_REDIRECT_URL", ""),
		},
	}

	if cfg.Database.DSN == "" && cfg.Database.Driver == "postgres" {
		cfg.Database.DSN = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.DBName,
			cfg.Database.SSLMode,
		)
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "tenure.db"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET e JWT_REFRESH_SECRET são obrigatórios")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER inválido: %s", c.Database.Driver)
	}
	switch c.Queue.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("QUEUE_DRIVER inválido: %s", c.Queue.Driver)
	}
	if c.Queue.Driver == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("QUEUE_DRIVER=redis exige REDIS_ENABLED=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
