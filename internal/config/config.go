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
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Business BusinessConfig `toml:"business"`
	Platform PlatformConfig `toml:"platform"`
	Payments PaymentsConfig `toml:"payments"`
	Mail     MailConfig     `toml:"mail"`
	Events   EventsConfig   `toml:"events"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig HTTP сервер; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"` // лучше задавать через DB_PASSWORD
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BusinessConfig данные бизнеса для писем, календаря и часового пояса
type BusinessConfig struct {
	Name          string `toml:"name"`
	Practitioner  string `toml:"practitioner"`
	Location      string `toml:"location"`
	TimeZone      string `toml:"time_zone"`
	PublicBaseURL string `toml:"public_base_url"` // адрес API для ссылок в письмах
	BookingURL    string `toml:"booking_url"`     // страница записи для клиентов
	DashboardURL  string `toml:"dashboard_url"`   // админка
	UIDDomain     string `toml:"uid_domain"`
}

// PlatformConfig внешняя платформа бронирования; выключена = локальная БД
type PlatformConfig struct {
	Enabled         bool   `toml:"enabled"`
	BaseURL         string `toml:"base_url"`
	Token           string `toml:"token"` // лучше задавать через PLATFORM_TOKEN
	LocationID      string `toml:"location_id"`
	TeamMemberID    string `toml:"team_member_id"`
	Timeout         int    `toml:"timeout"`           // секунды
	CatalogCacheTTL int    `toml:"catalog_cache_ttl"` // секунды
}

// PaymentsConfig оплата картой
type PaymentsConfig struct {
	Enabled   bool   `toml:"enabled"`
	SecretKey string `toml:"secret_key"` // лучше задавать через STRIPE_SECRET_KEY
	Currency  string `toml:"currency"`
}

// MailConfig SMTP
type MailConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"` // лучше задавать через SMTP_PASSWORD
	From     string `toml:"from"`
	StartTLS bool   `toml:"start_tls"`
	Timeout  int    `toml:"timeout"` // секунды
}

// EventsConfig очередь событий после фиксации
type EventsConfig struct {
	QueueSize      int `toml:"queue_size"`
	Workers        int `toml:"workers"`
	HandlerTimeout int `toml:"handler_timeout"` // секунды
}

// AdminConfig доступ к админским маршрутам
type AdminConfig struct {
	Token string `toml:"token"` // лучше задавать через ADMIN_TOKEN
}

// Load читает TOML-файл, затем .env и переменные окружения (секреты и хосты)
func Load(path string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:     LogsConfig{Level: "info"},
		Metrics:  MetricsConfig{ServiceName: "appointment_service", Path: "/metrics"},
		Business: BusinessConfig{TimeZone: "America/Chicago"},
		Platform: PlatformConfig{Timeout: 10, CatalogCacheTTL: 300},
		Payments: PaymentsConfig{Currency: "usd"},
		Mail:     MailConfig{Port: 587, StartTLS: true, Timeout: 10},
		Events:   EventsConfig{QueueSize: 256, Workers: 2, HandlerTimeout: 30},
	}
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("PLATFORM_TOKEN", &c.Platform.Token)
	setString("STRIPE_SECRET_KEY", &c.Payments.SecretKey)
	setString("SMTP_USERNAME", &c.Mail.Username)
	setString("SMTP_PASSWORD", &c.Mail.Password)
	setString("ADMIN_TOKEN", &c.Admin.Token)
	setString("PUBLIC_BASE_URL", &c.Business.PublicBaseURL)

	if v, ok := os.LookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.HTTPPort = port
	}

	return nil
}

// Validate проверяет обязательные параметры включенных интеграций
func (c *Config) Validate() error {
	if c.Database.DBName == "" {
		return errors.New("config: database.dbname is required")
	}
	if _, err := time.LoadLocation(c.Business.TimeZone); err != nil {
		return fmt.Errorf("config: business.time_zone: %w", err)
	}
	if c.Platform.Enabled && (c.Platform.BaseURL == "" || c.Platform.Token == "" || c.Platform.LocationID == "") {
		return errors.New("config: platform.base_url, token and location_id are required when the platform is enabled")
	}
	if c.Payments.Enabled && c.Payments.SecretKey == "" {
		return errors.New("config: payments secret key is required when payments are enabled")
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		return errors.New("config: mail.host and mail.from are required when mail is enabled")
	}
	return nil
}
