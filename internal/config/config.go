package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Business BusinessConfig `toml:"business"`
	Admin    AdminConfig    `toml:"admin"`
	NATS     NATSConfig     `toml:"nats"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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
}

// DSN собирает строку подключения PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// BusinessConfig параметры бизнеса
type BusinessConfig struct {
	// Timezone именованная гражданская зона бизнеса, например "Europe/Moscow".
	// Все гражданские даты и времена интерпретируются в ней.
	Timezone string `toml:"timezone"`

	// PhoneRegion регион по умолчанию для нормализации телефонов (ISO 3166-1)
	PhoneRegion string `toml:"phone_region"`

	// LeadTimeMinutes минимальный интервал от "сейчас" до начала слота.
	// Действует только в режиме бронирования день в день, который сейчас
	// полностью отключен политикой продукта.
	LeadTimeMinutes int `toml:"lead_time_minutes"`
}

type AdminConfig struct {
	// Token статический токен админки, передается в заголовке X-Admin-Token
	Token string `toml:"token"`
}

type NATSConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Business.Timezone == "" {
		return nil, fmt.Errorf("config: business.timezone is required")
	}
	if cfg.Business.PhoneRegion == "" {
		return nil, fmt.Errorf("config: business.phone_region is required")
	}
	if cfg.Admin.Token == "" {
		return nil, fmt.Errorf("config: admin.token is required")
	}
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	return &cfg, nil
}
