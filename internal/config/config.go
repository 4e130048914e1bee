package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nordco/NC-BookingClient/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	BackendAPI BackendAPIConfig `toml:"backend_api"`
	Booking    BookingConfig    `toml:"booking"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// BackendAPIConfig настройки клиента бэкенда бронирований
type BackendAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig настройки календаря бронирований
type BookingConfig struct {
	SlotSizeMinutes         int    `toml:"slot_size_minutes"`
	BusinessTimezone        string `toml:"business_timezone"`
	ModificationNoticeHours int    `toml:"modification_notice_hours"`
	ErrorNoticeSeconds      int    `toml:"error_notice_seconds"`
	SessionMaxIdleMinutes   int    `toml:"session_max_idle_minutes"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.SlotSizeMinutes == 0 {
		c.Booking.SlotSizeMinutes = domain.DefaultSlotSizeMinutes
	}
	if c.Booking.BusinessTimezone == "" {
		c.Booking.BusinessTimezone = domain.DefaultBusinessTimezone
	}
	if c.Booking.ModificationNoticeHours == 0 {
		c.Booking.ModificationNoticeHours = domain.DefaultModificationNoticeHours
	}
	if c.Booking.ErrorNoticeSeconds == 0 {
		c.Booking.ErrorNoticeSeconds = domain.DefaultErrorNoticeSeconds
	}
	if c.Booking.SessionMaxIdleMinutes == 0 {
		c.Booking.SessionMaxIdleMinutes = 30
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.BackendAPI.URL == "" {
		return fmt.Errorf("config: backend_api.url is required")
	}
	if c.Booking.SlotSizeMinutes < domain.MinSlotSizeMinutes || c.Booking.SlotSizeMinutes > domain.MaxSlotSizeMinutes {
		return fmt.Errorf("config: booking.slot_size_minutes must be between %d and %d",
			domain.MinSlotSizeMinutes, domain.MaxSlotSizeMinutes)
	}
	return nil
}
