package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Events EventsConfig `mapstructure:"events" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// EventsConfig contains settings for the event registry.
type EventsConfig struct {
	// MaxListeners is the per-channel count above which a leak warning is logged.
	// Zero disables the warning.
	MaxListeners int `mapstructure:"max_listeners" validate:"gte=0"`
	// Channels receive a logging listener at startup.
	Channels []string `mapstructure:"channels" validate:"dive,required"`
}
