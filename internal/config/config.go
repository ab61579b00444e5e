package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains the MongoDB connection settings.
// The service refuses to start without both URI and Name.
type DatabaseConfig struct {
	URI                   string `mapstructure:"uri" validate:"required"`
	Name                  string `mapstructure:"name" validate:"required"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
}

// AuthConfig selects and configures the authorization gate.
//
// With Disabled set, or with IssuerURL or Audience missing, mutating routes are
// not protected and a warning is logged at startup.
type AuthConfig struct {
	IssuerURL     string `mapstructure:"issuer_url" validate:"omitempty,url"`
	Audience      string `mapstructure:"audience"`
	Disabled      bool   `mapstructure:"disabled"`
	RequiredScope string `mapstructure:"required_scope" validate:"required"`
	RolesClaim    string `mapstructure:"roles_claim" validate:"required"`
}

// Enforced reports whether tokens must be verified.
func (c AuthConfig) Enforced() bool {
	return !c.Disabled && c.IssuerURL != "" && c.Audience != ""
}
