package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Database drivers understood by database.Init.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN builds the driver-specific connection string. For sqlite the
// database field is the file path (or ":memory:").
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case DriverSQLite:
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LedgerConfig names the well-known identities of a deployment.
// Owner administers the catalog and receives the genesis supply, Service is
// the spender that pulls subscription fees, Beneficiary receives them.
type LedgerConfig struct {
	Owner       string `mapstructure:"owner"`
	Service     string `mapstructure:"service"`
	Beneficiary string `mapstructure:"beneficiary"`
}

// Refund modes applied on unsubscribe.
const (
	RefundModeNone    = "none"
	RefundModeFull    = "full"
	RefundModeProRata = "prorata"
)

type RefundConfig struct {
	Mode          string `mapstructure:"mode"`
	PeriodSeconds uint64 `mapstructure:"period_seconds"`
}

type SubscriptionConfig struct {
	StrictAvailability  bool         `mapstructure:"strict_availability"`
	RequireRegistration bool         `mapstructure:"require_registration"`
	Refund              RefundConfig `mapstructure:"refund"`
}

type TokenConfig struct {
	Symbol        string `mapstructure:"symbol"`
	GenesisSupply uint64 `mapstructure:"genesis_supply"`
}

type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type CacheConfig struct {
	MaxStatusTTL time.Duration `mapstructure:"max_status_ttl"`
}

// RateLimitConfig throttles state-changing calls per identity. It only
// applies when Redis is enabled; zero disables a window.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	RequestsPerHour   int `mapstructure:"requests_per_hour"`
}
