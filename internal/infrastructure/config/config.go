package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/orris-inc/subledger/internal/domain/shared"
	sharedConfig "github.com/orris-inc/subledger/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Ledger       sharedConfig.LedgerConfig       `mapstructure:"ledger"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	Token        sharedConfig.TokenConfig        `mapstructure:"token"`
	Events       sharedConfig.EventsConfig       `mapstructure:"events"`
	Cache        sharedConfig.CacheConfig        `mapstructure:"cache"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"ratelimit"`
}

// EnvPrefix prefixes every environment override, e.g. SUBLEDGER_DATABASE_DRIVER.
const EnvPrefix = "SUBLEDGER"

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or the file at path when non-empty) and
// applies environment overrides.
func Load(env, path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate checks the values the ledger cannot run without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	for name, value := range map[string]string{
		"ledger.owner":       c.Ledger.Owner,
		"ledger.service":     c.Ledger.Service,
		"ledger.beneficiary": c.Ledger.Beneficiary,
	} {
		if _, err := shared.ParseIdentity(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	switch c.Subscription.Refund.Mode {
	case sharedConfig.RefundModeNone, sharedConfig.RefundModeFull, sharedConfig.RefundModeProRata:
	default:
		return fmt.Errorf("unsupported refund mode %q", c.Subscription.Refund.Mode)
	}
	return nil
}

// Identities returns the parsed ledger identities. Validate must have passed.
func (c *Config) Identities() (owner, service, beneficiary shared.Identity) {
	return shared.MustParseIdentity(c.Ledger.Owner),
		shared.MustParseIdentity(c.Ledger.Service),
		shared.MustParseIdentity(c.Ledger.Beneficiary)
}

// RefundPeriod is the configured pro-rata billing period.
func (c *Config) RefundPeriod() time.Duration {
	return time.Duration(c.Subscription.Refund.PeriodSeconds) * time.Second
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	// Database defaults
	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "subledger_dev")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "subledger")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "subledger:events")

	// Subscription defaults
	v.SetDefault("subscription.strict_availability", false)
	v.SetDefault("subscription.require_registration", false)
	v.SetDefault("subscription.refund.mode", sharedConfig.RefundModeNone)
	v.SetDefault("subscription.refund.period_seconds", 28*24*60*60)

	// Token defaults
	v.SetDefault("token.symbol", "SUB")
	v.SetDefault("token.genesis_supply", 0)

	v.SetDefault("events.buffer_size", 1024)
	v.SetDefault("cache.max_status_ttl", "5m")
	v.SetDefault("ratelimit.requests_per_minute", 60)
	v.SetDefault("ratelimit.requests_per_hour", 0)
}
