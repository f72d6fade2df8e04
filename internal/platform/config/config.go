// Package config loads the application settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"employee_directory/internal/platform/db"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig は HTTP サーバーに関する設定です。
type ServerConfig struct {
	Addr               string        `yaml:"addr"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
	// LegacyGetMutations registers GET /save and GET /delete alongside POST.
	LegacyGetMutations bool `yaml:"legacy_get_mutations"`
}

// DatabaseConfig は接続設定に起動時の接続待ち時間を加えたものです。
type DatabaseConfig struct {
	db.Config         `yaml:",inline"`
	ConnectTimeout    time.Duration `yaml:"-"`
	ConnectTimeoutRaw string        `yaml:"connect_timeout"`
}

// RedisConfig は Redis セッションストアの設定です。Host が空の場合はDBにセッションを保存します。
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// SessionConfig はログインセッションとCookieの設定です。
type SessionConfig struct {
	Secret           string        `yaml:"secret"`
	TTL              time.Duration `yaml:"-"`
	TTLRaw           string        `yaml:"ttl"`
	SweepInterval    time.Duration `yaml:"-"`
	SweepIntervalRaw string        `yaml:"sweep_interval"`
	CookieName       string        `yaml:"cookie_name"`
	CookieSecure     bool          `yaml:"cookie_secure"`
}

// SecurityConfig は認証と認可の設定です。
type SecurityConfig struct {
	Realm                      string `yaml:"realm"`
	UsersByUsernameQuery       string `yaml:"users_by_username_query"`
	AuthoritiesByUsernameQuery string `yaml:"authorities_by_username_query"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultConnectTimeout  = 60 * time.Second
	DefaultSessionTTL      = 30 * time.Minute
	DefaultSweepInterval   = 10 * time.Minute
	DefaultRedisPort       = "6379"
	minSecretLength        = 32
)

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きして検証します。
// path が空の場合は環境変数とデフォルト値のみを使います。
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase は database セクションだけを読み込んで検証します。
// セッション設定を持たない運用ツール向けです。
func LoadDatabase(path string) (*DatabaseConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Database.validateAndNormalize(); err != nil {
		return nil, err
	}
	return &cfg.Database, nil
}

func read(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString(&c.Server.Addr, "SERVER_ADDR")

	d := &c.Database
	setString(&d.Driver, "DB_DRIVER")
	setString(&d.User, "DB_USER")
	setString(&d.Password, "DB_PASSWORD")
	setString(&d.Name, "DB_NAME")
	setString(&d.Host, "DB_HOST")
	setString(&d.Port, "DB_PORT")
	setString(&d.Path, "DB_PATH")
	setString(&d.InstanceName, "INSTANCE_CONNECTION_NAME")
	if v, ok := os.LookupEnv("RUN_MIGRATIONS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: RUN_MIGRATIONS: %w", err)
		}
		d.RunMigrations = b
	}

	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setString(&c.Session.Secret, "SESSION_SECRET")
	return nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	timeout, err := parseDurationDefault(c.Server.ShutdownTimeoutRaw, DefaultShutdownTimeout)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	c.Server.ShutdownTimeout = timeout

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Session.validateAndNormalize(); err != nil {
		return err
	}
	if c.Redis.Enabled() && c.Redis.Port == "" {
		c.Redis.Port = DefaultRedisPort
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("config: log.format %q is not one of json, text", c.Log.Format)
	}
	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Driver == "" {
		d.Driver = db.DriverMySQL
	}
	switch d.Driver {
	case db.DriverMySQL, db.DriverPostgres:
		if d.User == "" {
			return fmt.Errorf("config: database.user must be set")
		}
		if d.Name == "" {
			return fmt.Errorf("config: database.name must be set")
		}
		if d.InstanceName == "" && d.Host == "" {
			return fmt.Errorf("config: database.host must be set")
		}
		if d.InstanceName == "" && d.Port == "" {
			if d.Driver == db.DriverPostgres {
				d.Port = "5432"
			} else {
				d.Port = "3306"
			}
		}
	case db.DriverSQLite:
		if d.Path == "" {
			d.Path = db.DefaultSQLitePath
		}
	default:
		return fmt.Errorf("config: database.driver %q is not one of mysql, postgres, sqlite", d.Driver)
	}

	timeout, err := parseDurationDefault(d.ConnectTimeoutRaw, DefaultConnectTimeout)
	if err != nil {
		return fmt.Errorf("config: database.connect_timeout: %w", err)
	}
	d.ConnectTimeout = timeout
	return nil
}

func (s *SessionConfig) validateAndNormalize() error {
	if len(s.Secret) < minSecretLength {
		return fmt.Errorf("config: session.secret must be at least %d bytes", minSecretLength)
	}
	ttl, err := parseDurationDefault(s.TTLRaw, DefaultSessionTTL)
	if err != nil {
		return fmt.Errorf("config: session.ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("config: session.ttl must be positive")
	}
	s.TTL = ttl

	sweep, err := parseDurationDefault(s.SweepIntervalRaw, DefaultSweepInterval)
	if err != nil {
		return fmt.Errorf("config: session.sweep_interval: %w", err)
	}
	s.SweepInterval = sweep
	return nil
}

func parseDurationDefault(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}
