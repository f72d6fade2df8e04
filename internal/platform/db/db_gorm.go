// Package db はデータベース接続とスキーママイグレーションを提供します。
package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultSQLitePath is the database file used when the sqlite driver has no path.
const DefaultSQLitePath = "employee_directory.db"

// Config はデータベース接続設定です。
type Config struct {
	Driver        string `yaml:"driver"`
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	SSLMode       string `yaml:"sslmode"`
	InstanceName  string `yaml:"instance_connection_name"`
	Path          string `yaml:"path"`
	RunMigrations bool   `yaml:"run_migrations"`
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:        os.Getenv("DB_DRIVER"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		InstanceName:  os.Getenv("INSTANCE_CONNECTION_NAME"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// BuildDSN はドライバーごとの接続文字列を生成します。
// InstanceName が設定されている場合は Cloud SQL の Unix ソケット経由で接続します。
func BuildDSN(cfg Config) string {
	switch cfg.Driver {
	case DriverSQLite:
		if cfg.Path == "" {
			return DefaultSQLitePath
		}
		return cfg.Path
	case DriverPostgres:
		host, port := cfg.Host, cfg.Port
		if cfg.InstanceName != "" {
			host, port = "/cloudsql/"+cfg.InstanceName, ""
		}
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		parts := []string{
			"host=" + host,
			"user=" + cfg.User,
			"password=" + cfg.Password,
			"dbname=" + cfg.Name,
			"sslmode=" + sslmode,
		}
		if port != "" {
			parts = append(parts, "port="+port)
		}
		return strings.Join(parts, " ")
	default:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	}
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	dsn := BuildDSN(cfg)
	switch cfg.Driver {
	case DriverMySQL, "":
		return gmysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// ConnectWithRetry は opener で接続を試み、timeout に達するまで再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying...", "error", err)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従ってデータベースへ接続します。
// RunMigrations が有効な場合は接続後にマイグレーションを適用します。
func Open(cfg Config, timeout time.Duration) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), timeout, func(string) (*gorm.DB, error) {
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		m, err := NewMigrator(cfg.Driver, sqlDB)
		if err != nil {
			return nil, err
		}
		if err := m.Up(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}
