package runtime

import (
	"fmt"
	"net/url"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
	DriverSQLite   = "sqlite"
)

// Config represents database connection configuration.
type Config struct {
	Driver   string
	Host     string
	Port     int
	Database string // PostgreSQL database name
	Service  string // Oracle service name
	User     string
	Password string
	SSLMode  string
	DSN      string // SQLite file, ":memory:" or libsql:// URL
}

// DefaultPostgresConfig returns the PostgreSQL defaults of the CDC lab setup.
func DefaultPostgresConfig() *Config {
	return &Config{
		Driver:   DriverPostgres,
		Host:     "localhost",
		Port:     5432,
		Database: "cdcdb",
		User:     "datauser",
		Password: "DataPassword123",
		SSLMode:  "disable",
	}
}

// DefaultOracleConfig returns the Oracle defaults of the CDC lab setup.
func DefaultOracleConfig() *Config {
	return &Config{
		Driver:   DriverOracle,
		Host:     "localhost",
		Port:     1521,
		Service:  "XEPDB1",
		User:     "datauser",
		Password: "DataPassword123",
	}
}

// DefaultSQLiteConfig returns a configuration for a local SQLite file.
func DefaultSQLiteConfig() *Config {
	return &Config{
		Driver: DriverSQLite,
		DSN:    "churn.db",
	}
}

// Validate checks the fields required by the configured driver.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverOracle:
		if c.Host == "" {
			return &ValidationError{Field: "host", Message: "must not be empty"}
		}
		if c.Port <= 0 || c.Port > 65535 {
			return &ValidationError{Field: "port", Message: fmt.Sprintf("out of range: %d", c.Port)}
		}
		if c.User == "" {
			return &ValidationError{Field: "user", Message: "must not be empty"}
		}
		if c.Driver == DriverOracle && c.Service == "" {
			return &ValidationError{Field: "service", Message: "must not be empty"}
		}
	case DriverSQLite:
		if c.DSN == "" {
			return &ValidationError{Field: "dsn", Message: "must not be empty"}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
	return nil
}

// Address returns host:port, or the DSN for SQLite.
func (c *Config) Address() string {
	if c.Driver == DriverSQLite {
		return c.DSN
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// buildConnectionString builds a PostgreSQL connection string from config.
func buildConnectionString(config *Config) string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	port := config.Port
	if port == 0 {
		port = 5432
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.User, config.Password),
		Host:     fmt.Sprintf("%s:%d", config.Host, port),
		Path:     "/" + config.Database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// buildOracleURL builds a go-ora connection URL from config.
func buildOracleURL(config *Config) string {
	port := config.Port
	if port == 0 {
		port = 1521
	}
	return go_ora.BuildUrl(config.Host, port, config.Service, config.User, config.Password, nil)
}

// sqliteDriverName picks the database/sql driver for a SQLite DSN. Remote
// libSQL databases are reached through the libsql driver, local files and
// ":memory:" through modernc's pure-Go sqlite.
func sqliteDriverName(dsn string) string {
	for _, prefix := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "libsql"
		}
	}
	return "sqlite"
}
