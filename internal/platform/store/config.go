package store

import (
	"time"

	"shelfwatch/internal/platform/config"
)

// Config selects and configures the backend
type Config struct {
	Driver Driver

	PG     PGConfig
	SQLite SQLiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// SQLiteConfig configures the embedded sqlite file
type SQLiteConfig struct {
	// Path is a file path or ":memory:"
	Path        string
	LogSQL      bool
	SlowQueryMs int
}

// FromConfig reads SERVICE_* keys
//
//	SERVICE_STORE_DRIVER   postgres | sqlite (default sqlite)
//	SERVICE_PGSQL_DBURL    required for postgres
//	SERVICE_SQLITE_PATH    default shelfwatch.db
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("SERVICE_")
	out := Config{
		Driver: Driver(c.MayEnum("STORE_DRIVER", string(DriverSQLite), string(DriverPostgres), string(DriverSQLite))),
	}
	switch out.Driver {
	case DriverPostgres:
		out.PG = PGConfig{
			URL:            c.MustString("PGSQL_DBURL"),
			MaxConns:       int32(c.MayInt("PGSQL_MAX_CONNS", 4)),
			LogSQL:         c.MayBool("PGSQL_LOG_SQL", false),
			SlowQueryMs:    c.MayInt("PGSQL_SLOW_MS", 250),
			ConnectRetries: c.MayInt("PGSQL_CONNECT_RETRIES", 20),
			PingTimeout:    c.MayDuration("PGSQL_PING_TIMEOUT", 3*time.Second),
		}
	case DriverSQLite:
		out.SQLite = SQLiteConfig{
			Path:        c.MayString("SQLITE_PATH", "shelfwatch.db"),
			LogSQL:      c.MayBool("SQLITE_LOG_SQL", false),
			SlowQueryMs: c.MayInt("SQLITE_SLOW_MS", 250),
		}
	}
	return out
}
