package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rankmath/repair-action-scheduler/pkg/config"
)

// tlsConfigName is the name the TLS config is registered under with the driver
const tlsConfigName = "ras"

var tlsOnce sync.Once // Ensure TLS config is registered only once

// Connection wraps the *sql.DB used by the repair run.
// The run is strictly sequential, so the pool is kept small.
type Connection struct {
	db     *sql.DB
	schema string
}

// DSN builds the driver DSN from config
func DSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	if cfg.Charset != "" {
		mc.Params = map[string]string{"charset": cfg.Charset}
	}
	if cfg.TLS {
		mc.TLSConfig = tlsConfigName
	}
	return mc.FormatDSN()
}

// Open connects to MySQL and verifies the connection
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Connection, error) {
	if cfg.TLS {
		tlsOnce.Do(func() {
			if err := mysql.RegisterTLSConfig(tlsConfigName, &tls.Config{
				MinVersion: tls.VersionTLS12,
				ServerName: cfg.Host,
			}); err != nil {
				// Just log as we can't return error from sync.Once
				log.Printf("Failed to register TLS config: %v\n", err)
			}
		})
	}

	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✅ Database connection established (%s@%s/%s)", cfg.User, cfg.Host, cfg.Name)
	return &Connection{db: db, schema: cfg.Name}, nil
}

// DB returns the underlying *sql.DB connection
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Schema returns the database (schema) name the connection uses
func (c *Connection) Schema() string {
	return c.schema
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.db.Close()
}
