package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/iskolar-ocr/internal/config"
)

// Settings describe how to reach the check-log database.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	MaxOpen  int
	MaxIdle  int
}

// SettingsFromEnv reads the standard PG* variables
func SettingsFromEnv() Settings {
	return Settings{
		Host:     config.GetEnv("PGHOST", "localhost"),
		Port:     config.GetEnv("PGPORT", "5432"),
		User:     config.GetEnv("PGUSER", "iskolar"),
		Password: config.GetEnv("PGPASSWORD", ""),
		Database: config.GetEnv("PGDATABASE", "iskolar"),
		SSLMode:  config.GetEnv("PGSSLMODE", "disable"),
		MaxOpen:  config.GetEnvInt("PG_MAX_OPEN_CONNS", 20),
		MaxIdle:  config.GetEnvInt("PG_MAX_IDLE_CONNS", 10),
	}
}

// DSN renders the settings as a postgres:// URL
func (s Settings) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   s.Host + ":" + s.Port,
		Path:   "/" + s.Database,
	}
	if s.Password != "" {
		u.User = url.UserPassword(s.User, s.Password)
	} else {
		u.User = url.User(s.User)
	}
	q := url.Values{}
	q.Set("sslmode", s.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Connection holds the database connection
type Connection struct {
	DB *sql.DB
}

// NewConnection opens and pings the database
func NewConnection(ctx context.Context, s Settings) (*Connection, error) {
	db, err := sql.Open("postgres", s.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(s.MaxOpen)
	db.SetMaxIdleConns(s.MaxIdle)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{DB: db}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}
