package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

func NewDatabase() (*Database, error) {
	var (
		db  Database
		err error
	)

	fields := []struct {
		name string
		dst  *string
	}{
		{"POSTGRES_USER", &db.Username},
		{"POSTGRES_HOST", &db.Host},
		{"POSTGRES_DB", &db.DBName},
		{"POSTGRES_SSLMODE", &db.SSLMode},
	}
	for _, f := range fields {
		if *f.dst, err = requireEnv(f.name); err != nil {
			return nil, err
		}
	}

	password, err := requireSecret("POSTGRES_PASSWORD")
	if err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}
	db.Password = string(password)

	portStr, err := requireEnv("POSTGRES_PORT")
	if err != nil {
		return nil, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("unable to convert POSTGRES_PORT to int: %w", err)
	}
	db.Port = uint16(port)

	return &db, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

// DatabaseURL prefers DATABASE_URL and falls back to the POSTGRES_* set.
func DatabaseURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, nil
	}
	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return cfg.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DatabaseURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
