package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

/*
 * Settings with sensible defaults go through viper so they can be left
 * unset. Required values (credentials, keys) are looked up directly and
 * fail loudly when missing.
 */
func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("GAME_SESSION_TTL", "30m")
	v.SetDefault("GAME_DEFAULT_DIFFICULTY", "beginner")
	v.SetDefault("JWT_TOKEN_LIFETIME", "720h")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)

	return v
}

func requireEnv(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("no %s env variable set", name)
	}
	return value, nil
}

/*
 * requireSecret reads NAME, falling back to the file named by NAME_FILE
 * (docker secrets).
 */
func requireSecret(name string) ([]byte, error) {
	if value, ok := os.LookupEnv(name); ok {
		return []byte(value), nil
	}
	path, ok := os.LookupEnv(name + "_FILE")
	if !ok {
		return nil, fmt.Errorf("no %s or %s_FILE env variable set", name, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s_FILE: %w", name, err)
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	return ok && development != "" && development != "0"
}
