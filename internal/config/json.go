package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileConfig mirrors Config for JSON files. Absent keys leave the current value alone.
// Durations are Go duration strings such as "1h" or "90s".
type fileConfig struct {
	HTTPAddr         *string `json:"addr"`
	HealthAddr       *string `json:"health_addr"`
	DataDir          *string `json:"data_dir"`
	UsersFile        *string `json:"users_file"`
	NotesFile        *string `json:"notes_file"`
	SecretKey        *string `json:"jwt_key"`
	TokenTTL         *string `json:"token_ttl"`
	BcryptCost       *int    `json:"bcrypt_cost"`
	NotesRequireAuth *bool   `json:"notes_auth"`
	ShutdownTimeout  *string `json:"shutdown_timeout"`
	Dev              *bool   `json:"dev"`
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&c.HTTPAddr, fc.HTTPAddr)
	setString(&c.HealthAddr, fc.HealthAddr)
	setString(&c.DataDir, fc.DataDir)
	setString(&c.UsersFile, fc.UsersFile)
	setString(&c.NotesFile, fc.NotesFile)
	setString(&c.SecretKey, fc.SecretKey)
	if fc.BcryptCost != nil {
		c.BcryptCost = *fc.BcryptCost
	}
	if fc.NotesRequireAuth != nil {
		c.NotesRequireAuth = *fc.NotesRequireAuth
	}
	if fc.Dev != nil {
		c.Dev = *fc.Dev
	}
	if err := setDuration(&c.TokenTTL, fc.TokenTTL, "token_ttl"); err != nil {
		return err
	}
	return setDuration(&c.ShutdownTimeout, fc.ShutdownTimeout, "shutdown_timeout")
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, key string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}
