// Package config builds the server configuration from defaults, an optional
// JSON file and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SecretEnv is consulted when no signing key is given on the command line or in the file.
const SecretEnv = "NOTES_JWT_KEY"

// Config holds runtime settings. It is fixed for the process lifetime.
type Config struct {
	HTTPAddr         string
	HealthAddr       string // empty disables the gRPC health listener
	DataDir          string
	UsersFile        string
	NotesFile        string
	SecretKey        string
	TokenTTL         time.Duration
	BcryptCost       int
	NotesRequireAuth bool
	ShutdownTimeout  time.Duration
	Dev              bool
}

// Default returns the development defaults. SecretKey is intentionally empty.
func Default() Config {
	return Config{
		HTTPAddr:        ":3000",
		DataDir:         ".",
		UsersFile:       "users.json",
		NotesFile:       "db.json",
		TokenTTL:        time.Hour,
		BcryptCost:      10,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load parses args (without the program name) on top of defaults.
func Load(args []string) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("notes-server", flag.ContinueOnError)
	path := fs.String("config", "", "path to JSON config file")
	cfg.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path != "" {
		if err := cfg.overlayFile(*path); err != nil {
			return nil, err
		}
		// flags win over the file
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv(SecretEnv)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.HTTPAddr, "addr", c.HTTPAddr, "HTTP listen address")
	fs.StringVar(&c.HealthAddr, "health-addr", c.HealthAddr, "gRPC health listen address (empty = disabled)")
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "directory holding the collection files")
	fs.StringVar(&c.UsersFile, "users-file", c.UsersFile, "users collection file name")
	fs.StringVar(&c.NotesFile, "notes-file", c.NotesFile, "notes collection file name")
	fs.StringVar(&c.SecretKey, "jwt-key", c.SecretKey, "HS256 signing key (or $"+SecretEnv+")")
	fs.DurationVar(&c.TokenTTL, "token-ttl", c.TokenTTL, "access token TTL")
	fs.IntVar(&c.BcryptCost, "bcrypt-cost", c.BcryptCost, "bcrypt work factor")
	fs.BoolVar(&c.NotesRequireAuth, "notes-auth", c.NotesRequireAuth, "require a bearer token on /notes")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "graceful shutdown timeout")
	fs.BoolVar(&c.Dev, "dev", c.Dev, "development logging and gRPC reflection")
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.HTTPAddr == "":
		return errors.New("config: addr is empty")
	case c.DataDir == "":
		return errors.New("config: data-dir is empty")
	case c.UsersFile == "" || c.NotesFile == "":
		return errors.New("config: collection file name is empty")
	case c.UsersFile == c.NotesFile:
		return errors.New("config: users-file and notes-file must differ")
	case c.SecretKey == "":
		return fmt.Errorf("config: jwt-key is required (flag, file or $%s)", SecretEnv)
	case c.TokenTTL <= 0:
		return fmt.Errorf("config: token-ttl must be positive, got %s", c.TokenTTL)
	case c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost:
		return fmt.Errorf("config: bcrypt-cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("config: shutdown-timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
