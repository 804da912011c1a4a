// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment
// variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// EnvTest selects the isolated test data root.
const EnvTest = "test"

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address" env:"SERVER_ADDRESS"`

	// Env names the runtime environment. EnvTest moves the data root.
	Env string `json:"env" env:"CMS_ENV"`

	// Root is the directory holding the documents and the credential file.
	Root string `json:"root" env:"CMS_ROOT"`

	// SessionSecret authenticates the session cookie. When empty a random
	// secret is generated and sessions do not survive a restart.
	SessionSecret string `json:"session_secret" env:"CMS_SESSION_SECRET"`

	// MaxUploadSize limits the body of media uploads in bytes.
	MaxUploadSize int64 `json:"max_upload_size" env:"CMS_MAX_UPLOAD_SIZE"`

	// BcryptCost is the cost used to hash new passwords.
	BcryptCost int `json:"bcrypt_cost" env:"CMS_BCRYPT_COST"`

	// LogLevel is the minimum zap level.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// CertFile and KeyFile enable HTTPS when both are set.
	CertFile string `json:"cert_file" env:"CMS_CERT_FILE"`
	KeyFile  string `json:"key_file" env:"CMS_KEY_FILE"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`
}

// Parse loads a .env file when present, then reads the command-line flags,
// the JSON config file and the environment, each overriding the previous.
func Parse() (*Options, error) {
	_ = godotenv.Load()
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fset *flag.FlagSet, args []string) (*Options, error) {
	options := &Options{}

	fset.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fset.StringVar(&options.Env, "env", "development", "runtime environment")
	fset.StringVar(&options.Root, "root", ".", "directory holding data/ and users.yml")
	fset.StringVar(&options.LogLevel, "log-level", "info", "log level")
	fset.StringVar(&options.Config, "config", "config.json", "path to config file")
	fset.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	options.MaxUploadSize = 10 << 20
	options.BcryptCost = 12

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	// Override the config path with the environment if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		data, err := os.ReadFile(options.Config)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if options.SessionSecret == "" {
		options.SessionSecret = uuid.NewString()
	}

	return options, nil
}

// DataRoot returns the directory holding the documents and the credential
// file.
func (o *Options) DataRoot() string {
	if o.Env == EnvTest {
		return filepath.Join(o.Root, "test")
	}
	return o.Root
}

// DocumentsDir returns the directory of the documents.
func (o *Options) DocumentsDir() string {
	return filepath.Join(o.DataRoot(), "data")
}

// MediaDir returns the directory of the media assets.
func (o *Options) MediaDir() string {
	return filepath.Join(o.DocumentsDir(), "media")
}

// CredentialsPath returns the location of users.yml.
func (o *Options) CredentialsPath() string {
	return filepath.Join(o.DataRoot(), "users.yml")
}

// TLSEnabled reports whether both a certificate and a key are configured.
func (o *Options) TLSEnabled() bool {
	return o.CertFile != "" && o.KeyFile != ""
}
