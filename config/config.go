// Package config loads the fileshelf configuration: a TOML file, then
// FILESHELF_* environment overrides, then defaults and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/bobinette/fileshelf/errors"
)

const EnvPrefix = "FILESHELF_"

type Configuration struct {
	API      APIConfiguration      `toml:"api"`
	Session  SessionConfiguration  `toml:"session"`
	Log      LogConfiguration      `toml:"log"`
	Download DownloadConfiguration `toml:"download"`
}

type APIConfiguration struct {
	BaseURL string `toml:"base_url" env:"BASE_URL" validate:"required,url"`

	// Timeout applies to regular calls. Uploads get their own, longer, budgets.
	Timeout             time.Duration `toml:"timeout" env:"TIMEOUT" validate:"gt=0"`
	UploadTimeout       time.Duration `toml:"upload_timeout" env:"UPLOAD_TIMEOUT" validate:"gt=0"`
	FolderUploadTimeout time.Duration `toml:"folder_upload_timeout" env:"FOLDER_UPLOAD_TIMEOUT" validate:"gt=0"`
}

type SessionConfiguration struct {
	// Path of the bolt file holding the token and the user snapshot.
	Path string `toml:"path" env:"SESSION_PATH" validate:"required"`
}

type LogConfiguration struct {
	Level string `toml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
}

type DownloadConfiguration struct {
	Dir string `toml:"dir" env:"DOWNLOAD_DIR"`
}

// DefaultPath is where the configuration of env lives when no file is given.
func DefaultPath(env string) string {
	return filepath.Join("configuration", fmt.Sprintf("config.%s.toml", env))
}

// Load reads the file at path, applies the environment overrides found in
// environ (the process environment when nil), fills the defaults and
// validates the result. A missing file is only an error when required is set.
func Load(path string, required bool, environ map[string]string) (Configuration, error) {
	var cfg Configuration

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Configuration{}, errors.New("error unmarshalling configuration", errors.WithCause(err))
		}
	case os.IsNotExist(err) && !required:
	default:
		return Configuration{}, errors.New("could not read configuration file", errors.WithCause(err))
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Configuration{}, errors.New("invalid environment", errors.WithCause(err))
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
