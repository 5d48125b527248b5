package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultBaseURL             = "http://localhost:3000/api"
	DefaultTimeout             = 30 * time.Second
	DefaultUploadTimeout       = 2 * time.Minute
	DefaultFolderUploadTimeout = 5 * time.Minute
)

// ApplyDefaults fills the zero values of cfg.
func ApplyDefaults(cfg *Configuration) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.API.UploadTimeout == 0 {
		cfg.API.UploadTimeout = DefaultUploadTimeout
	}
	if cfg.API.FolderUploadTimeout == 0 {
		cfg.API.FolderUploadTimeout = DefaultFolderUploadTimeout
	}

	if cfg.Session.Path == "" {
		cfg.Session.Path = defaultSessionPath()
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if cfg.Download.Dir == "" {
		cfg.Download.Dir = "."
	}
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fileshelf.session.db"
	}
	return filepath.Join(dir, "fileshelf", "session.db")
}
