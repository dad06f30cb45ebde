package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BackendConfig describes the external backend service the portal proxies to.
// One canonical path per resource; no endpoint probing.
type BackendConfig struct {
	BaseURL          string        `mapstructure:"baseUrl"`
	AgreementPath    string        `mapstructure:"agreementPath"`
	TOSDocumentsPath string        `mapstructure:"tosDocumentsPath"`
	TOSUploadPath    string        `mapstructure:"tosUploadPath"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

func DefaultBackendConfig() BackendConfig {
	return BackendConfig{
		BaseURL:          "http://localhost:9090",
		AgreementPath:    "/investors/%s/generate-agreement",
		TOSDocumentsPath: "/tos/documents",
		TOSUploadPath:    "/tos/documents",
		Timeout:          15 * time.Second,
	}
}

// BackendConfigHolder serves the current backend config and hot-reloads it
// when the config file changes.
type BackendConfigHolder struct {
	current atomic.Value // holds BackendConfig
}

func NewBackendConfigHolder() (*BackendConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("backend")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/irportal/config")
	v.AddConfigPath("/etc/irportal")
	v.AddConfigPath(".")

	v.SetEnvPrefix("IRPORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBackendConfig()
	v.SetDefault("backend.baseUrl", defaults.BaseURL)
	v.SetDefault("backend.agreementPath", defaults.AgreementPath)
	v.SetDefault("backend.tosDocumentsPath", defaults.TOSDocumentsPath)
	v.SetDefault("backend.tosUploadPath", defaults.TOSUploadPath)
	v.SetDefault("backend.timeout", defaults.Timeout)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg BackendConfig
	if err := v.UnmarshalKey("backend", &cfg); err != nil {
		return nil, err
	}
	if err := validateBackendConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BackendConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		var next BackendConfig
		if err := v.UnmarshalKey("backend", &next); err != nil {
			log.Printf("config: backend reload failed: %v", err)
			return
		}
		if err := validateBackendConfig(next); err != nil {
			log.Printf("config: backend reload rejected: %v", err)
			return
		}
		holder.current.Store(next)
	})

	return holder, nil
}

// NewStaticBackendConfigHolder returns a holder with a fixed config and no
// file watching. Used by tests and one-shot tooling.
func NewStaticBackendConfigHolder(cfg BackendConfig) (*BackendConfigHolder, error) {
	if err := validateBackendConfig(cfg); err != nil {
		return nil, err
	}
	holder := &BackendConfigHolder{}
	holder.current.Store(cfg)
	return holder, nil
}

func (h *BackendConfigHolder) Current() BackendConfig {
	return h.current.Load().(BackendConfig)
}

func validateBackendConfig(cfg BackendConfig) error {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return errors.New("backend baseUrl is required")
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return errors.New("backend baseUrl must be http(s)")
	}
	if strings.TrimSpace(cfg.TOSDocumentsPath) == "" {
		return errors.New("backend tosDocumentsPath is required")
	}
	if cfg.Timeout <= 0 {
		return errors.New("backend timeout must be positive")
	}
	return nil
}
