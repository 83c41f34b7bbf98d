// Package config loads client configuration from a YAML file with
// PROJECTX_* environment variable overrides on top.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration strings ("30s", "24h") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "config: bad duration %q", raw)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// GatewayConfig identifies the gateway and the credentials used against it.
type GatewayConfig struct {
	BaseURL        string   `yaml:"base_url"`
	Username       string   `yaml:"username"`
	APIKey         string   `yaml:"api_key"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

// SessionConfig tunes the token lifecycle policy.
type SessionConfig struct {
	// TokenTTL is the local advisory lifetime of a token. The gateway
	// stays authoritative; this only avoids validating a token that is
	// certainly dead.
	TokenTTL Duration `yaml:"token_ttl"`
	// ValidateInterval is how long a token is trusted between validation
	// calls. Zero validates before every request; negative trusts the
	// token until the TTL passes.
	ValidateInterval Duration `yaml:"validate_interval"`
	// CacheBackend selects token persistence: "file", "badger" or "none".
	CacheBackend string `yaml:"cache_backend"`
	CacheDir     string `yaml:"cache_dir"`
	// EncryptionKey encrypts the badger cache at rest (hex or base64,
	// 32 bytes). Ignored by the file backend.
	EncryptionKey string `yaml:"encryption_key"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	OutputFile string `yaml:"output_file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultBaseURL is the demo gateway.
const DefaultBaseURL = "https://gateway-api-demo.s2f.projectx.com"

// Default returns the configuration used when no file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Gateway: GatewayConfig{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: Duration(30 * time.Second),
		},
		Session: SessionConfig{
			TokenTTL:     Duration(24 * time.Hour),
			CacheBackend: "file",
			CacheDir:     filepath.Join(home, ".projectx"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path, applies environment overrides and
// fills unset fields with defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "config: read file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "config: parse yaml")
		}
	}

	applyEnv(cfg)

	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = DefaultBaseURL
	}
	if cfg.Gateway.RequestTimeout == 0 {
		cfg.Gateway.RequestTimeout = Duration(30 * time.Second)
	}
	if cfg.Session.TokenTTL == 0 {
		cfg.Session.TokenTTL = Duration(24 * time.Hour)
	}
	if cfg.Session.CacheBackend == "" {
		cfg.Session.CacheBackend = "file"
	}
	if cfg.Gateway.Username == "" || cfg.Gateway.APIKey == "" {
		return nil, errors.New("config: username and api key are required")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PROJECTX_USERNAME"); v != "" {
		cfg.Gateway.Username = v
	}
	if v := os.Getenv("PROJECTX_API_KEY"); v != "" {
		cfg.Gateway.APIKey = v
	}
	if v := os.Getenv("PROJECTX_BASE_URL"); v != "" {
		cfg.Gateway.BaseURL = v
	}
	if v := os.Getenv("PROJECTX_CACHE_DIR"); v != "" {
		cfg.Session.CacheDir = v
	}
	if v := os.Getenv("PROJECTX_ENCRYPTION_KEY"); v != "" {
		cfg.Session.EncryptionKey = v
	}
}
