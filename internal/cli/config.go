package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stc/pkg/capture"
	"github.com/matzehuels/stc/pkg/compose"
	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/storage"
)

// configFile is the file name looked up in the config directory.
const configFile = "config.toml"

// defaultAddr is where "stc serve" listens unless configured otherwise.
const defaultAddr = "127.0.0.1:8417"

// Config is the on-disk configuration. Every section is optional.
//
//	[storage]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[canvas]
//	width = 1080
//	height = 1350
//
//	[selectors]
//	testimonial = ["div.post", "article"]
//
//	[pages]
//	cache_ttl = "30m"
type Config struct {
	Storage   StorageConfig     `toml:"storage"`
	Canvas    compose.Canvas    `toml:"canvas"`
	Selectors capture.Selectors `toml:"selectors"`
	Server    ServerConfig      `toml:"server"`
	Pages     PagesConfig       `toml:"pages"`
}

// StorageConfig selects the backend that holds the selection.
type StorageConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures "stc serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// PagesConfig configures the page snapshot cache.
type PagesConfig struct {
	TTL duration `toml:"cache_ttl"`
}

// duration decodes TOML strings such as "30m" or "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage:   StorageConfig{Backend: storage.BackendFile},
		Canvas:    compose.DefaultCanvas(),
		Selectors: capture.DefaultSelectors(),
		Server:    ServerConfig{Addr: defaultAddr},
		Pages:     PagesConfig{TTL: duration{24 * time.Hour}},
	}
}

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file yields DefaultConfig; a missing explicit file is an
// error.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Selectors = cfg.Selectors.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "", storage.BackendFile, storage.BackendMemory, storage.BackendRedis, storage.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown storage backend %q", c.Storage.Backend)
	}
	if err := c.Canvas.Validate(); err != nil {
		return err
	}
	if err := c.Selectors.Validate(); err != nil {
		return err
	}
	if c.Pages.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pages.cache_ttl must not be negative")
	}
	return nil
}
