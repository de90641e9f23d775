package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"bookshelf/library"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

const (
	envPrefix     = "BOOKSHELF_"
	configPathEnv = envPrefix + "CONFIG"
	defaultFile   = "bookshelf.yaml"
)

type Config struct {
	Store StoreConfig `koanf:"store"`
	Redis RedisConfig `koanf:"redis"`
	Log   LogConfig   `koanf:"log"`
	// Seed adds the sample books when the collection is empty.
	Seed bool `koanf:"seed"`
}

type StoreConfig struct {
	Driver string `koanf:"driver"`
	// Path is the database or JSON file for the sqlite and file drivers.
	Path string `koanf:"path"`
	// Slot names the key the collection is stored under.
	Slot string `koanf:"slot"`
}

type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	Timeout  time.Duration `koanf:"timeout"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func defaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
			Slot:   library.DefaultSlot,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Timeout: 5 * time.Second,
		},
		Log:  LogConfig{Level: "warn"},
		Seed: true,
	}
}

// New layers configuration from, lowest precedence first: built-in defaults,
// the YAML file at path (or $BOOKSHELF_CONFIG, or ./bookshelf.yaml if present),
// and BOOKSHELF_* environment variables, after loading any .env file.
func New(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	path, explicit := resolvePath(path)
	if _, err := os.Stat(path); explicit || !errors.Is(err, fs.ErrNotExist) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath reports the config file to read and whether the caller asked
// for it explicitly. The implicit default is skipped when missing.
func resolvePath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if p := os.Getenv(configPathEnv); p != "" {
		return p, true
	}
	return defaultFile, false
}

// envKey maps BOOKSHELF_STORE_DRIVER to store.driver.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}

func (cfg *Config) finalize() error {
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case DriverSQLite:
		if cfg.Store.Path == "" {
			cfg.Store.Path = "bookshelf.db"
		}
	case DriverFile:
		if cfg.Store.Path == "" {
			cfg.Store.Path = "books.json"
		}
	case DriverRedis, DriverMemory:
	default:
		return errors.Errorf("unknown store driver %q (want sqlite, file, redis or memory)", cfg.Store.Driver)
	}

	if cfg.Store.Slot == "" {
		return errors.New("store.slot can't be empty")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	return nil
}

// StoreOptions converts the store settings for library.OpenSlot.
func (cfg *Config) StoreOptions() library.StoreOptions {
	return library.StoreOptions{
		Driver:        cfg.Store.Driver,
		Path:          cfg.Store.Path,
		Slot:          cfg.Store.Slot,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisTimeout:  cfg.Redis.Timeout,
	}
}
