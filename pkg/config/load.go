package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/folio/pkg/errors"
)

// Environment variables that override file values.
const (
	EnvCacheBackend = "FOLIO_CACHE_BACKEND"
	EnvRedisAddr    = "FOLIO_REDIS_ADDR"
	EnvMongoURI     = "FOLIO_MONGO_URI"
	EnvServerAddr   = "FOLIO_SERVER_ADDR"
)

// Default returns the configuration built from default tags alone.
func Default() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	return cfg
}

// DefaultPath returns $XDG_CONFIG_HOME/folio/config.toml, falling back to
// the OS user config directory.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		var err error
		if base, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(base, "folio", "config.toml")
}

// Load reads the file at path. An empty path tries DefaultPath and uses
// defaults when it does not exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Decode(data, filepath.Ext(path), cfg); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode %s", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	applyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML or YAML, chosen by file extension. Unknown extensions
// are read as TOML.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	}
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Cache.Backend, EnvCacheBackend)
	set(&cfg.Cache.RedisAddr, EnvRedisAddr)
	set(&cfg.Cache.MongoURI, EnvMongoURI)
	set(&cfg.Server.Addr, EnvServerAddr)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every section and reports the first failing field.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.New(apperr.ErrCodeInvalidInput, "config %s: failed %q check (value %v)",
			strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag(), fe.Value())
	}
	return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "validate config")
}
