package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override, e.g. FLASH_SERVER_PORT.
const EnvPrefix = "FLASH"

var validate = validator.New()

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file. The file must
// exist when a path is given.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of every configuration group.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("corpus.backend", BackendFile)
	v.SetDefault("corpus.dir", "data")
	v.SetDefault("corpus.database_url", "")

	v.SetDefault("session.page_size", 30)
	v.SetDefault("session.rest_seconds", 120)
	v.SetDefault("session.auto_interval_ms", 1200)

	v.SetDefault("speech.enabled", false)
	v.SetDefault("speech.command", "")
	v.SetDefault("speech.args_en", []string{})
	v.SetDefault("speech.args_ko", []string{})
	v.SetDefault("speech.ko_delay_ms", 250)
}
