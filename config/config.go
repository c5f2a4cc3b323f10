// Package config loads the discordctl configuration from YAML with environment overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/WelcomerTeam/Discord/discord"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

type Configuration struct {
	REST    RESTConfiguration    `yaml:"rest"`
	State   StateConfiguration   `yaml:"state"`
	Logging LoggingConfiguration `yaml:"logging"`
}

type RESTConfiguration struct {
	// Token is sent as the Authorization header, including the "Bot " prefix.
	Token string `yaml:"token"`

	ApplicationID uint64 `yaml:"application_id"`

	// ProxyURL routes requests through a twilight-http-proxy compatible proxy.
	// When empty requests go to Endpoint directly.
	ProxyURL string `yaml:"proxy_url"`
	Endpoint string `yaml:"endpoint"`
	Version  string `yaml:"version"`
	Debug    bool   `yaml:"debug"`
}

type StateConfiguration struct {
	// Backend is one of memory, redis or none.
	Backend string `yaml:"backend"`

	RedisAddress  string `yaml:"redis_address"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
}

type LoggingConfiguration struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`

	// File enables a rotated JSON log next to the console output.
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is present.
func Default() Configuration {
	return Configuration{
		REST: RESTConfiguration{
			Endpoint: "https://discord.com",
			Version:  discord.APIVersion,
		},
		State: StateConfiguration{
			Backend:     BackendMemory,
			RedisPrefix: "discord",
		},
		Logging: LoggingConfiguration{
			Level:      zerolog.InfoLevel.String(),
			Console:    true,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Validate checks the configuration is usable.
func (c Configuration) Validate() error {
	switch c.State.Backend {
	case BackendMemory, BackendNone:
	case BackendRedis:
		if c.State.RedisAddress == "" {
			return fmt.Errorf("redis backend has no redis_address: %w", ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("unknown state backend %q: %w", c.State.Backend, ErrInvalidConfiguration)
	}

	if c.REST.Endpoint == "" && c.REST.ProxyURL == "" {
		return fmt.Errorf("rest has no endpoint or proxy_url: %w", ErrInvalidConfiguration)
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("unknown logging level %q: %w", c.Logging.Level, ErrInvalidConfiguration)
	}

	return nil
}

// LogLevel returns the configured level, defaulting to info.
func (c Configuration) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil || c.Logging.Level == "" {
		return zerolog.InfoLevel
	}

	return level
}

type ConfigProvider interface {
	GetConfig(ctx context.Context) (*Configuration, error)
	SaveConfig(ctx context.Context, config *Configuration) error
}

// ConfigProviderFromPath reads and writes a YAML file. A missing file yields the
// defaults. Values from the environment and a .env file take precedence.
type ConfigProviderFromPath struct {
	path    string
	envFile string
	logger  zerolog.Logger
}

func NewConfigProviderFromPath(path, envFile string, logger zerolog.Logger) ConfigProviderFromPath {
	return ConfigProviderFromPath{path: path, envFile: envFile, logger: logger}
}

func (c ConfigProviderFromPath) GetConfig(_ context.Context) (*Configuration, error) {
	c.logger.Debug().
		Str("path", c.path).
		Msg("Loading configuration")

	config := Default()

	data, err := os.ReadFile(c.path)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		c.logger.Debug().Str("path", c.path).Msg("No config file, using defaults")
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if c.envFile != "" {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := applyEnvironment(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("backend", config.State.Backend).
		Bool("proxy", config.REST.ProxyURL != "").
		Msg("Configuration loaded")

	return &config, nil
}

func (c ConfigProviderFromPath) SaveConfig(_ context.Context, config *Configuration) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	c.logger.Debug().Str("path", c.path).Msg("Saving configuration")

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func applyEnvironment(config *Configuration) error {
	overrides := map[string]*string{
		"DISCORD_TOKEN":          &config.REST.Token,
		"DISCORD_PROXY_URL":      &config.REST.ProxyURL,
		"DISCORD_ENDPOINT":       &config.REST.Endpoint,
		"DISCORD_STATE_BACKEND":  &config.State.Backend,
		"DISCORD_REDIS_ADDRESS":  &config.State.RedisAddress,
		"DISCORD_REDIS_PASSWORD": &config.State.RedisPassword,
		"DISCORD_REDIS_PREFIX":   &config.State.RedisPrefix,
		"DISCORD_LOG_LEVEL":      &config.Logging.Level,
		"DISCORD_LOG_FILE":       &config.Logging.File,
	}

	for key, target := range overrides {
		if value, ok := os.LookupEnv(key); ok {
			*target = value
		}
	}

	if value, ok := os.LookupEnv("DISCORD_APPLICATION_ID"); ok {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("DISCORD_APPLICATION_ID is not a snowflake: %w", ErrInvalidConfiguration)
		}

		config.REST.ApplicationID = id
	}

	if value, ok := os.LookupEnv("DISCORD_REDIS_DB"); ok {
		db, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("DISCORD_REDIS_DB is not a number: %w", ErrInvalidConfiguration)
		}

		config.State.RedisDB = db
	}

	return nil
}
