package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
)

// EnvPrefix namespaces every environment override, e.g. TRACKER_DB or
// TRACKER_LLM_PROVIDER.
const EnvPrefix = "TRACKER"

// DefaultFileName is looked up in the working directory when no explicit
// config file is given.
const DefaultFileName = "tracker.yaml"

// Config models tracker.yaml.
type Config struct {
	DBPath    string          `mapstructure:"db" yaml:"db"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	LLM       llm.LLMConfig   `mapstructure:"llm" yaml:"llm"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
}

type ServerConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	BasePath string `mapstructure:"base_path" yaml:"base_path"`
}

type TelemetryConfig struct {
	// Enabled controls whether AI usage rows are written.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath: "tracker.db",
		Server: ServerConfig{
			Addr:     "127.0.0.1:8080",
			BasePath: "/v1",
		},
		LLM:       llm.DefaultConfig(),
		Telemetry: TelemetryConfig{Enabled: true},
	}
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"db":   "db",
	"addr": "server.addr",
}

// Load layers defaults, the config file, TRACKER_* environment variables
// and any bound flags, in increasing precedence. An empty path looks for
// tracker.yaml in the working directory and tolerates its absence; an
// explicit path must exist.
func Load(v *viper.Viper, path string, flags *pflag.FlagSet) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding env llm.api_key: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every leaf key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("db", d.DBPath)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_path", d.Server.BasePath)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)

	v.SetDefault("llm.enabled", d.LLM.Enabled)
	v.SetDefault("llm.log_calls", d.LLM.LogCalls)
	v.SetDefault("llm.provider", string(d.LLM.Provider))
	v.SetDefault("llm.endpoint", d.LLM.Endpoint)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout_ms", d.LLM.TimeoutMs)
	for task, tc := range d.LLM.Tasks {
		prefix := "llm.tasks." + string(task) + "."
		v.SetDefault(prefix+"temperature", tc.Temperature)
		v.SetDefault(prefix+"max_tokens", tc.MaxTokens)
		v.SetDefault(prefix+"timeout_ms", tc.TimeoutMs)
	}
}

// Validate checks the settings every command needs. LLM settings are
// checked when a client is built, so read-only commands work without one.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("config.db is required")
	}
	if c.Server.Addr == "" {
		return errors.New("config.server.addr is required")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("config.server.base_path must start with '/', got %q", c.Server.BasePath)
	}
	return nil
}

// GenerateDefault renders the default configuration as YAML. The API key
// is never written.
func GenerateDefault() (string, error) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}
	return "# Effort tracker configuration. Every key can be overridden with\n" +
		"# " + EnvPrefix + "_<KEY>, e.g. " + EnvPrefix + "_LLM_PROVIDER=gemini.\n" + string(data), nil
}

// WriteDefault writes the default configuration to path. An existing file
// is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if path == "" {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config %s already exists; use --force to overwrite", path)
	}
	content, err := GenerateDefault()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
