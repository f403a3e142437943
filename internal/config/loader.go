package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file operations so the loader can be tested without
// touching the real filesystem.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds loader dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads configuration from config.yml, .env, and the environment,
// applies defaults, honors the legacy WHISPER_* aliases, and validates the
// result.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	if lc.ConfigFile == "" {
		lc.ConfigFile = findFirst(lc.FileSystem, configSearchPaths())
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findFirst(lc.FileSystem, envSearchPaths())
	}

	// .env first so viper's automatic env binding sees its variables.
	if lc.EnvFile != "" {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", lc.EnvFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", lc.ConfigFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyLegacyAliases(cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindEnvKeys registers the nested keys that may be overridden from the
// environment. AutomaticEnv alone cannot discover nested keys absent from the
// config file.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"name", "environment", "version", "debug",
		"logging.level", "logging.format", "logging.output",
		"server.host", "server.port", "server.max_body_size",
		"engine.base_url", "engine.model", "engine.device", "engine.compute_type",
		"engine.max_concurrency",
		"upload.temp_dir",
		"profile.name",
		"telemetry.enabled", "telemetry.endpoint",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// applyLegacyAliases maps the original deployment's WHISPER_* variables onto
// the engine section. Explicit ENGINE_* variables win.
func applyLegacyAliases(cfg *Config) {
	if cfg.Engine.Model == "" {
		if m := os.Getenv("WHISPER_MODEL"); m != "" {
			cfg.Engine.Model = m
		}
	}
	if cfg.Engine.Device == "" {
		if d := os.Getenv("WHISPER_DEVICE"); d != "" {
			cfg.Engine.Device = d
		}
	}
}

func configSearchPaths() []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", ServiceName),
		"./config/config.yml",
		"./config.yml",
	}
}

func envSearchPaths() []string {
	return []string{
		fmt.Sprintf(".env.%s", ServiceName),
		".env",
	}
}

func findFirst(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}
