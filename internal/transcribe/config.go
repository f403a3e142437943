package transcribe

import (
	"fmt"
	"time"
)

// Defaults for the engine sidecar connection.
const (
	DefaultEngineURL = "http://localhost:8387"
	DefaultModel     = "small"
	DefaultDevice    = "cpu"
)

// EngineConfig holds recognition-engine configuration. All fields are
// deployment-time settings; the resulting handle is immutable after load.
type EngineConfig struct {
	// BaseURL is the faster-whisper sidecar endpoint.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Model is the model identifier. A multilingual model (e.g. "small", not
	// "small.en") is required for code-switched speech.
	Model string `yaml:"model" mapstructure:"model"`
	// Device selects cpu or cuda.
	Device string `yaml:"device" mapstructure:"device"`
	// ComputeType is the precision; derived from Device when empty.
	ComputeType string `yaml:"compute_type" mapstructure:"compute_type"`
	// RequestTimeout bounds a single engine invocation.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	// MaxConcurrency bounds concurrent engine invocations.
	MaxConcurrency int `yaml:"max_concurrency" mapstructure:"max_concurrency"`
	// AcquireWait is how long a request waits for an engine slot before
	// being rejected as busy.
	AcquireWait time.Duration `yaml:"acquire_wait" mapstructure:"acquire_wait"`
	// UseStub replaces the sidecar with the deterministic stub engine.
	UseStub bool `yaml:"use_stub" mapstructure:"use_stub"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *EngineConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultEngineURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Device == "" {
		c.Device = DefaultDevice
	}
	if c.ComputeType == "" {
		if c.Device == "cuda" {
			c.ComputeType = "float16"
		} else {
			c.ComputeType = "int8"
		}
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 120 * time.Second
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 2
	}
	if c.AcquireWait == 0 {
		c.AcquireWait = 5 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *EngineConfig) Validate() error {
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("engine.max_concurrency must be >= 1 (got: %d)", c.MaxConcurrency)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("engine.request_timeout must be non-negative (got: %v)", c.RequestTimeout)
	}
	if c.AcquireWait < 0 {
		return fmt.Errorf("engine.acquire_wait must be non-negative (got: %v)", c.AcquireWait)
	}
	return nil
}

// UploadConfig holds upload validation and ephemeral storage configuration.
type UploadConfig struct {
	// AllowedExtensions is the upload allow-list, lowercase with leading dot.
	AllowedExtensions []string `yaml:"allowed_extensions" mapstructure:"allowed_extensions"`
	// TempDir is where ephemeral upload files are created. Empty means the
	// system default.
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *UploadConfig) ApplyDefaults() {
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = []string{".wav", ".webm", ".mp3", ".ogg", ".m4a"}
	}
}

// Validate checks the configuration for invalid values.
func (c *UploadConfig) Validate() error {
	for _, ext := range c.AllowedExtensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("upload.allowed_extensions entries must start with a dot (got: %q)", ext)
		}
	}
	return nil
}

// ProfileConfig selects and tweaks the deployment's tuning profile.
type ProfileConfig struct {
	// Name selects the preset: fast, accurate, or bilingual-normalize.
	Name string `yaml:"name" mapstructure:"name"`
	// InitialPrompt optionally primes decoding with domain vocabulary.
	InitialPrompt string `yaml:"initial_prompt" mapstructure:"initial_prompt"`
	// ExposeDetection overrides whether detected-language metadata is
	// included in responses. Nil keeps the preset's behavior.
	ExposeDetection *bool `yaml:"expose_detection" mapstructure:"expose_detection"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *ProfileConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ProfileFast
	}
}

// Validate checks that the selected profile exists.
func (c *ProfileConfig) Validate() error {
	if _, err := ProfileByName(c.Name); err != nil {
		return err
	}
	return nil
}

// Resolve returns the preset named by the config with overrides applied.
func (c *ProfileConfig) Resolve() (Profile, error) {
	p, err := ProfileByName(c.Name)
	if err != nil {
		return Profile{}, err
	}
	if c.InitialPrompt != "" {
		p.InitialPrompt = c.InitialPrompt
	}
	if c.ExposeDetection != nil {
		p.ExposeDetection = *c.ExposeDetection
	}
	return p, nil
}
