package config

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeFileSystem struct {
	files map[string]bool
}

func (fs *fakeFileSystem) Exists(path string) bool {
	return fs.files[path]
}

func (fs *fakeFileSystem) LoadEnv(path string) error {
	return nil
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NAME", "ENVIRONMENT", "DEBUG",
		"ENGINE_MODEL", "ENGINE_DEVICE", "ENGINE_BASE_URL", "ENGINE_COMPUTE_TYPE",
		"WHISPER_MODEL", "WHISPER_DEVICE",
		"SERVER_PORT", "PROFILE_NAME",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_NoFilesYieldsDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := Load(WithFileSystem(&fakeFileSystem{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != ServiceName {
		t.Errorf("expected %s, got %s", ServiceName, cfg.Name)
	}
	if cfg.Engine.Model != "small" {
		t.Errorf("expected small, got %s", cfg.Engine.Model)
	}
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
environment: production
engine:
  model: medium
  device: cuda
server:
  port: 9000
profile:
  name: accurate
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(WithFileSystem(&fakeFileSystem{}), WithConfigFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Model != "medium" {
		t.Errorf("expected medium, got %s", cfg.Engine.Model)
	}
	if cfg.Engine.ComputeType != "float16" {
		t.Errorf("cuda must derive float16, got %s", cfg.Engine.ComputeType)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Profile.Name != "accurate" {
		t.Errorf("expected accurate, got %s", cfg.Profile.Name)
	}
	if cfg.Debug {
		t.Error("production must not enable debug by default")
	}
}

func TestLoad_EnvironmentOverridesConfigFile(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("engine:\n  model: medium\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENGINE_MODEL", "large-v3")

	cfg, err := Load(WithFileSystem(&fakeFileSystem{}), WithConfigFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Model != "large-v3" {
		t.Errorf("expected env override large-v3, got %s", cfg.Engine.Model)
	}
}

func TestLoad_LegacyWhisperAliases(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WHISPER_MODEL", "base")
	t.Setenv("WHISPER_DEVICE", "cuda")

	cfg, err := Load(WithFileSystem(&fakeFileSystem{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Model != "base" {
		t.Errorf("WHISPER_MODEL must apply, got %s", cfg.Engine.Model)
	}
	if cfg.Engine.Device != "cuda" {
		t.Errorf("WHISPER_DEVICE must apply, got %s", cfg.Engine.Device)
	}
	if cfg.Engine.ComputeType != "float16" {
		t.Errorf("aliased cuda must derive float16, got %s", cfg.Engine.ComputeType)
	}
}

func TestLoad_ExplicitEngineBeatsLegacyAlias(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WHISPER_MODEL", "base")
	t.Setenv("ENGINE_MODEL", "small")

	cfg, err := Load(WithFileSystem(&fakeFileSystem{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Model != "small" {
		t.Errorf("ENGINE_MODEL must win over WHISPER_MODEL, got %s", cfg.Engine.Model)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("environment: qa\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(WithFileSystem(&fakeFileSystem{}), WithConfigFile(path)); err == nil {
		t.Error("expected validation failure for unknown environment")
	}
}
