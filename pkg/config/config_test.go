package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Synthesis.PossibilityK != 0.3 {
		t.Fatalf("PossibilityK = %v, want 0.3", cfg.Synthesis.PossibilityK)
	}
	if cfg.Synthesis.EntireMatchingTimes <= 0 {
		t.Fatal("EntireMatchingTimes must be positive")
	}
	if cfg.RNG.Deterministic {
		t.Fatal("Deterministic should default to false (entropy-seeded runs)")
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Synthesis.PossibilityK != DefaultConfig().Synthesis.PossibilityK {
		t.Fatal("LoadConfig() on a missing file did not return defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "graphcut.yaml")

	cfg := DefaultConfig()
	cfg.Synthesis.PossibilityK = 0.7
	cfg.RNG.Deterministic = true
	cfg.RNG.Seed = 1234

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Synthesis.PossibilityK != 0.7 {
		t.Fatalf("PossibilityK = %v, want 0.7", loaded.Synthesis.PossibilityK)
	}
	if !loaded.RNG.Deterministic || loaded.RNG.Seed != 1234 {
		t.Fatalf("RNG = %+v, want Deterministic=true Seed=1234", loaded.RNG)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("CreateDefaultConfigFile() error: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Synthesis.RefinementPasses != DefaultConfig().Synthesis.RefinementPasses {
		t.Fatal("created default config file doesn't round-trip through LoadConfig")
	}
}
