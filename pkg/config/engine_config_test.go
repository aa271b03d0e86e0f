package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultEngineConfigIsValid(t *testing.T) {
	if err := DefaultEngineConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}
}

func TestParseEngineConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *EngineConfig)
	}{
		{
			name: "durations and overrides",
			yamlContent: `
frame:
  targetPeriod: 16.666ms
  maxElapsed: 60ms
ambient:
  softTarget: 20
  spawnInterval: 1.5s
spotlight:
  nameInterval: 30ms
  effects: [zoom]
rotation:
  autoInterval: 5s
  autoStart: false
`,
			validate: func(t *testing.T, cfg *EngineConfig) {
				if cfg.Frame.TargetPeriod != 16666*time.Microsecond {
					t.Errorf("expected targetPeriod = 16.666ms, got %v", cfg.Frame.TargetPeriod)
				}
				if cfg.Ambient.SoftTarget != 20 {
					t.Errorf("expected softTarget = 20, got %d", cfg.Ambient.SoftTarget)
				}
				if cfg.Ambient.SpawnInterval != 1500*time.Millisecond {
					t.Errorf("expected spawnInterval = 1.5s, got %v", cfg.Ambient.SpawnInterval)
				}
				if cfg.Spotlight.NameInterval != 30*time.Millisecond {
					t.Errorf("expected nameInterval = 30ms, got %v", cfg.Spotlight.NameInterval)
				}
				if len(cfg.Spotlight.Effects) != 1 || cfg.Spotlight.Effects[0] != "zoom" {
					t.Errorf("expected effects = [zoom], got %v", cfg.Spotlight.Effects)
				}
				if cfg.Rotation.AutoStart {
					t.Error("expected autoStart = false")
				}
			},
		},
		{
			name:        "omitted fields keep defaults",
			yamlContent: "burst:\n  gravity: 0.5\n",
			validate: func(t *testing.T, cfg *EngineConfig) {
				if cfg.Burst.Gravity != 0.5 {
					t.Errorf("expected gravity = 0.5, got %f", cfg.Burst.Gravity)
				}
				if cfg.Burst.Damping != 0.6 {
					t.Errorf("expected default damping = 0.6, got %f", cfg.Burst.Damping)
				}
				if cfg.Spotlight.FallbackName != "ACI Family" {
					t.Errorf("expected default fallback name, got %q", cfg.Spotlight.FallbackName)
				}
			},
		},
		{
			name:        "spawn chance out of range",
			yamlContent: "ambient:\n  spawnChance: 1.5\n",
			wantErr:     true,
			errContains: "spawnChance",
		},
		{
			name:        "empty effects",
			yamlContent: "spotlight:\n  effects: []\n",
			wantErr:     true,
			errContains: "effects",
		},
		{
			name:        "max elapsed below period",
			yamlContent: "frame:\n  maxElapsed: 5ms\n",
			wantErr:     true,
			errContains: "maxElapsed",
		},
		{
			name:        "negative burst count",
			yamlContent: "celebration:\n  manualBurst: -1\n",
			wantErr:     true,
			errContains: "burst counts",
		},
		{
			name:        "malformed yaml",
			yamlContent: "frame: [",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseEngineConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadEngineConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("rotation:\n  autoInterval: 3s\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadEngineConfig(path)
	if err != nil {
		t.Fatalf("LoadEngineConfig() error: %v", err)
	}
	if cfg.Rotation.AutoInterval != 3*time.Second {
		t.Errorf("expected autoInterval = 3s, got %v", cfg.Rotation.AutoInterval)
	}

	if _, err := LoadEngineConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRepositoryConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadEngineConfig(filepath.Join("..", "..", "data", "config.yaml"))
	if err != nil {
		t.Fatalf("failed to load data/config.yaml: %v", err)
	}

	def := DefaultEngineConfig()
	if cfg.Ambient != def.Ambient {
		t.Errorf("ambient mismatch: file=%+v default=%+v", cfg.Ambient, def.Ambient)
	}
	if cfg.Burst != def.Burst {
		t.Errorf("burst mismatch: file=%+v default=%+v", cfg.Burst, def.Burst)
	}
	if cfg.Rotation != def.Rotation {
		t.Errorf("rotation mismatch: file=%+v default=%+v", cfg.Rotation, def.Rotation)
	}
	if cfg.Celebration != def.Celebration {
		t.Errorf("celebration mismatch: file=%+v default=%+v", cfg.Celebration, def.Celebration)
	}
	if cfg.Spotlight.CaretPause != def.Spotlight.CaretPause {
		t.Errorf("caretPause mismatch: file=%v default=%v", cfg.Spotlight.CaretPause, def.Spotlight.CaretPause)
	}
}
