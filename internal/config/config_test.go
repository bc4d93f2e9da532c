package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Render.Pipeline != "gouraud" {
		t.Errorf("expected pipeline 'gouraud', got %s", cfg.Render.Pipeline)
	}
	if cfg.Render.FOVDegrees != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Render.FOVDegrees)
	}
	if cfg.Render.ShowFPS {
		t.Error("expected show_fps to be false by default")
	}

	if cfg.Assets.Model != "model.obj" {
		t.Errorf("expected model 'model.obj', got %s", cfg.Assets.Model)
	}
	if cfg.Assets.Texture != "texture.tga" {
		t.Errorf("expected texture 'texture.tga', got %s", cfg.Assets.Texture)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1024
  height: 768
  fullscreen: true
  vsync: true
  fps_limit: 144

render:
  pipeline: "tangent_normalmap"
  fov_degrees: 45
  near: 0.5
  far: 50
  show_fps: true
  orbit: true

assets:
  dir: "/opt/models"
  model: "head.obj"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Render.Pipeline != "tangent_normalmap" {
		t.Errorf("expected pipeline 'tangent_normalmap', got %s", cfg.Render.Pipeline)
	}
	if cfg.Render.FOVDegrees != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Render.FOVDegrees)
	}
	if !cfg.Render.Orbit {
		t.Error("expected orbit to be true")
	}

	if cfg.Assets.Dir != "/opt/models" {
		t.Errorf("expected asset dir '/opt/models', got %s", cfg.Assets.Dir)
	}
	if cfg.Assets.Model != "head.obj" {
		t.Errorf("expected model 'head.obj', got %s", cfg.Assets.Model)
	}
	// Unset fields keep their defaults.
	if cfg.Assets.Texture != "texture.tga" {
		t.Errorf("expected default texture name, got %s", cfg.Assets.Texture)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Render.Pipeline = "normalmap"
	cfg.Graphics.Width = 320

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Render.Pipeline != "normalmap" {
		t.Errorf("round-tripped pipeline = %s, want normalmap", loaded.Render.Pipeline)
	}
	if loaded.Graphics.Width != 320 {
		t.Errorf("round-tripped width = %d, want 320", loaded.Graphics.Width)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Render.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "pipeline flag",
			setup: func() {
				*flagPipeline = "unlit"
			},
			verify: func(cfg *Config) {
				if cfg.Render.Pipeline != "unlit" {
					t.Errorf("expected pipeline 'unlit', got %s", cfg.Render.Pipeline)
				}
			},
			teardown: func() {
				*flagPipeline = ""
			},
		},
		{
			name: "assets flag",
			setup: func() {
				*flagAssets = "/data/head"
			},
			verify: func(cfg *Config) {
				if cfg.Assets.Dir != "/data/head" {
					t.Errorf("expected asset dir '/data/head', got %s", cfg.Assets.Dir)
				}
			},
			teardown: func() {
				*flagAssets = ""
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 1920 {
					t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1080 {
					t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "orbit and depth view flags",
			setup: func() {
				*flagOrbit = true
				*flagDepthView = true
			},
			verify: func(cfg *Config) {
				if !cfg.Render.Orbit {
					t.Error("expected orbit to be enabled")
				}
				if !cfg.Render.DepthView {
					t.Error("expected depth view to be enabled")
				}
			},
			teardown: func() {
				*flagOrbit = false
				*flagDepthView = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}
