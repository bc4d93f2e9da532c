// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Pipeline   string  `yaml:"pipeline"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	ShowFPS    bool    `yaml:"show_fps"`
	Orbit      bool    `yaml:"orbit"`      // animate the camera around the model
	DepthView  bool    `yaml:"depth_view"` // present the depth buffer instead of color
}

// AssetsConfig holds the model and texture file locations. File names are
// resolved relative to Dir.
type AssetsConfig struct {
	Dir              string `yaml:"dir"`
	Model            string `yaml:"model"`
	Texture          string `yaml:"texture"`
	NormalMap        string `yaml:"normal_map"`
	NormalMapTangent string `yaml:"normal_map_tangent"`
	SpecularMap      string `yaml:"specular_map"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      false,
			FPSLimit:   0,
		},
		Render: RenderConfig{
			Pipeline:   "gouraud",
			FOVDegrees: 60,
			Near:       0.1,
			Far:        100,
			ShowFPS:    false,
		},
		Assets: AssetsConfig{
			Dir:              "assets",
			Model:            "model.obj",
			Texture:          "texture.tga",
			NormalMap:        "normal_map.tga",
			NormalMapTangent: "normal_map_tangent.tga",
			SpecularMap:      "specular_map.tga",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
