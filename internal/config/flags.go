package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagPipeline   = flag.String("pipeline", "", "Shader pipeline (unlit, gouraud, gouraud_specular, normalmap, tangent_normalmap)")
	flagAssets     = flag.String("assets", "", "Asset directory")
	flagFPS        = flag.Bool("fps", false, "Print FPS once per second")
	flagOrbit      = flag.Bool("orbit", false, "Orbit the camera around the model")
	flagDepthView  = flag.Bool("depth-view", false, "Present the depth buffer instead of color")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Render.ShowFPS = true
	}
	if *flagPipeline != "" {
		cfg.Render.Pipeline = *flagPipeline
	}
	if *flagAssets != "" {
		cfg.Assets.Dir = *flagAssets
	}
	if *flagFPS {
		cfg.Render.ShowFPS = true
	}
	if *flagOrbit {
		cfg.Render.Orbit = true
	}
	if *flagDepthView {
		cfg.Render.DepthView = true
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
