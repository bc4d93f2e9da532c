// Package viewer implements the interactive model viewer loop: it loads the
// assets, owns the window and input handler, and drives the scene one frame
// at a time.
package viewer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/softras/softras/internal/config"
	"github.com/softras/softras/internal/engine/camera"
	"github.com/softras/softras/internal/engine/input"
	"github.com/softras/softras/internal/engine/model"
	"github.com/softras/softras/internal/engine/scene"
	"github.com/softras/softras/internal/engine/shader"
	"github.com/softras/softras/internal/engine/texture"
	"github.com/softras/softras/internal/engine/window"
	"github.com/softras/softras/pkg/formats"
	"github.com/softras/softras/pkg/math"
)

// Viewer is the running application instance.
type Viewer struct {
	config  *config.Config
	running bool

	window *window.Window
	input  *input.Input
	scene  *scene.Scene
	orbit  *camera.Orbit
}

// New loads the assets named by the config and builds the scene and window.
func New(cfg *config.Config) (*Viewer, error) {
	slog.Info("initializing viewer",
		"pipeline", cfg.Render.Pipeline,
		"width", cfg.Graphics.Width,
		"height", cfg.Graphics.Height,
	)

	mesh, err := loadMesh(filepath.Join(cfg.Assets.Dir, cfg.Assets.Model))
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	maps, err := loadMaps(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load textures: %w", err)
	}

	v := &Viewer{
		config: cfg,
	}

	v.scene, err = scene.New(scene.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Pipeline:   cfg.Render.Pipeline,
		FOVDegrees: cfg.Render.FOVDegrees,
		Near:       cfg.Render.Near,
		Far:        cfg.Render.Far,
	}, mesh, maps)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	// Camera starts on +Z, framed so the whole model fits.
	v.orbit = camera.NewOrbit(mesh.Center(), mesh.Radius())
	v.scene.SetLightDirection(math.Vec3{Z: 1})

	v.window, err = window.New(window.Config{
		Title:      "softras — " + cfg.Assets.Model,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.input = input.New()

	slog.Info("viewer initialized",
		"faces", len(mesh.Faces),
		"radius", mesh.Radius(),
	)
	return v, nil
}

// Run starts the main loop. It returns when the window is closed or Escape
// is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if v.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.config.Graphics.FPSLimit)
	}

	slog.Info("starting render loop")

	for v.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.steerCamera(dt)

		// 2. Render the frame on the CPU
		v.scene.Clear()
		cam := v.orbit.Camera()
		v.scene.SetCamera(cam.Eye, cam.Center, cam.Up)
		v.scene.Render()

		// 3. Present
		pixels := v.scene.FrameBuffer()
		if v.config.Render.DepthView {
			pixels = v.scene.DepthView()
		}
		if err := v.window.Present(pixels); err != nil {
			return fmt.Errorf("present error: %w", err)
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.config.Render.ShowFPS {
				fmt.Printf("%d fps\n", frameCount)
			}
			slog.Debug("fps", "count", frameCount, "dt", fmt.Sprintf("%.2fms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if elapsed := time.Since(frameStart); elapsed < frameBudget {
				time.Sleep(frameBudget - elapsed)
			}
		}
	}

	return nil
}

// steerCamera applies mouse drag and wheel input, plus the slow automatic
// orbit when enabled.
func (v *Viewer) steerCamera(dt float64) {
	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.orbit.Drag(float32(dx), float32(dy))
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		v.orbit.Zoom(float32(wheel))
	}
	if v.config.Render.Orbit {
		v.orbit.Yaw += float32(dt) * 0.5
	}
}

// Close releases the window and SDL resources.
func (v *Viewer) Close() {
	slog.Info("closing viewer")

	if v.window != nil {
		v.window.Close()
	}
}

// loadMesh parses an OBJ file and builds the render mesh from it.
func loadMesh(path string) (*model.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := formats.ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return model.NewMesh(obj)
}

// loadMaps loads the texture maps the configured pipeline samples. The
// diffuse map is always required; the others are loaded only when the
// pipeline uses them.
func loadMaps(cfg *config.Config) (*texture.Set, error) {
	maps := &texture.Set{}

	var err error
	maps.Diffuse, err = loadTGA(filepath.Join(cfg.Assets.Dir, cfg.Assets.Texture))
	if err != nil {
		return nil, err
	}

	switch cfg.Render.Pipeline {
	case shader.GouraudSpecular:
		maps.Specular, err = loadTGA(filepath.Join(cfg.Assets.Dir, cfg.Assets.SpecularMap))
	case shader.NormalMap:
		maps.Normal, err = loadTGA(filepath.Join(cfg.Assets.Dir, cfg.Assets.NormalMap))
		if err == nil {
			// The specular map is optional for this pipeline.
			specPath := filepath.Join(cfg.Assets.Dir, cfg.Assets.SpecularMap)
			if _, statErr := os.Stat(specPath); statErr == nil {
				maps.Specular, err = loadTGA(specPath)
			}
		}
	case shader.TangentNormalMap:
		maps.NormalTangent, err = loadTGA(filepath.Join(cfg.Assets.Dir, cfg.Assets.NormalMapTangent))
	}
	if err != nil {
		return nil, err
	}

	return maps, nil
}

// loadTGA reads and decodes one TGA file.
func loadTGA(path string) (*texture.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := texture.DecodeTGA(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
