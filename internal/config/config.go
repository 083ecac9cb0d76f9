// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	TargetFPS  int    `yaml:"target_fps"` // 0 disables frame pacing
}

// CameraConfig holds lens and control settings for the demo camera.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Mode        string  `yaml:"mode"` // "orbit" or "first_person"
	Sensitivity float32 `yaml:"sensitivity"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
}

// SceneConfig holds asset paths for the demo scene.
type SceneConfig struct {
	Model          string   `yaml:"model"`           // OBJ file; empty renders a cube
	VertexShader   string   `yaml:"vertex_shader"`   // empty uses the embedded shader
	FragmentShader string   `yaml:"fragment_shader"` // empty uses the embedded shader
	AssetDirs      []string `yaml:"asset_dirs"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Not-Serious-Engine App",
			Width:     1280,
			Height:    720,
			VSync:     true,
			TargetFPS: 60,
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.1,
			Far:         1000,
			Mode:        "orbit",
			Sensitivity: 0.25,
			ZoomSpeed:   1,
		},
		Scene: SceneConfig{
			AssetDirs: []string{".", "assets"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
