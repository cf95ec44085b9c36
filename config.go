package folio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one portfolio room: what is interactive, where clicks
// lead and how feedback looks.
//
// A config file is overlaid on DefaultConfig, so it only needs the fields
// it changes.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// TPS is the fixed update rate.
	TPS int `yaml:"tps"`

	// Targets are the object names registered for interaction.
	Targets []string `yaml:"targets"`
	// Links maps base object names to external URLs.
	Links map[string]string `yaml:"links"`
	// Bindings maps base object names to modal keys.
	Bindings map[string]ModalKey `yaml:"bindings"`
	// ModalOrder lists the modal keys in display order.
	ModalOrder []ModalKey `yaml:"modalOrder"`
	// Modals holds the content of each modal.
	Modals map[ModalKey]ModalContent `yaml:"modals"`

	Hover HoverConfig `yaml:"hover"`
	// ModalFade is the modal opacity transition in seconds.
	ModalFade float32 `yaml:"modalFade"`
	// LoadingFade is the loading overlay fade-out in seconds.
	LoadingFade float32 `yaml:"loadingFade"`
	// DragDeadZone is the pointer travel in pixels that turns a press into
	// an orbit drag instead of a click.
	DragDeadZone float64 `yaml:"dragDeadZone"`
	// AnimationSpeed scales authored spin animations.
	AnimationSpeed float64 `yaml:"animationSpeed"`

	Camera     CameraConfig  `yaml:"camera"`
	Lights     []LightConfig `yaml:"lights"`
	Background uint32        `yaml:"background"`

	// ScreenNode names the mesh the ambient video plays on.
	ScreenNode string         `yaml:"screenNode"`
	VideoFPS   float64        `yaml:"videoFPS"`
	Autoplay   AutoplayPolicy `yaml:"autoplay"`
}

// CameraConfig places the orbit camera.
type CameraConfig struct {
	Position    Vec3    `yaml:"position"`
	Target      Vec3    `yaml:"target"`
	FOV         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Damping     bool    `yaml:"damping"`
	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`
}

// LightKind selects how a light contributes to shading.
type LightKind string

const (
	LightDirectional LightKind = "directional"
	LightAmbient     LightKind = "ambient"
)

// LightConfig is one scene light.
type LightConfig struct {
	Kind      LightKind `yaml:"kind"`
	Color     uint32    `yaml:"color"`
	Intensity float64   `yaml:"intensity"`
	// Position is the direction source for directional lights.
	Position Vec3 `yaml:"position"`
}

// Stock object names.
var defaultTargets = []string{
	"Insta_Raycaster", "Fb_Raycaster", "Folder_Raycaster", "Imac_Raycaster", "Mouse_Raycaster",
	"Work_Raycaster", "About_Raycaster", "Contact_Raycaster",
	"Work_Raycaster_Hover", "About_Raycaster_Hover", "Contact_Raycaster_Hover",
	"Folder_Raycaster_Hover", "Fb_Raycaster_Hover", "Insta_Raycaster_Hover",
}

// DefaultConfig returns the stock room configuration.
func DefaultConfig() Config {
	return Config{
		Title:        "folio",
		Width:        1280,
		Height:       720,
		TPS:          60,
		Targets:      append([]string(nil), defaultTargets...),
		Links: map[string]string{
			"Fb_Raycaster":    "https://www.facebook.com/adrian.castillo2",
			"Insta_Raycaster": "https://www.instagram.com/a.sidebk",
		},
		Bindings: map[string]ModalKey{
			"Work_Raycaster":    ModalWork,
			"About_Raycaster":   ModalAbout,
			"Contact_Raycaster": ModalContact,
			"Folder_Raycaster":  ModalFolder,
			"Imac_Raycaster":    ModalImac,
		},
		ModalOrder: []ModalKey{ModalWork, ModalAbout, ModalContact, ModalFolder, ModalImac},
		Modals: map[ModalKey]ModalContent{
			ModalWork: {
				Title: "Work",
				Slides: []Slide{
					{Title: "Project One", Caption: "Interactive 3D room", Color: 0x3b6ea5},
					{Title: "Project Two", Caption: "Realtime shader experiments", Color: 0xa55b3b},
					{Title: "Project Three", Caption: "Motion design reel", Color: 0x4f8f4a},
				},
			},
			ModalAbout:   {Title: "About", Body: []string{"Designer and developer building playful 3D spaces."}},
			ModalContact: {Title: "Contact", Body: []string{"Reach out through the socials on the desk."}},
			ModalFolder:  {Title: "Folder", Body: []string{"Archived sketches and notes."}},
			ModalImac:    {Title: "Screen", Body: []string{"Now playing on the desk."}},
		},
		Hover:          DefaultHoverConfig(),
		ModalFade:      0.5,
		LoadingFade:    0.5,
		DragDeadZone:   4,
		AnimationSpeed: 0.2,
		Camera: CameraConfig{
			Position:    Vec3{-7, 5, 8},
			Target:      Vec3{0.0445, 1.992, 0.269},
			FOV:         45,
			Near:        0.1,
			Far:         1000,
			Damping:     true,
			MinDistance: 0.5,
			MaxDistance: 100,
		},
		Lights: []LightConfig{
			{Kind: LightDirectional, Color: 0xffffff, Intensity: 0.1, Position: Vec3{5, 10, 10}},
			{Kind: LightDirectional, Color: 0xffffff, Intensity: 0.1, Position: Vec3{-10, 5, 5}},
			{Kind: LightDirectional, Color: 0x88aaff, Intensity: 0.1, Position: Vec3{0, 10, -10}},
			{Kind: LightAmbient, Color: 0xffffff, Intensity: 0.1},
		},
		Background: 0x1b1b22,
		ScreenNode: "Imac_Screen",
		VideoFPS:   24,
		Autoplay:   AutoplayAllowed,
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseConfig overlays YAML data on cfg and validates the result.
func ParseConfig(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	}
	if c.Hover.ScaleMultiplier <= 0 {
		return fmt.Errorf("%w: hover scale multiplier %v", ErrInvalidConfig, c.Hover.ScaleMultiplier)
	}
	if c.Hover.MaxScale <= 0 {
		return fmt.Errorf("%w: hover max scale %v", ErrInvalidConfig, c.Hover.MaxScale)
	}
	if c.Hover.Duration < 0 || c.ModalFade < 0 || c.LoadingFade < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("%w: drag dead zone %v", ErrInvalidConfig, c.DragDeadZone)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: camera fov %v", ErrInvalidConfig, c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip range %v..%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	known := make(map[ModalKey]bool, len(c.ModalOrder))
	for _, key := range c.ModalOrder {
		if _, ok := c.Modals[key]; !ok {
			return fmt.Errorf("%w: modal %q has no content", ErrInvalidConfig, key)
		}
		known[key] = true
	}
	for name, key := range c.Bindings {
		if !known[key] {
			return fmt.Errorf("%w: %s bound to unknown modal %q", ErrInvalidConfig, name, key)
		}
	}
	for _, l := range c.Lights {
		if l.Kind != LightDirectional && l.Kind != LightAmbient {
			return fmt.Errorf("%w: light kind %q", ErrInvalidConfig, l.Kind)
		}
	}
	return nil
}

var autoplayNames = map[AutoplayPolicy]string{
	AutoplayAllowed:         "allowed",
	AutoplayRequiresGesture: "gesture",
}

func (p AutoplayPolicy) String() string {
	if s, ok := autoplayNames[p]; ok {
		return s
	}
	return fmt.Sprintf("AutoplayPolicy(%d)", p)
}

// UnmarshalYAML accepts "allowed" or "gesture".
func (p *AutoplayPolicy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for k, name := range autoplayNames {
		if name == s {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("%w: autoplay policy %q", ErrInvalidConfig, s)
}

// MarshalYAML writes the policy name.
func (p AutoplayPolicy) MarshalYAML() (any, error) {
	return p.String(), nil
}
