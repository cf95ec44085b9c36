package folio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Targets) != 14 {
		t.Errorf("%d targets, want 14", len(cfg.Targets))
	}
	for _, key := range cfg.ModalOrder {
		if _, ok := cfg.Modals[key]; !ok {
			t.Errorf("modal %s has no content", key)
		}
	}
}

func TestDefaultConfigTargetsAreIndependent(t *testing.T) {
	a := DefaultConfig()
	a.Targets[0] = "changed"
	if b := DefaultConfig(); b.Targets[0] == "changed" {
		t.Error("DefaultConfig shares its target slice")
	}
}

func TestParseConfigOverlay(t *testing.T) {
	cfg := DefaultConfig()
	data := []byte(`
title: studio
width: 1920
hover:
  maxScale: 2
autoplay: gesture
camera:
  position: [1, 2, 3]
`)
	if err := ParseConfig(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "studio" || cfg.Width != 1920 || cfg.Height != 720 {
		t.Errorf("window = %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	if cfg.Hover.MaxScale != 2 || cfg.Hover.ScaleMultiplier != 1.4 {
		t.Errorf("hover = %+v", cfg.Hover)
	}
	if cfg.Autoplay != AutoplayRequiresGesture {
		t.Errorf("autoplay = %v", cfg.Autoplay)
	}
	if cfg.Camera.Position != (Vec3{1, 2, 3}) || cfg.Camera.FOV != 45 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
}

func TestParseConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero width", "width: 0"},
		{"negative tps", "tps: -1"},
		{"zero multiplier", "hover:\n  scaleMultiplier: 0"},
		{"negative fade", "modalFade: -1"},
		{"negative dead zone", "dragDeadZone: -2"},
		{"wide fov", "camera:\n  fov: 180"},
		{"inverted clip", "camera:\n  near: 10\n  far: 5"},
		{"unknown binding", "bindings:\n  Desk: drawer"},
		{"order without content", "modalOrder: [work, drawer]"},
		{"light kind", "lights:\n  - kind: spot"},
		{"autoplay", "autoplay: sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ParseConfig([]byte(tt.data), &cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseConfigSyntaxError(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseConfig([]byte("width: [oops"), &cfg); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.yaml")
	if err := os.WriteFile(path, []byte("videoFPS: 30\nscreenNode: Tv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VideoFPS != 30 || cfg.ScreenNode != "Tv" || cfg.TPS != 60 {
		t.Errorf("cfg = fps %v screen %q tps %d", cfg.VideoFPS, cfg.ScreenNode, cfg.TPS)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestAutoplayPolicyYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		Autoplay AutoplayPolicy `yaml:"autoplay"`
	}{AutoplayRequiresGesture})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("autoplay: gesture\n", string(out)); diff != "" {
		t.Errorf("yaml (-want +got):\n%s", diff)
	}
	if AutoplayAllowed.String() != "allowed" || AutoplayPolicy(7).String() != "AutoplayPolicy(7)" {
		t.Error("unexpected policy names")
	}
}
