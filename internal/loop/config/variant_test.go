package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tomz197/dodgefall/internal/physics"
)

func TestPresets(t *testing.T) {
	tests := []struct {
		name     string
		policy   physics.Policy
		speed    float64
		minPixel float64
		cue      bool
	}{
		{Classic, physics.PolicyBoundingBox, 0.5, 0.05, true},
		{Lanes, physics.PolicyThreshold, 0.5, 0.07, false},
		{Quiet, physics.PolicyBoundingBox, 0.5, 0.07, false},
		{Rush, physics.PolicyBoundingBox, 1.0, 0.05, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Preset(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if err := v.Validate(); err != nil {
				t.Fatalf("preset does not validate: %v", err)
			}
			if v.Name != tt.name {
				t.Errorf("Name = %q", v.Name)
			}
			if v.Policy() != tt.policy {
				t.Errorf("Policy = %v, want %v", v.Policy(), tt.policy)
			}
			if v.InitialSpeed != tt.speed {
				t.Errorf("InitialSpeed = %v, want %v", v.InitialSpeed, tt.speed)
			}
			if v.PixelMinSpeed != tt.minPixel {
				t.Errorf("PixelMinSpeed = %v, want %v", v.PixelMinSpeed, tt.minPixel)
			}
			if v.MoveCue != tt.cue {
				t.Errorf("MoveCue = %v, want %v", v.MoveCue, tt.cue)
			}
		})
	}
}

func TestPresetUnknown(t *testing.T) {
	if _, err := Preset("nope"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestPresetNames(t *testing.T) {
	want := []string{Classic, Lanes, Quiet, Rush}
	if got := PresetNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("PresetNames = %v, want %v", got, want)
	}
}

func TestPresetsAreIndependentCopies(t *testing.T) {
	a, _ := Preset(Classic)
	a.InitialSpeed = 9
	b, _ := Preset(Classic)
	if b.InitialSpeed != 0.5 {
		t.Error("mutating a preset leaked into the next Preset call")
	}
}

func TestParseInheritsFromBase(t *testing.T) {
	doc := []byte(`
base: lanes
name: narrow
lane_tolerance: 2.5
initial_speed: 0.8
`)
	v, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "narrow" || v.LaneTolerance != 2.5 || v.InitialSpeed != 0.8 {
		t.Errorf("overrides not applied: %+v", v)
	}
	if v.Policy() != physics.PolicyThreshold || v.MoveCue {
		t.Errorf("base fields not inherited: %+v", v)
	}
	if v.SpeedIncrement != 0.01 {
		t.Errorf("SpeedIncrement = %v, want 0.01", v.SpeedIncrement)
	}
}

func TestParseDefaultsToClassic(t *testing.T) {
	v, err := Parse([]byte("speed_increment: 0.03\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.SpeedIncrement = 0.03
	if v != want {
		t.Errorf("got %+v, want %+v", v, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown base", "base: turbo\n", ErrUnknownVariant},
		{"bad policy", "collision: circle\n", ErrInvalidVariant},
		{"negative speed", "initial_speed: -1\n", ErrInvalidVariant},
		{"inverted range", "pixel_min_speed: 0.3\npixel_max_speed: 0.1\n", ErrInvalidVariant},
		{"chance too high", "pixel_chance: 1.5\n", ErrInvalidVariant},
		{"cue volume", "cue_volume: 2\n", ErrInvalidVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Parse([]byte("initial_speed: [1, 2]\n")); err == nil {
		t.Error("expected a decode error for a list where a number belongs")
	}
}

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variant.yaml")
	if err := os.WriteFile(path, []byte("base: rush\nmove_cue: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != Rush || v.MoveCue {
		t.Errorf("Load = %+v", v)
	}

	fromFile, err := Resolve(Quiet, path)
	if err != nil || fromFile != v {
		t.Errorf("Resolve should prefer the file: %+v, %v", fromFile, err)
	}

	byName, err := Resolve(Quiet, "")
	if err != nil || byName.Name != Quiet {
		t.Errorf("Resolve(quiet) = %+v, %v", byName, err)
	}

	def, err := Resolve("", "")
	if err != nil || def != Default() {
		t.Errorf("Resolve default = %+v, %v", def, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDetector(t *testing.T) {
	lanes, _ := Preset(Lanes)
	th, ok := lanes.Detector().(physics.Threshold)
	if !ok {
		t.Fatalf("lanes detector is %T", lanes.Detector())
	}
	if th.Row != 90 || th.Tolerance != 5 {
		t.Errorf("threshold = %+v", th)
	}

	if _, ok := Default().Detector().(physics.BoundingBox); !ok {
		t.Errorf("classic detector is %T", Default().Detector())
	}

	bad := Default()
	bad.Collision = "???"
	if bad.Policy() != physics.PolicyBoundingBox {
		t.Error("unknown policy should fall back to bounding box")
	}
}
