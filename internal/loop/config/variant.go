package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/tomz197/dodgefall/internal/physics"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownVariant is returned for a preset name that does not exist.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrInvalidVariant is returned when a variant fails validation.
	ErrInvalidVariant = errors.New("invalid variant")
)

// Preset names.
const (
	Classic = "classic"
	Lanes   = "lanes"
	Quiet   = "quiet"
	Rush    = "rush"
)

// Variant is one flavour of the game: collision policy, difficulty ramp,
// background pixel density and whether movement makes a sound.
type Variant struct {
	Name string `yaml:"name"`

	Collision     string  `yaml:"collision"`      // "aabb" or "threshold"
	ThresholdRow  float64 `yaml:"threshold_row"`  // Threshold policy only
	LaneTolerance float64 `yaml:"lane_tolerance"` // Threshold policy only

	InitialSpeed   float64 `yaml:"initial_speed"`   // Percent per frame
	SpeedIncrement float64 `yaml:"speed_increment"` // Added on every pass

	PixelChance   float64 `yaml:"pixel_chance"` // Spawn probability per frame
	PixelMinSpeed float64 `yaml:"pixel_min_speed"`
	PixelMaxSpeed float64 `yaml:"pixel_max_speed"`

	MoveCue          bool    `yaml:"move_cue"`
	CueVolume        float64 `yaml:"cue_volume"`
	SoundtrackVolume float64 `yaml:"soundtrack_volume"`
}

func classic() Variant {
	return Variant{
		Name:             Classic,
		Collision:        physics.PolicyBoundingBox.String(),
		ThresholdRow:     90,
		LaneTolerance:    5,
		InitialSpeed:     0.5,
		SpeedIncrement:   0.01,
		PixelChance:      0.1,
		PixelMinSpeed:    0.05,
		PixelMaxSpeed:    0.15,
		MoveCue:          true,
		CueVolume:        0.1,
		SoundtrackVolume: 1.0,
	}
}

var presets = map[string]func() Variant{
	Classic: classic,
	Lanes: func() Variant {
		v := classic()
		v.Name = Lanes
		v.Collision = physics.PolicyThreshold.String()
		v.PixelMinSpeed, v.PixelMaxSpeed = 0.07, 0.17
		v.MoveCue = false
		return v
	},
	Quiet: func() Variant {
		v := classic()
		v.Name = Quiet
		v.PixelMinSpeed, v.PixelMaxSpeed = 0.07, 0.17
		v.MoveCue = false
		return v
	},
	Rush: func() Variant {
		v := classic()
		v.Name = Rush
		v.InitialSpeed = 1.0
		v.SpeedIncrement = 0.02
		return v
	},
}

// Default returns the classic variant.
func Default() Variant {
	return classic()
}

// Preset returns the named preset.
func Preset(name string) (Variant, error) {
	build, ok := presets[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return build(), nil
}

// PresetNames lists the presets in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a variant from a YAML file. The optional "base" key names the
// preset that supplies every field the file leaves out (classic by default).
func Load(path string) (Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Variant{}, fmt.Errorf("read variant file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML variant document. See Load.
func Parse(data []byte) (Variant, error) {
	var head struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Variant{}, fmt.Errorf("decode variant: %w", err)
	}
	if head.Base == "" {
		head.Base = Classic
	}

	v, err := Preset(head.Base)
	if err != nil {
		return Variant{}, err
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Variant{}, fmt.Errorf("decode variant: %w", err)
	}
	if err := v.Validate(); err != nil {
		return Variant{}, err
	}
	return v, nil
}

// Resolve picks the variant for a process: the file at path if set,
// otherwise the named preset, otherwise classic.
func Resolve(name, path string) (Variant, error) {
	if path != "" {
		return Load(path)
	}
	if name == "" {
		return Default(), nil
	}
	return Preset(name)
}

// Validate reports the first problem with v, wrapped in ErrInvalidVariant.
func (v Variant) Validate() error {
	if _, err := physics.ParsePolicy(v.Collision); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVariant, err)
	}
	switch {
	case v.InitialSpeed < 0:
		return fmt.Errorf("%w: initial_speed %v is negative", ErrInvalidVariant, v.InitialSpeed)
	case v.SpeedIncrement < 0:
		return fmt.Errorf("%w: speed_increment %v is negative", ErrInvalidVariant, v.SpeedIncrement)
	case v.PixelChance < 0 || v.PixelChance > 1:
		return fmt.Errorf("%w: pixel_chance %v outside [0, 1]", ErrInvalidVariant, v.PixelChance)
	case v.PixelMinSpeed < 0:
		return fmt.Errorf("%w: pixel_min_speed %v is negative", ErrInvalidVariant, v.PixelMinSpeed)
	case v.PixelMaxSpeed < v.PixelMinSpeed:
		return fmt.Errorf("%w: pixel speed range [%v, %v] is inverted", ErrInvalidVariant, v.PixelMinSpeed, v.PixelMaxSpeed)
	case v.LaneTolerance < 0:
		return fmt.Errorf("%w: lane_tolerance %v is negative", ErrInvalidVariant, v.LaneTolerance)
	case v.CueVolume < 0 || v.CueVolume > 1:
		return fmt.Errorf("%w: cue_volume %v outside [0, 1]", ErrInvalidVariant, v.CueVolume)
	case v.SoundtrackVolume < 0 || v.SoundtrackVolume > 1:
		return fmt.Errorf("%w: soundtrack_volume %v outside [0, 1]", ErrInvalidVariant, v.SoundtrackVolume)
	}
	return nil
}

// Policy returns the collision policy. Unknown names fall back to bounding box;
// Validate rejects them.
func (v Variant) Policy() physics.Policy {
	p, err := physics.ParsePolicy(v.Collision)
	if err != nil {
		return physics.PolicyBoundingBox
	}
	return p
}

// Detector builds the collision detector for v.
func (v Variant) Detector() physics.Detector {
	return physics.NewDetector(v.Policy(), v.ThresholdRow, v.LaneTolerance)
}
