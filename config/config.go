// Package config decodes a loosely-typed attribute map (as produced by
// unmarshaling a JSON or YAML document upstream) into the strongly-typed
// parameters a Planner needs to run: region bounds, actor kinematics,
// capture parameters, and the search budget. It owns no part of the core
// algorithm; constructing a Planner directly from Go values remains the
// primary entry point.
package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// ActorConfig describes one player's kinematic model and its parameters.
// Kind selects which constructor in package actors builds the game.Actor;
// the remaining fields hold that constructor's arguments.
type ActorConfig struct {
	// Kind is one of "linear", "dubins_car", "dubins_airplane".
	Kind string `mapstructure:"kind"`

	// Speed is the constant forward speed, used by every actor kind.
	Speed float64 `mapstructure:"speed"`

	// Radius is the minimum turning radius, used by dubins_car only.
	// dubins_airplane derives its own turning radius from BankMax and Speed.
	Radius float64 `mapstructure:"radius,omitempty"`

	// BankMax is the maximum bank angle in radians, used by
	// dubins_airplane only.
	BankMax float64 `mapstructure:"bank_max,omitempty"`

	// GammaMax is the maximum flight-path angle in radians, used by
	// dubins_airplane only.
	GammaMax float64 `mapstructure:"gamma_max,omitempty"`
}

// CaptureConfig describes the capture predicate to construct.
type CaptureConfig struct {
	// Kind is one of "usable_part", "omnidirectional".
	Kind string `mapstructure:"kind"`

	// Radius is the capture distance.
	Radius float64 `mapstructure:"radius"`

	// Tolerance is the bearing tolerance in radians, used by usable_part
	// only. Defaults to pi (every bearing except directly behind) if zero.
	Tolerance float64 `mapstructure:"tolerance,omitempty"`
}

// GameConfig is the full set of parameters needed to construct and run a
// Planner: the shared sampling period, the game space bounds, each player's
// kinematics, the capture rule, the near-ball scale, and the search budget.
type GameConfig struct {
	DT         float64       `mapstructure:"dt"`
	RegionLow  []float64     `mapstructure:"region_low"`
	RegionHigh []float64     `mapstructure:"region_high"`
	Pursuer    ActorConfig   `mapstructure:"pursuer"`
	Evader     ActorConfig   `mapstructure:"evader"`
	Capture    CaptureConfig `mapstructure:"capture"`
	Gamma      float64       `mapstructure:"gamma"`
	Iterations int           `mapstructure:"iterations"`
}

// Decode parses raw (a map as produced by unmarshaling JSON/YAML, or an
// equivalent value) into a GameConfig and validates that every field
// required to construct a Planner is present and sane.
func Decode(raw map[string]interface{}) (*GameConfig, error) {
	var cfg GameConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "config: building decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "config: decoding game config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *GameConfig) validate() error {
	if c.DT <= 0 {
		return errors.New("config: dt must be positive")
	}
	if len(c.RegionLow) == 0 || len(c.RegionLow) != len(c.RegionHigh) {
		return errors.New("config: region_low and region_high must be non-empty and equal length")
	}
	if c.Gamma <= 0 {
		return errors.New("config: gamma must be positive")
	}
	if c.Iterations < 0 {
		return errors.New("config: iterations must be non-negative")
	}
	if err := c.Pursuer.validate(); err != nil {
		return errors.Wrap(err, "config: pursuer")
	}
	if err := c.Evader.validate(); err != nil {
		return errors.Wrap(err, "config: evader")
	}
	if err := c.Capture.validate(); err != nil {
		return errors.Wrap(err, "config: capture")
	}
	return nil
}

func (a *ActorConfig) validate() error {
	switch a.Kind {
	case "linear":
	case "dubins_car":
		if a.Radius <= 0 {
			return errors.New("radius must be positive for dubins_car")
		}
	case "dubins_airplane":
		if a.BankMax <= 0 {
			return errors.New("bank_max must be positive for dubins_airplane")
		}
		if a.GammaMax <= 0 {
			return errors.New("gamma_max must be positive for dubins_airplane")
		}
	default:
		return errors.Errorf("unknown actor kind %q", a.Kind)
	}
	if a.Speed <= 0 {
		return errors.New("speed must be positive")
	}
	return nil
}

func (c *CaptureConfig) validate() error {
	if c.Radius <= 0 {
		return errors.New("radius must be positive")
	}
	switch c.Kind {
	case "usable_part", "omnidirectional":
	default:
		return errors.Errorf("unknown capture kind %q", c.Kind)
	}
	return nil
}
