package config

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/jawallace/rufus/actors"
	"github.com/jawallace/rufus/capture"
	"github.com/jawallace/rufus/game"
	"github.com/jawallace/rufus/planner"
	"github.com/jawallace/rufus/region"
)

// NewActor constructs the game.Actor described by c, using seed as its
// injected random source where the kind requires one (dubins_car and
// dubins_airplane draw terminal headings from it).
func (c ActorConfig) NewActor(dt float64, seed *rand.Rand) (game.Actor, error) {
	switch c.Kind {
	case "linear":
		return actors.NewLinear(dt, c.Speed)
	case "dubins_car":
		return actors.NewDubinsCar(dt, c.Speed, c.Radius, seed)
	case "dubins_airplane":
		return actors.NewDubinsAirplane(dt, c.BankMax, c.GammaMax, c.Speed, seed)
	default:
		return nil, errors.Errorf("config: unknown actor kind %q", c.Kind)
	}
}

// NewPredicate constructs the capture.Predicate described by c.
func (c CaptureConfig) NewPredicate() (capture.Predicate, error) {
	switch c.Kind {
	case "omnidirectional":
		return capture.Omnidirectional(c.Radius), nil
	case "usable_part":
		tolerance := c.Tolerance
		if tolerance == 0 {
			return capture.DefaultUsablePart(c.Radius), nil
		}
		return capture.UsablePart(c.Radius, tolerance), nil
	default:
		return nil, errors.Errorf("config: unknown capture kind %q", c.Kind)
	}
}

// BuildPlanner constructs a Planner from c, using seed as the shared random
// source for region sampling and any actor that needs one.
func (c *GameConfig) BuildPlanner(seed *rand.Rand, opts ...planner.Option) (*planner.Planner, error) {
	space, err := region.New(game.Point(c.RegionLow), game.Point(c.RegionHigh))
	if err != nil {
		return nil, errors.Wrap(err, "config: building region")
	}

	pursuer, err := c.Pursuer.NewActor(c.DT, seed)
	if err != nil {
		return nil, errors.Wrap(err, "config: building pursuer")
	}
	evader, err := c.Evader.NewActor(c.DT, seed)
	if err != nil {
		return nil, errors.Wrap(err, "config: building evader")
	}

	predicate, err := c.Capture.NewPredicate()
	if err != nil {
		return nil, errors.Wrap(err, "config: building capture predicate")
	}

	return planner.New(c.DT, space, pursuer, evader, predicate, c.Gamma, seed, opts...)
}
