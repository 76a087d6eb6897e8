// Package config turns command line flag values into the option types the
// front ends hand to the compiler and preview player.
package config

import (
	"fmt"
	"math"

	"github.com/4321ba/galaxyjukebox"
	"github.com/4321ba/galaxyjukebox/internal/scoreplayer"
)

// EnvelopeFromFlag builds a scoreplayer.Envelope from a command line flag
// value, the way ReverbFromFlag in the original player picked a comb.Reverber
// by name instead of exposing raw filter coefficients on the CLI.
func EnvelopeFromFlag(envelope string) (e scoreplayer.Envelope, err error) {
	decay := 6.0
	switch envelope {
	case "default":
		decay = 6.0
	case "long":
		decay = 2.5
	case "sharp":
		decay = 14.0
	case "bell":
		// Slower decay with a slight overshoot on attack, closer to how the
		// bell and chime instruments ring out in-game.
		return func(t float64) float64 {
			if t < 0 {
				return 0
			}
			return math.Exp(-2.5*t) * (1 + 0.15*math.Sin(18*t))
		}, nil
	default:
		err = fmt.Errorf("unrecognized envelope setting %q", envelope)
	}

	return func(t float64) float64 {
		if t < 0 {
			return 0
		}
		return math.Exp(-decay * t)
	}, err
}

// SidesFromFlag turns the -sides CLI value into a galaxyjukebox.Sides,
// accepting "auto" alongside the numeric choices.
func SidesFromFlag(sides string) (galaxyjukebox.Sides, error) {
	switch sides {
	case "auto", "":
		return galaxyjukebox.SidesAuto, nil
	case "1":
		return galaxyjukebox.SidesOne, nil
	case "2":
		return galaxyjukebox.SidesTwo, nil
	case "3":
		return galaxyjukebox.SidesThree, nil
	default:
		return 0, fmt.Errorf("unrecognized sides setting %q, want auto, 1, 2 or 3", sides)
	}
}
