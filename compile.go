package galaxyjukebox

import (
	"math"
	"sort"
)

// Sides selects how many walls of the contraption carry noteblocks.
type Sides int

const (
	// SidesAuto picks 1, 2 or 3 based on how many lines the song needs.
	SidesAuto Sides = -1
	SidesOne  Sides = 1
	SidesTwo  Sides = 2
	SidesThree Sides = 3
)

// Options configures a Compile call.
type Options struct {
	UseRedstoneLamp bool
	Sides           Sides
	// DataVersion overrides DefaultDataVersion when non-zero.
	DataVersion int32
	// OverrideTempo, if > 0, replaces the song's own tempo (ticks/sec).
	OverrideTempo float64
}

// Compile lays out and builds a complete redstone music-box contraption for
// song, returning the assembled schematic ready to Save.
func Compile(song *Song, opts Options) (*Schematic, error) {
	unsplit := linesFromSong(song, opts.OverrideTempo)
	if len(unsplit) == 0 {
		return nil, ErrEmptySong
	}

	lines := make([]*line, 0, len(unsplit))
	for _, u := range unsplit {
		ticks := make([]int, 0, len(u.counts))
		for t := range u.counts {
			ticks = append(ticks, t)
		}
		lines = append(lines, newLine(u.key, u.instrument, ticks))
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		keyA, keyB := a.note+100*a.instrument, b.note+100*b.instrument
		if keyA != keyB {
			return keyA < keyB
		}
		// Two lines with the same (note, instrument) arise from splitting one
		// NBS pitch's hits (by tick parity, and again to keep hits 4 gameticks
		// apart) and from keys folded onto the same note by whole octaves;
		// break the tie on parity, then on the first delay, so the ordering
		// never depends on map iteration order upstream.
		if a.isEven != b.isEven {
			return !a.isEven && b.isEven
		}
		return a.delays[0] < b.delays[0]
	})

	count := len(lines)
	sidesMode := opts.Sides
	switch sidesMode {
	case SidesAuto:
		switch {
		case count <= 128:
			sidesMode = SidesOne
		case count <= 256:
			sidesMode = SidesTwo
		default:
			sidesMode = SidesThree
		}
	case SidesOne, SidesTwo, SidesThree:
	default:
		return nil, ErrInvalidSides
	}

	height := int(0.5 + math.Ceil(math.Sqrt(float64(count)/float64(2*int(sidesMode)))))

	dataVersion := opts.DataVersion
	if dataVersion == 0 {
		dataVersion = DefaultDataVersion
	}
	schem := NewSchematic(dataVersion)

	switch sidesMode {
	case SidesOne:
		width := (count-1)/height + 1
		buildContraption(schem, lines, 0, width, 0, height, song.Name, opts.UseRedstoneLamp)
	case SidesTwo:
		// Fixed height*2 per wall, following original_source/main.py's
		// convert() rather than a whole_width split across walls.
		buildContraption(schem, lines, height*2, height*2, 0, height, song.Name, opts.UseRedstoneLamp)
	case SidesThree:
		buildContraption(schem, lines, height*2, height*2, height*2, height, song.Name, opts.UseRedstoneLamp)
	}

	return schem, nil
}
