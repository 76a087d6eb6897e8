package galaxyjukebox

import "sort"

// unsplitLine accumulates the gameticks a single (key, instrument) pair
// needs to sound at, before it has been split into redstone-buildable
// lines. A single NBS note-block/pitch combination can need more than one
// physical redstone line if it is struck more than once within the same 4
// gametick window, or if its strikes land on both odd and even gameticks.
type unsplitLine struct {
	key, instrument int
	counts          map[int]int // gametick -> number of simultaneous hits
}

func newUnsplitLine(key, instrument int) *unsplitLine {
	return &unsplitLine{key: key, instrument: instrument, counts: map[int]int{}}
}

func (u *unsplitLine) addNote(tick int) { u.counts[tick]++ }
func (u *unsplitLine) isEmpty() bool    { return len(u.counts) == 0 }

// splitEven peels off every tick whose parity disagrees with the first
// tick's parity into a second line, returning either just u, or u plus the
// new line.
func (u *unsplitLine) splitEven() []*unsplitLine {
	if u.isEmpty() {
		return []*unsplitLine{u}
	}
	first := -1
	for t := range u.counts {
		if first == -1 || t < first {
			first = t
		}
	}
	evenness := ((first % 2) + 2) % 2
	other := newUnsplitLine(u.key, u.instrument)
	for t, c := range u.counts {
		if ((t%2)+2)%2 != evenness {
			other.counts[t] = c
			delete(u.counts, t)
		}
	}
	if other.isEmpty() {
		return []*unsplitLine{u}
	}
	return []*unsplitLine{u, other}
}

// splitFurther peels one fully-separated line (ticks all distinct, never
// closer together than 4 gameticks, each with count 1) off of u.
func (u *unsplitLine) splitFurther() *unsplitLine {
	other := newUnsplitLine(u.key, u.instrument)
	ticks := make([]int, 0, len(u.counts))
	for t := range u.counts {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)

	previous := -42 // no two notes can be closer than 4 gameticks
	for _, t := range ticks {
		if previous+4 <= t {
			previous = t
			other.counts[t] = 1
			if u.counts[t] > 1 {
				u.counts[t]--
			} else {
				delete(u.counts, t)
			}
		}
	}
	return other
}

// split fully decomposes u into the set of lines each buildable as one
// physical redstone line: same parity throughout, one hit per tick, no two
// hits closer than 4 gameticks apart.
func (u *unsplitLine) split() []*unsplitLine {
	if u.isEmpty() {
		panic("score: split called on an empty line")
	}
	var out []*unsplitLine
	for _, half := range u.splitEven() {
		for !half.isEmpty() {
			out = append(out, half.splitFurther())
		}
	}
	return out
}

// gametickMultiplier turns a song's tempo (and an optional override) into
// the factor an NBS tick is multiplied by to get a gametick.
func gametickMultiplier(song *Song, overrideTempo float64) float64 {
	tempo := song.TempoTicksPerSec
	if tempo == 6.75 {
		// NBS has no native 6.67 tps option; 6.75 almost always means "one
		// noteblock hit every 3 gameticks".
		tempo = 20.0 / 3.0
	}
	if overrideTempo > 0 {
		tempo = overrideTempo
	}
	return 20.0 / tempo
}

// linesFromSong converts a parsed NBS song into the set of fully separated
// lines ready to become SplitLines. overrideTempo, if > 0, replaces the
// song's own tempo (ticks per second).
func linesFromSong(song *Song, overrideTempo float64) []*unsplitLine {
	multiplier := gametickMultiplier(song, overrideTempo)

	byKey := map[[2]int]*unsplitLine{}
	var order [][2]int
	for _, n := range song.Notes {
		code := [2]int{n.Key, n.Instrument}
		line, ok := byKey[code]
		if !ok {
			line = newUnsplitLine(n.Key, n.Instrument)
			byKey[code] = line
			order = append(order, code)
		}
		gametick := int(0.5 + float64(n.Tick)*multiplier)
		line.addNote(gametick)
	}

	var result []*unsplitLine
	for _, code := range order {
		result = append(result, byKey[code].split()...)
	}
	return result
}

// PreviewNote is one noteblock strike with its gametick and derived
// noteblock pitch (0..24), independent of which physical redstone line it
// eventually ends up built on.
type PreviewNote struct {
	Gametick   int
	Note       int
	Instrument int
}

// PreviewNotes converts every note in song into the gameticks and pitches
// the compiled contraption would play. It skips the line-splitting and
// bisection machinery entirely, so tooling can audition a song without
// paying the cost of a full Compile. overrideTempo, if > 0, replaces the
// song's own tempo (ticks per second).
func PreviewNotes(song *Song, overrideTempo float64) []PreviewNote {
	multiplier := gametickMultiplier(song, overrideTempo)

	notes := make([]PreviewNote, 0, len(song.Notes))
	for _, n := range song.Notes {
		note := n.Key - 33
		for note < 0 {
			note += 12
		}
		for note > 24 {
			note -= 12
		}
		gametick := int(0.5 + float64(n.Tick)*multiplier)
		notes = append(notes, PreviewNote{Gametick: gametick, Note: note, Instrument: n.Instrument})
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Gametick < notes[j].Gametick })
	return notes
}
