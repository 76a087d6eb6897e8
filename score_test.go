package galaxyjukebox

import (
	"testing"

	clone "github.com/huandu/go-clone/generic"
)

// testSongFixture is the base song test cases clone and mutate, rather than
// rebuilding a Song literal from scratch per case.
var testSongFixture = Song{
	Name:             "testsong",
	TempoTicksPerSec: 20.0,
	Notes:            []NBSNote{{Tick: 0, Key: 45, Instrument: 0}},
}

func countTicks(u *unsplitLine) int {
	total := 0
	for _, c := range u.counts {
		total += c
	}
	return total
}

func TestSplitEvenSeparatesParity(t *testing.T) {
	u := newUnsplitLine(33, 0)
	u.addNote(0)
	u.addNote(2)
	u.addNote(3)
	u.addNote(5)

	out := u.splitEven()
	if len(out) != 2 {
		t.Fatalf("splitEven returned %d lines, want 2", len(out))
	}
	for t2 := range out[0].counts {
		if t2%2 != 0 {
			t.Errorf("first line has odd tick %d", t2)
		}
	}
	for t2 := range out[1].counts {
		if t2%2 != 1 {
			t.Errorf("second line has even tick %d", t2)
		}
	}
}

func TestSplitEvenNoOpWhenAlreadySameParity(t *testing.T) {
	u := newUnsplitLine(33, 0)
	u.addNote(0)
	u.addNote(2)
	u.addNote(4)

	out := u.splitEven()
	if len(out) != 1 {
		t.Fatalf("splitEven returned %d lines, want 1 (no mixed parity)", len(out))
	}
}

func TestSplitFurtherSeparatesCloseHits(t *testing.T) {
	u := newUnsplitLine(33, 0)
	u.addNote(0)
	u.addNote(2) // closer than 4 gameticks to 0, must go on a different line

	other := u.splitFurther()
	if _, ok := other.counts[0]; !ok {
		t.Error("first hit should be taken by splitFurther")
	}
	if _, ok := u.counts[2]; !ok {
		t.Error("second hit, too close, should remain behind")
	}
}

func TestSplitFullyDecomposesOverlappingHits(t *testing.T) {
	u := newUnsplitLine(33, 0)
	for _, tick := range []int{0, 1, 2, 3} {
		u.addNote(tick)
	}

	lines := u.split()

	total := 0
	for _, l := range lines {
		total += countTicks(l)

		// Every resulting line must be internally buildable: one hit per
		// tick, all the same parity.
		parity := -1
		for tick, c := range l.counts {
			if c != 1 {
				t.Errorf("line has %d simultaneous hits at tick %d, want 1", c, tick)
			}
			if parity == -1 {
				parity = tick % 2
			} else if tick%2 != parity {
				t.Errorf("line mixes parity: tick %d", tick)
			}
		}
	}
	if total != 4 {
		t.Errorf("split lost or duplicated hits: total %d, want 4", total)
	}
}

func TestLinesFromSongGroupsByKeyAndInstrument(t *testing.T) {
	song := clone.Clone(testSongFixture)
	song.TempoTicksPerSec = 20.0 // multiplier = 1, gametick == tick
	song.Notes = []NBSNote{
		{Tick: 0, Key: 45, Instrument: 0},
		{Tick: 4, Key: 45, Instrument: 0},
		{Tick: 0, Key: 50, Instrument: 1},
	}

	lines := linesFromSong(&song, 0)
	if len(lines) != 2 {
		t.Fatalf("linesFromSong returned %d lines, want 2", len(lines))
	}
}

func TestLinesFromSongAppliesTempoOverride(t *testing.T) {
	song := clone.Clone(testSongFixture)
	song.TempoTicksPerSec = 10.0
	song.Notes = []NBSNote{{Tick: 10, Key: 45, Instrument: 0}}

	lines := linesFromSong(&song, 20.0) // override to 1:1 tick/gametick
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if _, ok := lines[0].counts[10]; !ok {
		t.Errorf("counts = %v, want a hit at gametick 10 with the override tempo", lines[0].counts)
	}
}

func TestGametickMultiplierHandlesSpecialTempo(t *testing.T) {
	song := clone.Clone(testSongFixture)
	song.TempoTicksPerSec = 6.75
	got := gametickMultiplier(&song, 0)
	want := 20.0 / (20.0 / 3.0)
	if got != want {
		t.Errorf("gametickMultiplier = %v, want %v", got, want)
	}
}

func TestPreviewNotesSortedByGametick(t *testing.T) {
	song := clone.Clone(testSongFixture)
	song.Notes = []NBSNote{
		{Tick: 5, Key: 33, Instrument: 0},
		{Tick: 1, Key: 45, Instrument: 0},
	}

	notes := PreviewNotes(&song, 0)
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(notes))
	}
	if notes[0].Gametick > notes[1].Gametick {
		t.Errorf("PreviewNotes not sorted by gametick: %+v", notes)
	}
}
