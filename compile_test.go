package galaxyjukebox

import "testing"

func tinySong() *Song {
	var notes []NBSNote
	for tick := 0; tick < 40; tick += 4 {
		notes = append(notes, NBSNote{Tick: tick, Key: 45, Instrument: 0})
	}
	return &Song{Name: "tiny", TempoTicksPerSec: 20.0, Notes: notes}
}

func TestCompileRejectsEmptySong(t *testing.T) {
	song := &Song{TempoTicksPerSec: 20.0}
	if _, err := Compile(song, Options{}); err != ErrEmptySong {
		t.Errorf("Compile(empty song) err = %v, want ErrEmptySong", err)
	}
}

func TestCompileRejectsInvalidSides(t *testing.T) {
	song := tinySong()
	_, err := Compile(song, Options{Sides: Sides(99)})
	if err != ErrInvalidSides {
		t.Errorf("Compile err = %v, want ErrInvalidSides", err)
	}
}

func TestCompileProducesNonEmptySchematic(t *testing.T) {
	schem, err := Compile(tinySong(), Options{Sides: SidesOne})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	b := schem.Bounds()
	if b.MaxX <= b.MinX && b.MaxZ <= b.MinZ {
		t.Errorf("expected a contraption with some horizontal footprint, got bounds %+v", b)
	}

	data, err := schem.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(data) == 0 {
		t.Error("Save returned no data")
	}
}

func TestCompileHonorsDataVersionOverride(t *testing.T) {
	schem, err := Compile(tinySong(), Options{Sides: SidesOne, DataVersion: 3120})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if schem.dataVersion != 3120 {
		t.Errorf("dataVersion = %d, want 3120", schem.dataVersion)
	}
}

func TestCompileAutoSidesPicksOneForSmallSongs(t *testing.T) {
	schem, err := Compile(tinySong(), Options{Sides: SidesAuto})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	// A single-note-pitch song never needs more than a handful of lines,
	// well under the sides=1 threshold, so its footprint should stay small
	// rather than the wide multi-wall layout sides=3 would produce.
	b := schem.Bounds()
	width := b.MaxX - b.MinX
	if width > 50 {
		t.Errorf("auto-sides footprint suspiciously wide for a tiny song: %+v", b)
	}
}
