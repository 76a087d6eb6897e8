package galaxyjukebox

import (
	"bytes"
	"encoding/binary"
	"testing"
)

type nbsTestNote struct {
	tick, instrument, key int
}

// buildNBS assembles a minimal, valid version-5 .nbs file containing one
// noteblock hit per entry in notes, each on its own tick and layer 0. notes
// must be in increasing tick order, matching the on-disk delta encoding.
func buildNBS(t *testing.T, tempoHundredths int16, notes []nbsTestNote) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("building fixture: %v", err)
		}
	}
	wstr := func(s string) {
		w(int32(len(s)))
		buf.WriteString(s)
	}

	w(int16(0))       // firstShort == 0 -> new-format header follows
	w(byte(5))        // version
	w(byte(16))       // vanilla instrument count
	w(int16(0))       // song length in ticks (unused)
	w(int16(1))       // layer count (unused, recomputed from notes)
	wstr("Test Song") // name
	wstr("Author")    // author
	wstr("")          // original author
	wstr("")          // description
	w(tempoHundredths)
	w(byte(0)) // auto-save
	w(byte(0)) // auto-save duration
	w(byte(4)) // time signature
	for i := 0; i < 5; i++ {
		w(int32(0)) // minutes spent, left/right clicks, blocks added/removed
	}
	wstr("") // imported file name
	w(byte(0))
	w(byte(0))
	w(int16(0)) // loop enabled, max loop count, loop start

	lastTick := -1
	for _, n := range notes {
		w(int16(n.tick - lastTick)) // tick jump
		lastTick = n.tick
		w(int16(1)) // layer jump: from -1 to layer 0
		w(byte(n.instrument))
		w(byte(n.key))
		w(byte(100)) // velocity
		w(byte(100)) // panning (centre)
		w(int16(0))  // fine pitch
		w(int16(0))  // end of layer list for this tick
	}
	w(int16(0)) // end of tick list

	return buf.Bytes()
}

func TestReadNBSParsesHeaderAndNotes(t *testing.T) {
	data := buildNBS(t, 1000, []nbsTestNote{
		{tick: 1, instrument: 0, key: 45}, // harp
		{tick: 4, instrument: 1, key: 33}, // bass
	})

	song, err := ReadNBS(data)
	if err != nil {
		t.Fatalf("ReadNBS: %v", err)
	}

	if song.Name != "Test Song" || song.Author != "Author" {
		t.Errorf("got name=%q author=%q", song.Name, song.Author)
	}
	if song.TempoTicksPerSec != 10.0 {
		t.Errorf("TempoTicksPerSec = %v, want 10.0", song.TempoTicksPerSec)
	}
	if len(song.Notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(song.Notes))
	}
	if song.Notes[0] != (NBSNote{Tick: 1, Key: 45, Instrument: 0}) {
		t.Errorf("notes[0] = %+v", song.Notes[0])
	}
	if song.Notes[1] != (NBSNote{Tick: 4, Key: 33, Instrument: 1}) {
		t.Errorf("notes[1] = %+v", song.Notes[1])
	}
}

func TestReadNBSDropsCustomInstruments(t *testing.T) {
	data := buildNBS(t, 1000, []nbsTestNote{
		{tick: 1, instrument: 20, key: 45}, // custom instrument index, dropped
		{tick: 2, instrument: 2, key: 40},  // vanilla basedrum, kept
	})

	song, err := ReadNBS(data)
	if err != nil {
		t.Fatalf("ReadNBS: %v", err)
	}
	if len(song.Notes) != 1 {
		t.Fatalf("got %d notes, want 1 (custom instrument dropped)", len(song.Notes))
	}
	if song.Notes[0].Instrument != 2 {
		t.Errorf("Instrument = %d, want 2", song.Notes[0].Instrument)
	}
}

func TestReadNBSRejectsGarbage(t *testing.T) {
	if _, err := ReadNBS([]byte{1, 2, 3}); err == nil {
		t.Error("expected an error for truncated/garbage input")
	}
}
