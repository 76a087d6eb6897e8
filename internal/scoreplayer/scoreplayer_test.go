package scoreplayer

import (
	"math"
	"testing"
)

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		note int
		want float64
	}{
		{12, 440.0},
		{0, 440.0 / 4},
		{24, 440.0 * 4},
	}
	for _, tc := range tests {
		if got := noteFrequency(tc.note); math.Abs(got-tc.want) > 0.01 {
			t.Errorf("noteFrequency(%d) = %f, want %f", tc.note, got, tc.want)
		}
	}
}

func TestPlayerFiresEventsInOrder(t *testing.T) {
	events := []NoteEvent{{Gametick: 0, Note: 12}, {Gametick: 5, Note: 14}}
	p := NewPlayer(events, 44100, nil)

	out := make([]int16, 44100) // 0.5s stereo
	p.GenerateAudio(out)

	if p.nextEvent != 2 {
		t.Errorf("expected both events to have fired, nextEvent=%d", p.nextEvent)
	}
}

func TestPlayerEventuallyDone(t *testing.T) {
	events := []NoteEvent{{Gametick: 0, Note: 12}}
	p := NewPlayer(events, 44100, nil)

	out := make([]int16, 44100*2) // 1s stereo
	for i := 0; i < 10 && !p.Done(); i++ {
		p.GenerateAudio(out)
	}

	if !p.Done() {
		t.Errorf("expected player to be done after the voice decays")
	}
}
