package galaxyjukebox

import "testing"

func TestNewLineComputesDelaysAndParity(t *testing.T) {
	// key=33 -> note 0. Ticks 4, 12, 20 are all even, 8 gameticks apart,
	// so the first delay is (4+4)/2=4, the others 8/2=4, and isEven is true.
	l := newLine(33, 0, []int{20, 4, 12})

	want := []int{4, 4, 4}
	if len(l.delays) != len(want) {
		t.Fatalf("delays = %v, want length %d", l.delays, len(want))
	}
	for i, d := range l.delays {
		if d != want[i] {
			t.Errorf("delays[%d] = %d, want %d", i, d, want[i])
		}
	}
	if !l.isEven {
		t.Error("isEven = false, want true for all-even ticks")
	}
}

func TestNewLineWrapsNoteIntoRange(t *testing.T) {
	tests := []struct {
		key      int
		wantNote int
	}{
		{33, 0},  // lowest in-range key
		{57, 24}, // highest in-range key
		{20, 11}, // 20-33=-13, +12 twice lands on 11
		{90, 21}, // 90-33=57, -12 three times lands on 21
	}
	for _, tc := range tests {
		l := newLine(tc.key, 0, []int{8})
		if l.note != tc.wantNote {
			t.Errorf("newLine(%d,...).note = %d, want %d", tc.key, l.note, tc.wantNote)
		}
	}
}

func TestNewLinePanicsOnTooCloseHits(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for hits closer than 4 gameticks apart")
		}
	}()
	newLine(33, 0, []int{0, 1})
}

func TestNewLinePanicsOnEmptyTicks(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for no gameticks")
		}
	}()
	newLine(33, 0, nil)
}
