package galaxyjukebox

import "testing"

func TestCalculateMinRenderDistanceNeeded(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		want   int
	}{
		{"origin only", Bounds{}, 2},
		{"16 blocks out exactly", Bounds{MaxX: 16}, 3},
		{"negative extent dominates", Bounds{MinX: -33}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := calculateMinRenderDistanceNeeded(tc.bounds); got != tc.want {
				t.Errorf("calculateMinRenderDistanceNeeded(%+v) = %d, want %d", tc.bounds, got, tc.want)
			}
		})
	}
}

func TestSignChunkSplitsIntoFifteenCharacterRows(t *testing.T) {
	title := "A Song Title That Is Longer Than Sixty Characters Exactly Here!!"
	if len(title) < 60 {
		t.Fatalf("test fixture title too short: %d chars", len(title))
	}

	for i, start := range []int{0, 15, 30, 45} {
		chunk := signChunk(title, start)
		if len(chunk) > 15 {
			t.Errorf("chunk %d longer than 15 chars: %q", i, chunk)
		}
	}
}

func TestSignChunkPastEndIsEmpty(t *testing.T) {
	if got := signChunk("short", 15); got != "" {
		t.Errorf("signChunk past the title's end = %q, want empty", got)
	}
}

func TestSignChunkReturnsShortTitleWhole(t *testing.T) {
	title := "Twelve chars"
	if got := signChunk(title, 0); got != title {
		t.Errorf("signChunk(%q, 0) = %q, want the whole short title back", title, got)
	}
}
