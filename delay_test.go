package galaxyjukebox

import (
	"testing"

	"github.com/4321ba/galaxyjukebox/internal/railtrace"
)

// railAdapter lets buildDelay, which only knows about absolute Vector
// coordinates, feed a railtrace.Sink, which only cares about position
// relative to the cell's own entry point.
type railAdapter struct{ sink *railtrace.Sink }

func (r railAdapter) SetBlock(v Vector, block string) {
	r.sink.SetBlock(v.X, v.Y, v.Z, block)
}

func TestBuildDelayMatchesRequestedLatency(t *testing.T) {
	for md := 2; md <= 9; md++ {
		for _, delay := range []int{md, md + 1, md + 3, md + 8, md + 20} {
			sink := railtrace.New()
			v := V(0, 0, 0)
			forward := V(0, 0, 1)
			buildDelay(railAdapter{sink}, "polished_andesite", &v, &forward, delay, md, true)

			if got := sink.Latency(); got != delay {
				t.Errorf("md=%d delay=%d: built latency = %d, want %d", md, delay, got, delay)
			}
		}
	}
}

func TestDelayLengthGrowsWithDelay(t *testing.T) {
	short := delayLength(5, 2)
	long := delayLength(50, 2)
	if long < short {
		t.Errorf("delayLength(50,2)=%d should be >= delayLength(5,2)=%d", long, short)
	}
}

func TestDelayLengthMatchesExportedWrapper(t *testing.T) {
	if got, want := DelayLength(10, 3), delayLength(10, 3); got != want {
		t.Errorf("DelayLength(10,3) = %d, want %d", got, want)
	}
}
