package railtrace

import "testing"

func TestLatencySumsBothRails(t *testing.T) {
	s := New()
	s.SetBlock(0, 0, 0, "polished_andesite")
	s.SetBlock(0, 1, 0, "repeater[delay=3,facing=north,locked=false,powered=false]")
	s.SetBlock(0, 2, 0, "polished_andesite")
	s.SetBlock(0, 3, 0, "repeater[delay=2,facing=south,locked=false,powered=false]")
	s.SetBlock(1, 1, 0, "repeater[delay=1,facing=north,locked=false,powered=false]")

	if got, want := s.Latency(), 6; got != want {
		t.Errorf("Latency() = %d, want %d", got, want)
	}
}

func TestLatencyIgnoresNonRepeaters(t *testing.T) {
	s := New()
	s.SetBlock(0, 1, 0, "redstone_wire[east=side,north=side,power=0,south=side,west=side]")
	s.SetBlock(0, 3, 0, "polished_granite")

	if got, want := s.Latency(), 0; got != want {
		t.Errorf("Latency() = %d, want %d", got, want)
	}
}
