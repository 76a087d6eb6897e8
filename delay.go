package galaxyjukebox

import "fmt"

// blockSink is anything that can have blocks placed into it by absolute
// Vector coordinate. Schematic implements it; delayLength uses a no-op
// sink to measure a delay cell's footprint without building it.
type blockSink interface {
	SetBlock(v Vector, block string)
}

type nullSink struct{}

func (nullSink) SetBlock(Vector, string) {}

func setblock(s blockSink, v Vector, block string) {
	s.SetBlock(v, block)
}

func blockAndRedstone(s blockSink, v Vector, buildBlock string, powered bool) {
	power := 0
	if powered {
		power = 15
	}
	s.SetBlock(v, buildBlock)
	s.SetBlock(v.Add(V(0, 1, 0)), fmt.Sprintf(
		"redstone_wire[east=side,north=side,power=%d,south=side,west=side]", power))
}

func blockAndRepeater(s blockSink, v Vector, buildBlock string, facingDirection Vector, delay int, locked, powered bool) {
	if delay < 1 || delay > 4 {
		panic(fmt.Sprintf("blockAndRepeater: invalid repeater delay %d at %v", delay, v))
	}
	s.SetBlock(v, buildBlock)
	s.SetBlock(v.Add(V(0, 1, 0)), fmt.Sprintf(
		"repeater[delay=%d,facing=%s,locked=%t,powered=%t]",
		delay, cardinalDirection(facingDirection.Neg()), locked, powered))
}

// delayLength returns the number of blocks of travel a delay cell for
// (delay, md) occupies, by building it against a sink that discards every
// write and reporting how far the cursor moved.
func delayLength(delay, md int) int {
	v := V(0, 0, 0)
	forward := V(0, 0, 1)
	buildDelay(nullSink{}, "", &v, &forward, delay, md, true)
	return v.Z
}

// DelayLength reports how many blocks of travel a single delay cell for
// (delay, md) occupies, without building it into a schematic. Exposed for
// tooling that wants to print or sanity-check the delay cell geometry.
func DelayLength(delay, md int) int { return delayLength(delay, md) }

// buildDelay places one redstone delay cell of the given (delay, md) pair,
// starting at *v and advancing *v by the cell's footprint along *forward.
// The signal enters on the top rail, runs forward through the cell's top
// repeaters, drops to the bottom rail at the cell's far end and runs back
// through the bottom repeaters, so it returns delay redstone ticks after it
// entered. If loopback is false the loopback redstone at the far end is
// replaced by a plain block, useful when the line is about to turn instead
// of continue straight.
//
// md is the minimum delay value anywhere later in the line: it bounds how
// large a repeater delay can be placed on the bottom rail, because two
// adjacent bottom-rail repeaters with certain delay combinations desync due
// to https://bugs.mojang.com/browse/MC-54711.
func buildDelay(s blockSink, buildBlock string, v, forward *Vector, delay, md int, loopback bool) {
	dRedstoneURepeater := func(uDelay int) {
		blockAndRedstone(s, *v, buildBlock, false)
		blockAndRepeater(s, v.Add(V(0, 2, 0)), buildBlock, *forward, uDelay, false, false)
		*v = v.Add(*forward)
	}
	dRepeaterURepeater := func(dDelay, uDelay int) {
		blockAndRepeater(s, *v, buildBlock, forward.Neg(), dDelay, false, false)
		blockAndRepeater(s, v.Add(V(0, 2, 0)), buildBlock, *forward, uDelay, false, false)
		*v = v.Add(*forward)
	}
	dBlockURepeater := func(uDelay int) {
		setblock(s, v.Add(V(0, 1, 0)), buildBlock)
		blockAndRepeater(s, v.Add(V(0, 2, 0)), buildBlock, *forward, uDelay, false, false)
		*v = v.Add(*forward)
	}
	dLoopbackUBlock := func(loopback bool) {
		if loopback {
			blockAndRedstone(s, v.Add(V(0, 1, 0)), buildBlock, false)
		} else {
			setblock(s, v.Add(V(0, 1, 0)), buildBlock)
		}
		setblock(s, v.Add(V(0, 3, 0)), buildBlock)
		*v = v.Add(*forward)
	}

	mustZero := func(delay int) {
		if delay != 0 {
			panic(fmt.Sprintf("buildDelay: %d ticks of delay left over, should be 0", delay))
		}
	}

	switch min(md, 9) {
	case 2:
		if delay%3 != 2 {
			delay--
			dRedstoneURepeater(1)
		}
		if delay%3 == 2 {
			delay -= 2
			dRepeaterURepeater(1, 1)
		}
		for delay > 0 {
			delay -= 3
			dBlockURepeater(1)
			dRepeaterURepeater(1, 1)
		}
		mustZero(delay)
		dLoopbackUBlock(loopback)
	case 3:
		if delay%2 == 1 {
			delay--
			dRedstoneURepeater(1)
		}
		for delay > 0 {
			delay -= 2
			dRepeaterURepeater(1, 1)
		}
		mustZero(delay)
		dLoopbackUBlock(loopback)
	case 4:
		switch {
		case delay == 4:
			delay -= 4
			dRepeaterURepeater(2, 2)
		case delay%4 == 0:
			delay -= 4
			dRepeaterURepeater(1, 1)
			dRepeaterURepeater(1, 1)
		case delay%4 == 1:
			delay -= 5
			dRepeaterURepeater(1, 1)
			dRepeaterURepeater(1, 2)
		case delay%4 == 2:
			delay -= 2
			dRepeaterURepeater(1, 1)
		case delay%4 == 3:
			delay -= 3
			dRepeaterURepeater(1, 2)
		}
		for delay > 0 {
			delay -= 4
			dRepeaterURepeater(2, 2)
		}
		mustZero(delay)
		dLoopbackUBlock(loopback)
	case 5:
		if delay%4 == 0 {
			for delay > 0 {
				delay -= 4
				dRepeaterURepeater(2, 2)
			}
			mustZero(delay)
			dLoopbackUBlock(loopback)
		} else {
			buildDelay(s, buildBlock, v, forward, delay, 4, loopback)
		}
	case 6:
		switch {
		case delay == 6:
			delay -= 6
			dRepeaterURepeater(3, 3)
		case delay%6 == 0 || delay%6 == 1:
			rem := delay % 6
			delay -= 6 + rem
			dRepeaterURepeater(1, 1)
			dRepeaterURepeater(1+rem, 3)
		default:
			rem := delay % 6
			delay -= rem
			dDelay := 1
			if rem == 5 {
				dDelay = 2
			}
			dRepeaterURepeater(dDelay, rem-dDelay)
		}
		for delay > 0 {
			delay -= 6
			dRepeaterURepeater(3, 3)
		}
		mustZero(delay)
		dLoopbackUBlock(loopback)
	case 7:
		if delay%6 == 0 {
			for delay > 0 {
				delay -= 6
				dRepeaterURepeater(3, 3)
			}
			mustZero(delay)
			dLoopbackUBlock(loopback)
		} else {
			buildDelay(s, buildBlock, v, forward, delay, 6, loopback)
		}
	case 8:
		switch {
		case delay == 8:
			delay -= 8
			dRepeaterURepeater(4, 4)
		case delay%8 == 0 || delay%8 == 1:
			rem := delay % 8
			delay -= 8 + rem
			dRepeaterURepeater(1, 1)
			dRepeaterURepeater(2+rem, 4)
		default:
			rem := delay % 8
			delay -= rem
			dDelay := 1
			if rem == 6 || rem == 7 {
				dDelay = rem - 4
			}
			dRepeaterURepeater(dDelay, rem-dDelay)
		}
		for delay > 0 {
			delay -= 8
			dRepeaterURepeater(4, 4)
		}
		mustZero(delay)
		dLoopbackUBlock(loopback)
	default: // md >= 9
		if delay%8 == 0 {
			for delay > 0 {
				delay -= 8
				dRepeaterURepeater(4, 4)
			}
			mustZero(delay)
			dLoopbackUBlock(loopback)
		} else {
			buildDelay(s, buildBlock, v, forward, delay, 8, loopback)
		}
	}
}

// bisectDelayHalvingPoint finds the largest delayBeforeTurn in
// [mind, delay-mind] such that the delay cell built for it fits within
// remainingBlocks, while still leaving the leftover delay after the turn
// buildable (either >= mind, or exactly the amount that makes the
// almost-too-long/too-long pair resolve). See split_lines.py's
// bisect_delay_halving_point (itself the product of a longer history, see
// https://github.com/4321ba/Galaxy_Jukebox/blob/fb43d9307477052ae2116b9a90e35f7e8167b977/split_lines.py#L312-L359)
// for the derivation.
func bisectDelayHalvingPoint(remainingBlocks, delay, mind int) int {
	low, high := mind, delay-mind
	for low <= high {
		mid := (low + high) / 2
		delayBeforeTurn := mid
		delayAfterTurn := delay - delayBeforeTurn
		almostTooLong := delayLength(delayBeforeTurn+1, mind) > remainingBlocks || delayAfterTurn == mind
		tooLong := delayLength(delayBeforeTurn, mind) > remainingBlocks

		switch {
		case almostTooLong && tooLong:
			high = mid - 1
		case !almostTooLong && !tooLong:
			low = mid + 1
		case almostTooLong && !tooLong:
			return delayBeforeTurn
		default:
			panic("bisectDelayHalvingPoint: almostTooLong false but tooLong true, impossible")
		}
	}
	panic("bisectDelayHalvingPoint: no halving point found; caller guaranteed one exists")
}
