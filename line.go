package galaxyjukebox

import (
	"fmt"
	"sort"
)

// side identifies which of the three contraption walls a line lives on.
type side int

const (
	sideLeft side = iota
	sideMiddle
	sideRight
)

// line represents one redstone wire corresponding to a single (pitch,
// instrument) pair, already split enough (by the score preprocessor) that
// it can be realized as a single physical line of delay cells. It is built
// up through a fixed sequence of methods, each of which extends the blocks
// already placed by the previous one: beginCircuit, buildNoteblock,
// buildSideTurn, buildVerticalAdjustment, buildHorizontalAdjustment,
// addDelayForVerticalConnection, buildJunction, buildDelays.
type line struct {
	note       int // 0..24, noteblock pitch
	instrument int
	delays     []int // redstone-tick delays between consecutive hits
	isEven     bool

	schem      blockSink
	pos        Vector // position of the block below the first noteblock
	forward    Vector
	side       side
	distToMid  int
	buildBlock string

	row, maxRow         int
	col, sideCol, maxCol int
}

// newLine converts a fully-split score line (ticks all on the same parity,
// one hit per gametick, in any order: they are sorted here) into a
// buildable line.
func newLine(key, instrument int, gameticks []int) *line {
	note := key - 33
	for note < 0 {
		note += 12
	}
	for note > 24 {
		note -= 12
	}

	ticks := append([]int(nil), gameticks...)
	sort.Ints(ticks)
	if len(ticks) == 0 {
		panic("newLine: called with no gameticks")
	}

	delays := make([]int, len(ticks))
	// A 4 gametick delay is prepended to the first hit, as if the previous
	// note had sounded at gametick -4, so it behaves like every other gap.
	delays[0] = (4 + ticks[0]) / 2
	for i := 1; i < len(ticks); i++ {
		delays[i] = (ticks[i] - ticks[i-1]) / 2
	}

	minDelay := delays[0]
	for _, d := range delays {
		if d < minDelay {
			minDelay = d
		}
	}
	if minDelay < 2 {
		panic(fmt.Sprintf("newLine: minimum delay must be >= 2, got %d", minDelay))
	}

	return &line{
		note:       note,
		instrument: instrument,
		delays:     delays,
		isEven:     ticks[0]%2 == 0,
	}
}

// beginCircuit records the line's position within the contraption; this is
// effectively post-construction initialization performed once the layout
// pass knows where every line goes.
func (l *line) beginCircuit(schem blockSink, pos Vector, forward Vector, sd side, distToMid, row, maxRow, col, sideCol, maxCol int) {
	l.schem = schem
	pos.Y--
	l.pos = pos
	l.forward = forward
	l.side = sd
	l.distToMid = distToMid
	l.buildBlock = buildingMaterial[l.instrument]

	if sideCol >= maxCol || row >= maxRow {
		panic("beginCircuit: row or col out of bounds")
	}
	l.row, l.maxRow = row, maxRow
	l.col, l.sideCol, l.maxCol = col, sideCol, maxCol
}

func (l *line) getPos() Vector { return l.pos }

// buildNoteblock places the noteblock itself, the material block under it
// that selects its instrument, and the first leg of redstone wire leaving
// it, patching in extra blocks at the top/bottom rows and side columns so
// the overall wall looks contiguous.
func (l *line) buildNoteblock(useRedstoneLamp bool) {
	up := V(0, 1, 0)

	conditionalPatchAboveBelow := func(vec Vector) {
		if l.row == 1 {
			setblock(l.schem, vec.Add(up.Scale(3)), l.buildBlock)
			setblock(l.schem, vec.Add(up.Scale(4)), l.buildBlock)
		}
		if l.row == l.maxRow-2 {
			setblock(l.schem, vec.Sub(up.Scale(4)), l.buildBlock)
			setblock(l.schem, vec.Sub(up.Scale(3)), l.buildBlock)
			setblock(l.schem, vec.Sub(up.Scale(2)), l.buildBlock)
		} else if l.row == l.maxRow-1 {
			setblock(l.schem, vec.Sub(up.Scale(2)), l.buildBlock)
		}
	}

	v := l.pos
	if useRedstoneLamp || instrumentNames[l.instrument] == "snare" {
		block := "tripwire"
		if useRedstoneLamp {
			block = "redstone_lamp"
		}
		setblock(l.schem, v.Sub(up), block)
	}
	setblock(l.schem, v, instrumentMaterial[l.instrument])
	setblock(l.schem, v.Add(up), fmt.Sprintf("note_block[note=%d,instrument=%s]", l.note, instrumentNames[l.instrument]))
	v = v.Add(l.forward)
	blockAndRedstone(l.schem, v.Sub(up), l.buildBlock, false)
	setblock(l.schem, v.Add(up.Scale(1)), l.buildBlock)
	setblock(l.schem, v.Add(up.Scale(2)), l.buildBlock)

	conditionalPatchAboveBelow(v)
	if l.sideCol == 0 && l.row%2 == 0 {
		left := l.forward.Rotated(true)
		setblock(l.schem, v.Add(left).Add(up.Scale(2)), l.buildBlock)
		setblock(l.schem, v.Add(left).Add(up.Scale(1)), l.buildBlock)
		setblock(l.schem, v.Add(left), l.buildBlock)
		setblock(l.schem, v.Add(left).Sub(up), l.buildBlock)
		conditionalPatchAboveBelow(v.Add(left))
	}
	if l.sideCol == l.maxCol-1 && l.row%2 == 1 {
		right := l.forward.Rotated(false)
		setblock(l.schem, v.Add(right).Add(up.Scale(2)), l.buildBlock)
		setblock(l.schem, v.Add(right).Add(up.Scale(1)), l.buildBlock)
		setblock(l.schem, v.Add(right), l.buildBlock)
		setblock(l.schem, v.Add(right).Sub(up), l.buildBlock)
		conditionalPatchAboveBelow(v.Add(right))
	}

	v = v.Add(l.forward)
	blockAndRepeater(l.schem, v, l.buildBlock, l.forward.Neg(), 1, false, false)
	v = v.Add(l.forward)
}

// buildSideTurn routes a non-middle line's signal sideways until it's
// aligned with the middle wall, padding the remaining delay budget
// (maxDelay) onto the first note so every line arrives at the junction in
// sync.
func (l *line) buildSideTurn(maxDelay int) {
	if l.side == sideMiddle {
		l.delays[0] += maxDelay
		return
	}
	v := l.pos

	rc := 0 // redstone placed since the last repeater, max 15
	placedDelay := 0
	for _, rotation := range [2]bool{true, false} {
		for i := 0; i < l.distToMid; i++ {
			if rc == 15 || (rc == 14 && i+2 == l.distToMid) {
				blockAndRepeater(l.schem, v, l.buildBlock, l.forward.Neg(), 1, false, false)
				placedDelay++
				rc = 0
			} else {
				blockAndRedstone(l.schem, v, l.buildBlock, false)
				rc++
			}
			v = v.Add(l.forward)
		}
		if rotation {
			v = v.Sub(l.forward)
			l.forward.Rotate(l.side == sideRight)
			v = v.Add(l.forward)
		}
	}

	blockAndRepeater(l.schem, v, l.buildBlock, l.forward.Neg(), 1, false, false)
	v = v.Add(l.forward)
	placedDelay++
	if rc > 15 {
		panic(fmt.Sprintf("buildSideTurn: redstone run >15 at col %d row %d", l.col, l.row))
	}
	if placedDelay > maxDelay {
		panic(fmt.Sprintf("buildSideTurn: placed more delay (%d) than allowed (%d) at col %d row %d", placedDelay, maxDelay, l.col, l.row))
	}
	l.delays[0] += maxDelay - placedDelay
}

// buildVerticalAdjustment walks the line forward while drifting it onto the
// shared baseline row used by the vertical connection bus, inserting a
// repeater pair every 14 blocks to keep the wire powered.
func (l *line) buildVerticalAdjustment() {
	v := l.pos
	maxNeededDiff := l.maxRow - 1
	neededDiff := maxNeededDiff - 2*l.row
	for i := 0; i <= maxNeededDiff; i++ {
		if i+abs(neededDiff) > maxNeededDiff {
			dy := 1
			if neededDiff < 0 {
				dy = -1
			}
			v = v.Add(V(0, dy, 0))
		}
		blockAndRedstone(l.schem, v, l.buildBlock, false)
		v = v.Add(l.forward)
		if (i+1)%14 == 0 {
			blockAndRepeater(l.schem, v, l.buildBlock, l.forward.Neg(), 1, false, false)
			v = v.Add(l.forward)
			blockAndRedstone(l.schem, v, l.buildBlock, false)
			v = v.Add(l.forward)
		}
	}
	blockAndRepeater(l.schem, v, l.buildBlock, l.forward.Neg(), 1, false, false)
	v = v.Add(l.forward)
}

// buildHorizontalAdjustment staggers side lines and odd rows sideways so
// every line's wire lands on the shared junction bus at the right offset.
func (l *line) buildHorizontalAdjustment() {
	v := l.pos
	blockAndRedstone(l.schem, v, l.buildBlock, false)
	v = v.Add(l.forward)

	dy := -1
	if l.col%2 != 0 {
		dy = 1
	}
	verticalOffset := V(0, dy, 0)
	var sideways Vector
	if l.side != sideMiddle {
		v = v.Add(verticalOffset)
		sideways = l.forward.Rotated(l.side == sideRight)
	}
	for i := 0; i < 3; i++ {
		blockAndRedstone(l.schem, v, l.buildBlock, false)
		v = v.Add(l.forward)
		if l.side != sideMiddle {
			blockAndRedstone(l.schem, v, l.buildBlock, false)
			v = v.Add(sideways)
		}
	}
	blockAndRedstone(l.schem, v, l.buildBlock, false)
	v = v.Add(l.forward)
	if l.side != sideMiddle {
		v = v.Sub(verticalOffset)
	}
	blockAndRedstone(l.schem, v, l.buildBlock, false)
	v = v.Add(l.forward)

	if l.row%2 == 0 {
		blockAndRedstone(l.schem, v, l.buildBlock, false)
		v = v.Add(l.forward)
	} else {
		v = v.Add(verticalOffset)
		sideways = l.forward.Rotated(true)
		blockAndRedstone(l.schem, v, l.buildBlock, false)
		v = v.Add(sideways)
		blockAndRedstone(l.schem, v, l.buildBlock, false)
		v = v.Add(l.forward)
		v = v.Sub(verticalOffset)
	}
	blockAndRedstone(l.schem, v, l.buildBlock, false)
	v = v.Add(l.forward)
}

// buildJunction wires the line onto the shared horizontal junction bus,
// padding the first note's delay so every line receives the start pulse in
// sync regardless of its column.
func (l *line) buildJunction(maxDelay int) {
	v := l.pos
	left := l.forward.Rotated(true)
	up := V(0, 1, 0)

	if l.col%2 == 0 {
		blockAndRepeater(l.schem, v.Add(left).Add(up.Scale(2)), evenDelayBuildBlock, left.Neg(), 1, false, false)
	} else {
		blockAndRedstone(l.schem, v.Add(left).Add(up.Scale(2)), evenDelayBuildBlock, false)
	}
	blockAndRedstone(l.schem, v, l.buildBlock, false)
	blockAndRedstone(l.schem, v.Add(up.Scale(2)), evenDelayBuildBlock, false)
	v = v.Add(l.forward)

	blockAndRepeater(l.schem, v, l.buildBlock, l.forward.Neg(), 1, false, false)
	if l.isEven {
		blockAndRedstone(l.schem, v.Add(up.Scale(2)), evenDelayBuildBlock, false)
	}
	v = v.Add(l.forward)

	if l.col%2 == 0 {
		blockAndRepeater(l.schem, v.Add(left).Add(up.Scale(3)), oddDelayBuildBlock, left.Neg(), 1, false, false)
	} else {
		blockAndRedstone(l.schem, v.Add(left).Add(up.Scale(3)), oddDelayBuildBlock, false)
	}
	setblock(l.schem, v.Add(up), l.buildBlock)
	if l.isEven {
		setblock(l.schem, v.Add(up.Scale(3)), evenDelayBuildBlock)
		setblock(l.schem, v.Add(up.Scale(4)), oddDelayBuildBlock)
	} else {
		blockAndRedstone(l.schem, v.Add(up.Scale(3)), oddDelayBuildBlock, false)
	}
	v = v.Add(l.forward)

	blockAndRedstone(l.schem, v, l.buildBlock, false)
	blockAndRepeater(l.schem, v.Add(up.Scale(2)), l.buildBlock, l.forward, 1, false, false)
	v = v.Add(l.forward)

	if maxDelay < l.col/2 {
		panic(fmt.Sprintf("buildJunction: maxDelay %d too low for col %d", maxDelay, l.col))
	}
	l.delays[0] += maxDelay - l.col/2
}

// addDelayForVerticalConnection accounts for the repeaters the vertical
// connection bus inserts every third row, which this line's signal must
// pass through before reaching the junction.
func (l *line) addDelayForVerticalConnection() {
	l.delays[0] += l.row / 3
}

// buildDelays lays out the entire spiral of delay cells encoding l.delays,
// turning left whenever it reaches one of the scheduled turns (distances
// measured from the previous turn; corner blocks count towards the
// previous leg). turns is consumed as the spiral proceeds.
func (l *line) buildDelays(turns []int) {
	v := l.pos
	up := V(0, 1, 0)
	placedBlocks := 0

	for delayIndex := 0; delayIndex < len(l.delays); delayIndex++ {
		delay := l.delays[delayIndex]
		md := delay
		for _, d := range l.delays[delayIndex:] {
			if d < md {
				md = d
			}
		}

		runAgain := true
		for runAgain {
			runAgain = false
			nextLength := delayLength(delay, md)

			switch {
			case len(turns) == 0 || placedBlocks+nextLength+1 < turns[0]:
				buildDelay(l.schem, l.buildBlock, &v, &l.forward, delay, md, true)
				placedBlocks += nextLength
			default:
				if placedBlocks+nextLength+1 == turns[0] {
					blockAndRedstone(l.schem, v, l.buildBlock, false)
					blockAndRedstone(l.schem, v.Add(up.Scale(2)), l.buildBlock, false)
					v = v.Add(l.forward)
					placedBlocks++
				}
				if placedBlocks+nextLength == turns[0] {
					buildDelay(l.schem, l.buildBlock, &v, &l.forward, delay, md, true)
				} else {
					runAgain = true
					mind := min(md, 9)
					remainingBlocks := turns[0] - placedBlocks

					if delay < 2*mind || remainingBlocks < delayLength(mind, mind) {
						if remainingBlocks != 2 && remainingBlocks != 3 {
							panic(fmt.Sprintf("buildDelays: remaining blocks should be 2 or 3, got %d", remainingBlocks))
						}
						for i := 0; i < remainingBlocks; i++ {
							blockAndRedstone(l.schem, v, l.buildBlock, false)
							blockAndRedstone(l.schem, v.Add(up.Scale(2)), l.buildBlock, false)
							v = v.Add(l.forward)
						}
					} else {
						delayBeforeTurn := bisectDelayHalvingPoint(remainingBlocks, delay, mind)
						delay -= delayBeforeTurn
						blocksForDelay := delayLength(delayBeforeTurn, md)
						remainingBlocks -= blocksForDelay
						if remainingBlocks < 0 || remainingBlocks > 3 {
							panic(fmt.Sprintf("buildDelays: remaining blocks should be 0..3, got %d", remainingBlocks))
						}
						for i := 0; i < remainingBlocks; i++ {
							blockAndRedstone(l.schem, v, l.buildBlock, false)
							blockAndRedstone(l.schem, v.Add(up.Scale(2)), l.buildBlock, false)
							v = v.Add(l.forward)
						}
						buildDelay(l.schem, l.buildBlock, &v, &l.forward, delayBeforeTurn, md, false)
					}
				}
				v = v.Sub(l.forward)
				l.forward.Rotate(true)
				v = v.Add(l.forward)
				placedBlocks = 0
				turns = turns[1:]
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
