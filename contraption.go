package galaxyjukebox

import "fmt"

// buildVerticalConnection lays the paired andesite/granite bus that carries
// the start pulse from the 1-gametick delayer up to every row's junction,
// inserting a repeater pair every third row. beginV is the even (andesite)
// connector position of the very first (upper-left) line; the extra delay
// this bus adds to each row is compensated for in
// line.addDelayForVerticalConnection.
func buildVerticalConnection(schem blockSink, beginV Vector, height int) Vector {
	doubleBlockAndRedstone := func(andesiteV, relGraniteV Vector) {
		blockAndRedstone(schem, andesiteV, evenDelayBuildBlock, false)
		blockAndRedstone(schem, andesiteV.Add(relGraniteV), oddDelayBuildBlock, false)
	}
	doubleBlockAndRepeater := func(andesiteV, relGraniteV, direction Vector) {
		blockAndRepeater(schem, andesiteV, evenDelayBuildBlock, direction, 1, false, false)
		blockAndRepeater(schem, andesiteV.Add(relGraniteV), oddDelayBuildBlock, direction, 1, false, false)
	}

	forward := V(1, 0, 0)
	granite := V(0, 0, 2)
	for h := 0; h < height-1; h++ {
		v := beginV.Sub(V(0, 4*h, 0))
		doubleBlockAndRedstone(v, granite)
		v = v.Add(forward)
		blockAndRedstone(schem, v.Add(V(0, -3, 0)), evenDelayBuildBlockSlab, false)
		blockAndRedstone(schem, v.Add(V(0, -3, 2)), oddDelayBuildBlockSlab, false)
		blockAndRedstone(schem, v.Add(V(0, -1, 0)), evenDelayBuildBlockSlab, false)
		blockAndRedstone(schem, v.Add(V(0, -1, 2)), oddDelayBuildBlockSlab, false)
		v = v.Add(forward)
		if (h+1)%3 == 0 {
			doubleBlockAndRepeater(v.Add(V(0, -3, 0)), granite, forward)
			doubleBlockAndRedstone(v.Add(V(0, -1, 0)), granite)
			v = v.Add(forward)
		}
		doubleBlockAndRedstone(v.Add(V(0, -2, 0)), granite)
	}

	v := beginV.Sub(V(0, 4*(height-1), 0))
	doubleBlockAndRedstone(v, granite)
	v = v.Add(forward)
	v = v.Add(V(0, -1, 0))
	doubleBlockAndRepeater(v, granite, forward.Neg())
	v = v.Add(forward)
	doubleBlockAndRedstone(v, granite)
	v = v.Add(forward)
	doubleBlockAndRedstone(v, granite)
	blockAndRedstone(schem, v.Add(V(1, 0, 2)), oddDelayBuildBlock, false)
	blockAndRedstone(schem, v.Add(V(2, 0, 2)), oddDelayBuildBlock, false)
	blockAndRedstone(schem, v.Add(V(2, 0, 1)), oddDelayBuildBlock, false)
	blockAndRedstone(schem, v.Add(V(2, 0, 0)), oddDelayBuildBlock, false)

	forward.Rotate(true)
	v = v.Add(forward)
	return v
}

// build1GTDelayer builds the edge-triggered circuit (an observer watching
// an oak trapdoor over scaffolding) that turns the button press at the
// start of the contraption into exactly two separate 1-gametick pulses, one
// per parity of delay cell. v is the block before the even/andesite bottom
// repeater; v+(2,0,0) is the block before the odd/granite one.
func build1GTDelayer(schem blockSink, v, forward Vector) Vector {
	right := forward.Rotated(false)
	up := V(0, 1, 0)

	blockAndRedstone(schem, v, evenDelayBuildBlock, false)
	blockAndRedstone(schem, v.Add(right.Scale(2)), oddDelayBuildBlock, false)
	v = v.Add(forward)
	blockAndRedstone(schem, v.Sub(up), evenDelayBuildBlock, false)
	blockAndRedstone(schem, v.Add(right.Scale(2)), oddDelayBuildBlock, false)
	v = v.Add(forward)
	blockAndRepeater(schem, v.Sub(up), evenDelayBuildBlock, forward.Neg(), 1, false, false)
	blockAndRedstone(schem, v.Add(up), startLineBuildBlock, true)
	blockAndRepeater(schem, v.Add(right), startLineBuildBlock, right, 1, false, true)
	blockAndRepeater(schem, v.Add(right.Scale(2)), evenDelayBuildBlock, forward.Neg(), 1, true, false)
	v = v.Add(forward)
	blockAndRepeater(schem, v.Sub(up), evenDelayBuildBlock, forward.Neg(), 1, false, false)
	blockAndRedstone(schem, v.Add(up), startLineBuildBlock, true)
	setblock(schem, v.Add(up).Add(right.Scale(2)), fmt.Sprintf("observer[facing=%s]", cardinalDirection(forward)))
	v = v.Add(forward)
	blockAndRedstone(schem, v.Sub(up), evenDelayBuildBlock, false)
	blockAndRedstone(schem, v.Add(up), startLineBuildBlock, true)
	setblock(schem, v.Add(right.Scale(2)), fmt.Sprintf("oak_trapdoor[facing=%s,half=top]", cardinalDirection(forward.Neg())))
	setblock(schem, v.Add(right.Scale(2)).Add(up), "scaffolding")
	v = v.Add(forward)
	blockAndRedstone(schem, v.Sub(up), evenDelayBuildBlock, false)
	blockAndRedstone(schem, v.Add(up), startLineBuildBlock, true)
	blockAndRedstone(schem, v.Add(right).Sub(up), evenDelayBuildBlock, false)
	setblock(schem, v.Add(right.Scale(2)), evenDelayBuildBlock)
	setblock(schem, v.Add(right.Scale(2)).Add(up), "scaffolding")
	v = v.Add(forward)
	blockAndRedstone(schem, v, startLineBuildBlock, true)
	blockAndRepeater(schem, v.Add(right).Sub(up), startLineBuildBlock, right, 1, false, true)
	blockAndRepeater(schem, v.Add(right.Scale(2)).Sub(up), startLineBuildBlock, forward.Neg(), 1, true, false)
	v = v.Add(forward)
	setblock(schem, v, startLineBuildBlock)
	setblock(schem, v.Add(up), "redstone_torch")
	blockAndRepeater(schem, v.Add(right), startLineBuildBlock, right, 1, false, true)
	blockAndRedstone(schem, v.Add(right.Scale(2)), startLineBuildBlock, true)
	v = v.Add(forward)
	v = v.Sub(up)
	return v
}

// buildGlassWalkway builds the glass bridge from the player's listening
// position down to the 1gt delayer, the two informational signs (render
// distance requirement and song title, split across four 15-character
// rows), a ladder shaft, and the stone button wired back to the delayer via
// a diorite signal line.
func buildGlassWalkway(schem blockSink, playerPos, forward Vector, oneGTDelayerPos Vector, length, depth int, title string, minRenderDist int) {
	right := forward.Rotated(false)
	up := V(0, 1, 0)
	v := playerPos.Sub(up).Sub(forward)
	for i := 0; i < length+2; i++ {
		setblock(schem, v, "glass")
		setblock(schem, v.Add(right), "glass")
		v = v.Add(forward)
	}

	setblock(schem, v.Add(up).Sub(forward).Add(right), fmt.Sprintf(
		`birch_sign[rotation=8]{Text1: '{"text":"Created with"}', Text2: '{"text":"Note Block Studio"}', Text3: '{"text":"Render distance"}', Text4: '{"text":"must be >= %d !"}'}`,
		minRenderDist))

	title1, title2, title3, title4 := signChunk(title, 0), signChunk(title, 15), signChunk(title, 30), signChunk(title, 45)
	setblock(schem, v.Add(up).Sub(forward), fmt.Sprintf(
		`birch_sign[rotation=8]{Text1: '{"text":"%s"}', Text2: '{"text":"%s"}', Text3: '{"text":"%s"}', Text4: '{"text":"%s"}'}`,
		title1, title2, title3, title4))

	saveV := v
	for i := 0; i < depth; i++ {
		setblock(schem, v, "glass")
		setblock(schem, v.Add(right), "glass")
		setblock(schem, v.Add(forward), "ladder")
		setblock(schem, v.Add(forward).Add(right), "ladder")
		v = v.Sub(up)
	}

	v = saveV.Add(right.Scale(2))
	forward = right
	goal := oneGTDelayerPos
	setblock(schem, v, startLineBuildBlock)
	setblock(schem, v.Add(up), fmt.Sprintf("stone_button[face=floor,facing=%s]", cardinalDirection(forward)))
	v = v.Add(forward)
	v = v.Sub(up)

	rc := 0
	for _, rotation := range [2]bool{true, false} {
		diffForward := goal.GetCoord(forward) - v.GetCoord(forward) + 1
		for i := 0; i < diffForward; i++ {
			if rc == 15 || (rc == 14 && i+2 == diffForward) {
				blockAndRepeater(schem, v, startLineBuildBlock, forward, 1, false, false)
				rc = 0
			} else {
				blockAndRedstone(schem, v, startLineBuildBlock, false)
				rc++
				if v.Y > goal.Y {
					v = v.Sub(up)
				} else if v.Y < goal.Y {
					v = v.Add(up)
				}
			}
			v = v.Add(forward)
		}
		if rotation {
			v = v.Sub(forward)
			forward.Rotate(false)
			v = v.Add(forward)
		}
	}
	if v.Y != goal.Y {
		panic("buildGlassWalkway: diorite line is not aligned vertically with the 1gt delayer")
	}
}

func signChunk(title string, start int) string {
	if start >= len(title) {
		return ""
	}
	end := start + 15
	if end > len(title) {
		end = len(title)
	}
	return title[start:end]
}

// calculateMinRenderDistanceNeeded returns the minimum render distance a
// player needs, standing at the origin, for the whole contraption's
// redstone to stay loaded. See
// https://minecraft.fandom.com/wiki/Chunk#Level_and_load_type : a render
// distance of 5, for example, means only the chunk a player stands in and
// the three neighboring rings are kept ticking, so redstone more than
// distance-2 chunks away won't function. A block n blocks out along x or z
// is counted as n/16 chunks away, giving n/16+2 for the farthest block.
func calculateMinRenderDistanceNeeded(bounds Bounds) int {
	maxDistance := max(-bounds.MinX, -bounds.MinZ, bounds.MaxX, bounds.MaxZ)
	return maxDistance/16 + 2
}

// buildContraption lays out every line across up to three walls
// (left/middle/right, each a 2-wide-per-column checkerboard), builds each
// line's noteblock/turn/vertical/horizontal stages, wires them onto the
// shared vertical connection bus and junction, and finally builds each
// line's delay spiral and the glass walkway back to the listening spot.
func buildContraption(schem boundedSink, lines []*line, leftWidth, middleWidth, rightWidth, height int, title string, useRedstoneLamp bool) Vector {
	width := leftWidth + middleWidth + rightWidth
	if len(lines) < 1 || len(lines) > width*height {
		panic(fmt.Sprintf("buildContraption: %d lines but only %d places", len(lines), width*height))
	}
	viewDistance := max(leftWidth, rightWidth, middleWidth)

	beginLines := func(upperLeftCorner Vector, prevWidth, w, height int, forward Vector, lines []*line, index int, sd side) int {
		lineCount := len(lines)
		for col := 0; col < 2*w; col++ {
			v := upperLeftCorner.Add(forward.Scale(col))
			if col%2 == 1 {
				v.Y -= 2
			}
			rows := (height + (1 - col%2)) / 2
			for row := 0; row < rows; row++ {
				if index >= lineCount {
					return index
				}
				distToMiddle := 0
				switch sd {
				case sideLeft:
					distToMiddle = 2*w - col
				case sideRight:
					distToMiddle = col + 1
				}
				realCol := prevWidth + col/2
				lines[index].beginCircuit(schem, v.Sub(V(0, 4*row, 0)), forward.Rotated(true), sd, distToMiddle, 2*row+col%2, height, realCol, col/2, w)
				index++
			}
		}
		return index
	}

	playerPos := V(0, 0, 0)
	middleSideZ := playerPos.Z + viewDistance
	leftSideX := playerPos.X + middleWidth + 1
	rightSideX := playerPos.X - middleWidth

	leftUpperLeft := V(leftSideX, playerPos.Y+height, middleSideZ-2*leftWidth+1)
	index := beginLines(leftUpperLeft, 0, leftWidth, height, V(0, 0, 1), lines, 0, sideLeft)
	middleUpperLeft := V(leftSideX-1, playerPos.Y+height, middleSideZ)
	index = beginLines(middleUpperLeft, leftWidth, middleWidth, height, V(-1, 0, 0), lines, index, sideMiddle)
	rightUpperLeft := V(rightSideX, playerPos.Y+height, middleSideZ)
	index = beginLines(rightUpperLeft, leftWidth+middleWidth, rightWidth, height, V(0, 0, -1), lines, index, sideRight)
	if index != len(lines) {
		panic(fmt.Sprintf("buildContraption: placed %d of %d lines", index, len(lines)))
	}

	shallowDepth := max(leftWidth, rightWidth)
	turnMaxDelay := (2*2*shallowDepth+2)/16 + 1
	for _, l := range lines {
		l.buildNoteblock(useRedstoneLamp)
		l.buildSideTurn(turnMaxDelay)
		l.buildVerticalAdjustment()
		l.buildHorizontalAdjustment()
		l.addDelayForVerticalConnection()
	}

	bottomConnectionPos := buildVerticalConnection(schem, lines[0].getPos().Add(V(2, 3, 0)), height)
	bottomConnectionPos = build1GTDelayer(schem, bottomConnectionPos, V(0, 0, -1))
	walkwayLength := max(1, leftWidth*2-viewDistance)

	junctionDelay := (width - 1) / 2
	for _, l := range lines {
		l.buildJunction(junctionDelay)
	}

	beginZ := playerPos.Z - max(rightWidth*2-viewDistance, 2+walkwayLength)
	currentZ := lines[0].getPos().Z
	additionalSpacing := 8
	for _, l := range lines {
		var turns []int
		zDifference := currentZ - beginZ + 2 + additionalSpacing
		turns = append(turns, 2+2*l.col)
		xDifference := 2*width + 13
		turns = append(turns, 9+4*l.col)
		for i := 0; i < 15; i++ {
			turns = append(turns, zDifference+4*l.col)
			zDifference += 2 * width
			turns = append(turns, xDifference+4*l.col)
			xDifference += 2 * width
		}
		l.buildDelays(turns)
	}

	minRenderDist := calculateMinRenderDistanceNeeded(schem.Bounds())
	buildGlassWalkway(schem, playerPos, V(0, 0, -1), bottomConnectionPos, walkwayLength, 10, title, minRenderDist)

	return bottomConnectionPos
}

// boundedSink is a blockSink that additionally knows the bounding box of
// every block placed so far, needed to compute the render distance
// recommendation sign after the bulk of the contraption has been built.
type boundedSink interface {
	blockSink
	Bounds() Bounds
}
