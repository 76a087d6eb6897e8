package galaxyjukebox

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// DefaultDataVersion is the Minecraft data version stamped into a schematic
// when Options.DataVersion is left at zero: 1952, corresponding to
// Minecraft 1.14.0, the version the noteblock/repeater/observer behavior
// this compiler targets was last verified against.
const DefaultDataVersion = 1952

// Bounds is the axis-aligned box (inclusive) that a Schematic's blocks
// currently occupy.
type Bounds struct {
	MinX, MinY, MinZ int
	MaxX, MaxY, MaxZ int
}

// Schematic is an append-only Sponge Schematic v2 document: unlike the
// original tool this is distilled from, it does not need its dimensions
// fixed up front. Blocks can be placed at any (possibly negative)
// coordinate as the contraption is assembled; the final bounding box and
// block-data array are only computed once, in Save.
type Schematic struct {
	dataVersion int32
	palette     map[string]int32
	nextIndex   int32
	blocks      map[[3]int]int32 // (x,y,z) -> palette index
	bounds      Bounds
	hasBlocks   bool
}

// NewSchematic creates an empty schematic. dataVersion of 0 means
// DefaultDataVersion.
func NewSchematic(dataVersion int32) *Schematic {
	if dataVersion == 0 {
		dataVersion = DefaultDataVersion
	}
	return &Schematic{
		dataVersion: dataVersion,
		palette:     map[string]int32{"minecraft:air": 0},
		nextIndex:   1,
		blocks:      map[[3]int]int32{},
	}
}

// SetBlock places a block descriptor at v, normalizing it (adding the
// "minecraft:" namespace if missing, and sorting its "[key=value,...]"
// state fragment lexicographically so equivalent descriptors always share
// one palette entry) and growing the schematic's bounds to include v.
func (s *Schematic) SetBlock(v Vector, block string) {
	block = normalizeBlockDescriptor(block)

	idx, ok := s.palette[block]
	if !ok {
		idx = s.nextIndex
		s.palette[block] = idx
		s.nextIndex++
	}

	key := [3]int{v.X, v.Y, v.Z}
	s.blocks[key] = idx

	if !s.hasBlocks {
		s.bounds = Bounds{v.X, v.Y, v.Z, v.X, v.Y, v.Z}
		s.hasBlocks = true
		return
	}
	if v.X < s.bounds.MinX {
		s.bounds.MinX = v.X
	}
	if v.Y < s.bounds.MinY {
		s.bounds.MinY = v.Y
	}
	if v.Z < s.bounds.MinZ {
		s.bounds.MinZ = v.Z
	}
	if v.X > s.bounds.MaxX {
		s.bounds.MaxX = v.X
	}
	if v.Y > s.bounds.MaxY {
		s.bounds.MaxY = v.Y
	}
	if v.Z > s.bounds.MaxZ {
		s.bounds.MaxZ = v.Z
	}
}

// Bounds returns the current bounding box of every block placed so far.
func (s *Schematic) Bounds() Bounds { return s.bounds }

// normalizeBlockDescriptor prefixes "minecraft:" onto a bare block id and,
// if the descriptor carries a "[key=value,...]" state fragment, sorts the
// fragment's entries lexicographically so that differently-ordered but
// equivalent descriptors collapse onto the same palette entry. Any trailing
// "{...}" block-entity data (used only by signs in this compiler) is passed
// through unchanged after the sorted fragment.
func normalizeBlockDescriptor(block string) string {
	id := block
	if i := strings.IndexAny(id, "[{"); i != -1 {
		id = id[:i]
	}
	if !strings.Contains(id, ":") {
		block = "minecraft:" + block
	}
	open := strings.IndexByte(block, '[')
	if open == -1 {
		return block
	}
	close := strings.IndexByte(block[open:], ']')
	if close == -1 {
		return block
	}
	close += open

	states := strings.Split(block[open+1:close], ",")
	sort.Strings(states)

	return block[:open] + "[" + strings.Join(states, ",") + "]" + block[close+1:]
}

// Save gzips and writes the schematic as Sponge Schematic v2 NBT. Width,
// Height and Length are derived from the current bounding box; BlockData
// indexes the bounding box in y-major, then z, then x order, as the
// specification requires, with each entry varint-encoded.
func (s *Schematic) Save() ([]byte, error) {
	if !s.hasBlocks {
		return nil, fmt.Errorf("galaxyjukebox: cannot save an empty schematic")
	}

	width := s.bounds.MaxX - s.bounds.MinX + 1
	height := s.bounds.MaxY - s.bounds.MinY + 1
	length := s.bounds.MaxZ - s.bounds.MinZ + 1

	blockIndices := make([]int32, width*height*length)
	for pos, idx := range s.blocks {
		x := pos[0] - s.bounds.MinX
		y := pos[1] - s.bounds.MinY
		z := pos[2] - s.bounds.MinZ
		blockIndices[x+width*(z+length*y)] = idx
	}

	blockData := encodeVarints(blockIndices)

	palette := make(map[string]int32, len(s.palette))
	for k, v := range s.palette {
		palette[k] = v
	}

	type schematicNBT struct {
		Version     int32           `nbt:"Version"`
		DataVersion int32           `nbt:"DataVersion"`
		Width       int16           `nbt:"Width"`
		Height      int16           `nbt:"Height"`
		Length      int16           `nbt:"Length"`
		Palette     map[string]int32 `nbt:"Palette"`
		BlockData   []byte          `nbt:"BlockData"`
	}

	doc := struct {
		Schematic schematicNBT `nbt:"Schematic"`
	}{
		Schematic: schematicNBT{
			Version:     2,
			DataVersion: s.dataVersion,
			Width:       int16(width),
			Height:      int16(height),
			Length:      int16(length),
			Palette:     palette,
			BlockData:   blockData,
		},
	}

	var nbtBuf bytes.Buffer
	if err := nbt.NewEncoder(&nbtBuf).Encode(doc, ""); err != nil {
		return nil, fmt.Errorf("galaxyjukebox: encoding schematic NBT: %w", err)
	}

	var out bytes.Buffer
	gz := gzip.NewWriter(&out)
	if _, err := gz.Write(nbtBuf.Bytes()); err != nil {
		return nil, fmt.Errorf("galaxyjukebox: gzipping schematic: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("galaxyjukebox: closing gzip writer: %w", err)
	}
	return out.Bytes(), nil
}

// encodeVarints encodes each palette index as a Sponge-schematic varint:
// the low 7 bits of each byte carry payload, the high bit set means more
// bytes follow.
func encodeVarints(indices []int32) []byte {
	buf := make([]byte, 0, len(indices))
	for _, paletteID := range indices {
		for (paletteID & ^int32(0x7F)) != 0 {
			buf = append(buf, byte(paletteID&0x7F)|0x80)
			paletteID = int32(uint32(paletteID) >> 7)
		}
		buf = append(buf, byte(paletteID))
	}
	return buf
}
