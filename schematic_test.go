package galaxyjukebox

import "testing"

func TestNormalizeBlockDescriptorAddsNamespace(t *testing.T) {
	if got, want := normalizeBlockDescriptor("stone"), "minecraft:stone"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := normalizeBlockDescriptor("minecraft:stone"), "minecraft:stone"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeBlockDescriptorSortsStates(t *testing.T) {
	got := normalizeBlockDescriptor("repeater[facing=north,delay=2,locked=false,powered=false]")
	want := "minecraft:repeater[delay=2,facing=north,locked=false,powered=false]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeBlockDescriptorPreservesSignNBTSuffix(t *testing.T) {
	block := `oak_sign[rotation=0]{Text1:'{"text":"a[b]"}'}`
	got := normalizeBlockDescriptor(block)
	want := `minecraft:oak_sign[rotation=0]{Text1:'{"text":"a[b]"}'}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSchematicBoundsGrowWithEachBlock(t *testing.T) {
	s := NewSchematic(0)
	s.SetBlock(V(0, 0, 0), "stone")
	s.SetBlock(V(-2, 5, 3), "dirt")

	b := s.Bounds()
	want := Bounds{MinX: -2, MinY: 0, MinZ: 0, MaxX: 0, MaxY: 5, MaxZ: 3}
	if b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}
}

func TestSchematicDeduplicatesPaletteEntries(t *testing.T) {
	s := NewSchematic(0)
	s.SetBlock(V(0, 0, 0), "stone")
	s.SetBlock(V(1, 0, 0), "minecraft:stone")

	if len(s.palette) != 2 { // air + stone
		t.Errorf("palette has %d entries, want 2 (air, stone)", len(s.palette))
	}
}

func TestSchematicSaveRejectsEmpty(t *testing.T) {
	s := NewSchematic(0)
	if _, err := s.Save(); err == nil {
		t.Error("expected an error saving a schematic with no blocks")
	}
}

func TestEncodeVarintsRoundTripsSmallAndLargeIndices(t *testing.T) {
	indices := []int32{0, 1, 127, 128, 16384, 2097151}
	data := encodeVarints(indices)

	got := make([]int32, 0, len(indices))
	var cur int32
	var shift uint
	for _, b := range data {
		cur |= int32(b&0x7F) << shift
		if b&0x80 == 0 {
			got = append(got, cur)
			cur = 0
			shift = 0
		} else {
			shift += 7
		}
	}

	if len(got) != len(indices) {
		t.Fatalf("decoded %d values, want %d", len(got), len(indices))
	}
	for i, v := range got {
		if v != indices[i] {
			t.Errorf("index %d: decoded %d, want %d", i, v, indices[i])
		}
	}
}
