package memory

import "testing"

func TestRegionReadWriteRoundTrip(t *testing.T) {
	r := NewRegion(0x800)
	r.Write(0x10, 0x42)
	if got := r.Read(0x10); got != 0x42 {
		t.Fatalf("Read(0x10) = %#02x, want 0x42", got)
	}
}

func TestRegionWraps(t *testing.T) {
	r := NewRegion(0x800)
	r.Write(0x10, 0x55)
	for _, mirror := range []uint32{0x10 + 0x800, 0x10 + 0x1000, 0x10 + 0x1800} {
		if got := r.Read(mirror); got != 0x55 {
			t.Fatalf("Read(%#04x) = %#02x, want 0x55 (mirrored)", mirror, got)
		}
	}
}

func TestRegionClear(t *testing.T) {
	r := NewRegion(16)
	for i := 0; i < 16; i++ {
		r.Write(uint32(i), 0xFF)
	}
	r.Clear()
	for i := 0; i < 16; i++ {
		if got := r.Read(uint32(i)); got != 0 {
			t.Fatalf("Read(%d) after Clear = %#02x, want 0", i, got)
		}
	}
}

func TestRegionBytesAliasesBackingStore(t *testing.T) {
	r := NewRegion(4)
	copy(r.Bytes(), []uint8{1, 2, 3, 4})
	if got := r.Read(2); got != 3 {
		t.Fatalf("Read(2) = %d, want 3", got)
	}
}
