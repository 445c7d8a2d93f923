// Package memory implements fixed-size, bounds-checked byte regions shared
// by the bus, PPU, and mapper implementations.
package memory

// Region is a fixed-size byte array with modulo-wrapped addressing. It
// never grows, never allocates after construction, and never panics on an
// out-of-range address — the address is simply wrapped into range, which
// keeps every caller free of per-access bounds branching.
type Region struct {
	data []uint8
}

// NewRegion allocates a region of exactly size bytes, zero-initialized.
func NewRegion(size int) *Region {
	return &Region{data: make([]uint8, size)}
}

// Len returns the region's fixed size in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Read returns the byte at addr, wrapped into the region's size.
func (r *Region) Read(addr uint32) uint8 {
	return r.data[addr%uint32(len(r.data))]
}

// Write stores value at addr, wrapped into the region's size.
func (r *Region) Write(addr uint32, value uint8) {
	r.data[addr%uint32(len(r.data))] = value
}

// Bytes exposes the backing slice directly, for bulk initialization from
// ROM data at cartridge-load time.
func (r *Region) Bytes() []uint8 {
	return r.data
}

// Clear zeros every byte in the region.
func (r *Region) Clear() {
	for i := range r.data {
		r.data[i] = 0
	}
}
