package banks

import "fmt"

// Window is a closed CPU- or PPU-address range [Start, End] (End inclusive)
// mapped to a Bank descriptor, per SPEC_FULL.md §3.
type Window struct {
	Start uint16
	End   uint16 // inclusive
	Bank  Bank
}

// Size returns the number of bytes this window covers.
func (w Window) Size() uint32 {
	return uint32(w.End) - uint32(w.Start) + 1
}

// Contains reports whether addr falls within this window's range.
func (w Window) Contains(addr uint16) bool {
	return addr >= w.Start && addr <= w.End
}

// NewWindow validates that [start, end] is a non-empty, power-of-two-sized
// range before attaching bank to it — the per-window half of the tiling
// invariant in SPEC_FULL.md §3 (the other half, full-range coverage, is
// checked by the Layout builder).
func NewWindow(start, end uint16, bank Bank) Window {
	if end < start {
		panic(fmt.Sprintf("banks: window end 0x%04X before start 0x%04X", end, start))
	}
	size := uint32(end) - uint32(start) + 1
	if size&(size-1) != 0 {
		panic(fmt.Sprintf("banks: window [0x%04X, 0x%04X] size %d is not a power of two", start, end, size))
	}
	return Window{Start: start, End: end, Bank: bank}
}
