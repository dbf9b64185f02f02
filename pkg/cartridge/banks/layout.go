package banks

import "fmt"

// Layout is a static, per-mapper set of windows that tiles a bus address
// range (PRG: [0x6000, 0xFFFF], CHR: [0x0000, 0x1FFF]), per SPEC_FULL.md §3.
// It is built once per mapper type (not per cartridge instance) by
// LayoutBuilder, which panics on a malformed layout the same way the
// source's const-evaluated builder assertions do (SPEC_FULL.md §9).
type Layout struct {
	Windows []Window
}

// WindowFor returns the window covering addr, or false if no window in this
// layout claims that address — a bug in the mapper's own layout declaration,
// since layouts are required to tile their full range with no gaps.
func (l Layout) WindowFor(addr uint16) (Window, bool) {
	for _, w := range l.Windows {
		if w.Contains(addr) {
			return w, true
		}
	}
	return Window{}, false
}

// LayoutBuilder assembles a Layout, validating on Build that the windows
// tile [rangeStart, rangeEnd] with no gaps or overlaps.
type LayoutBuilder struct {
	rangeStart, rangeEnd uint16
	windows               []Window
}

// NewLayoutBuilder starts a builder for windows tiling [rangeStart, rangeEnd].
func NewLayoutBuilder(rangeStart, rangeEnd uint16) *LayoutBuilder {
	return &LayoutBuilder{rangeStart: rangeStart, rangeEnd: rangeEnd}
}

// AddWindow appends one window to the layout under construction.
func (b *LayoutBuilder) AddWindow(w Window) *LayoutBuilder {
	b.windows = append(b.windows, w)
	return b
}

// Build validates tiling and returns the finished Layout. Panics (rather than
// returning an error) since a malformed static layout is a programmer bug in
// the mapper's own declaration, not a runtime condition — see SPEC_FULL.md §9.
func (b *LayoutBuilder) Build() Layout {
	sorted := append([]Window(nil), b.windows...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Start > sorted[j].Start; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	if len(sorted) == 0 {
		panic("banks: layout has no windows")
	}
	if sorted[0].Start != b.rangeStart {
		panic(fmt.Sprintf("banks: layout leaves a gap before 0x%04X", sorted[0].Start))
	}
	for i := 1; i < len(sorted); i++ {
		expectedStart := uint32(sorted[i-1].End) + 1
		if uint32(sorted[i].Start) < expectedStart {
			panic(fmt.Sprintf("banks: layout windows [0x%04X,0x%04X] and [0x%04X,0x%04X] overlap",
				sorted[i-1].Start, sorted[i-1].End, sorted[i].Start, sorted[i].End))
		}
		if uint32(sorted[i].Start) > expectedStart {
			panic(fmt.Sprintf("banks: layout has a gap between 0x%04X and 0x%04X", sorted[i-1].End, sorted[i].Start))
		}
	}
	if sorted[len(sorted)-1].End != b.rangeEnd {
		panic(fmt.Sprintf("banks: layout leaves a gap after 0x%04X", sorted[len(sorted)-1].End))
	}

	return Layout{Windows: sorted}
}

// LayoutSet groups the handful of alternate Layouts a mapper may switch
// between (e.g. MMC3's PRG-mode bit choosing which window is fixed), keyed
// by a small selector index written through WriteRegister.
type LayoutSet struct {
	Layouts []Layout
}

func (s LayoutSet) At(index int) Layout {
	if index < 0 || index >= len(s.Layouts) {
		panic(fmt.Sprintf("banks: layout selector %d out of range (have %d layouts)", index, len(s.Layouts)))
	}
	return s.Layouts[index]
}
