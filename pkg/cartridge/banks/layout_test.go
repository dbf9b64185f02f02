package banks

import "testing"

func TestLayoutBuilder_DetectsGap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a layout with a gap")
		}
	}()
	NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(NewWindow(0x8000, 0xBFFF, RomBank(Fixed(0)))).
		AddWindow(NewWindow(0xD000, 0xFFFF, RomBank(Fixed(-1)))).
		Build()
}

func TestLayoutBuilder_DetectsOverlap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for overlapping windows")
		}
	}()
	NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(NewWindow(0x8000, 0xCFFF, RomBank(Fixed(0)))).
		AddWindow(NewWindow(0xC000, 0xFFFF, RomBank(Fixed(-1)))).
		Build()
}

func TestLayoutBuilder_TilesExactly(t *testing.T) {
	layout := NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(NewWindow(0x8000, 0xBFFF, RomBank(Switchable(P0)))).
		AddWindow(NewWindow(0xC000, 0xFFFF, RomBank(Fixed(-1)))).
		Build()

	if _, ok := layout.WindowFor(0x9000); !ok {
		t.Fatal("expected 0x9000 to resolve to a window")
	}
	if _, ok := layout.WindowFor(0xE000); !ok {
		t.Fatal("expected 0xE000 to resolve to a window")
	}
}

func TestBankRegisters_RoundTrip(t *testing.T) {
	regs := NewBankRegisters()
	regs.Set(P0, 7)
	regs.SetBits(C0, 0b1010, 0b1111)
	regs.SetBits(C0, 0b0101, 0b1111)

	if regs.Get(P0) != 7 {
		t.Fatalf("expected P0=7, got %d", regs.Get(P0))
	}
	if regs.Get(C0) != 0b0101 {
		t.Fatalf("expected C0=0b0101 after masked overwrite, got %b", regs.Get(C0))
	}
}

func TestAddressTemplate_ResolveMasksOutOfRangeIndex(t *testing.T) {
	tmpl := NewAddressTemplate(0, 2, 13) // 4 inner banks of 8 KiB each
	if tmpl.WindowSize() != 8*1024 {
		t.Fatalf("expected window size 8KiB, got %d", tmpl.WindowSize())
	}

	// Index 6 is out of range for a 4-bank template; it must wrap, never
	// escape into a neighboring outer bank's bytes.
	got := tmpl.Resolve(0, 6, 100)
	want := tmpl.Resolve(0, 2, 100)
	if got != want {
		t.Fatalf("expected out-of-range index 6 to wrap to 2 (6 mod 4), got byte %d want %d", got, want)
	}
}

func TestAddressTemplate_IncreaseSegmentMagnitudePreservesWidth(t *testing.T) {
	tmpl := NewAddressTemplate(2, 2, 11)
	before := tmpl.Width()
	tmpl.IncreaseSegmentMagnitude(4)
	if tmpl.Width() != before {
		t.Fatalf("expected total width to stay %d after widening the inner-bank segment, got %d", before, tmpl.Width())
	}
	if tmpl.innerBankWidth != 4 {
		t.Fatalf("expected inner bank width 4, got %d", tmpl.innerBankWidth)
	}
}
