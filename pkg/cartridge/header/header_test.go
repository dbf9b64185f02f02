package header

import (
	"testing"

	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
)

func makeHeader(prgChunks, chrChunks, flags6, flags7, flags8, flags9, flags10, flags11 byte) [16]byte {
	var raw [16]byte
	copy(raw[0:4], iNESMagic[:])
	raw[4] = prgChunks
	raw[5] = chrChunks
	raw[6] = flags6
	raw[7] = flags7
	raw[8] = flags8
	raw[9] = flags9
	raw[10] = flags10
	raw[11] = flags11
	return raw
}

func TestParse_RejectsBadMagic(t *testing.T) {
	var raw [16]byte
	if _, err := Parse(raw); err == nil {
		t.Fatal("expected an error for a missing iNES magic number")
	}
}

func TestParse_PlainINesVerticalMirroring(t *testing.T) {
	raw := makeHeader(2, 1, 0x01, 0x00, 0, 0, 0, 0)
	h, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.NameTableMirroring == nil || *h.NameTableMirroring != banks.Vertical {
		t.Fatalf("expected vertical mirroring, got %v", h.NameTableMirroring)
	}
	if h.PrgRomSize != 2*prgRomChunkLength {
		t.Fatalf("expected PRG ROM size %d, got %d", 2*prgRomChunkLength, h.PrgRomSize)
	}
	if h.ChrRomSize != 1*chrRomChunkLength {
		t.Fatalf("expected CHR ROM size %d, got %d", chrRomChunkLength, h.ChrRomSize)
	}
	if h.Nes2 != nil {
		t.Fatal("expected a plain iNES header to have no NES 2.0 fields")
	}
}

func TestParse_FourScreenOverridesMirroringBit(t *testing.T) {
	raw := makeHeader(1, 1, 0x08|0x01, 0x00, 0, 0, 0, 0)
	h, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.NameTableMirroring != nil {
		t.Fatal("expected four-screen mode to leave NameTableMirroring nil (mapper-provided)")
	}
}

func TestParse_Nes2UsesByte11ForChrSizesNotByte10(t *testing.T) {
	// flags7 lower bits 0b10 at bit 2-3 marks NES 2.0.
	flags7 := byte(0b00001000)
	// byte 10: prg save=1 (64<<1=128), prg work=2 (64<<2=256)
	// byte 11: chr save=3 (64<<3=512), chr work=4 (64<<4=1024)
	raw := makeHeader(1, 1, 0x00, flags7, 0x00, 0, 0x12, 0x34)
	h, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Nes2 == nil {
		t.Fatal("expected NES 2.0 fields to be present")
	}
	if h.Nes2.PrgSave != 64<<1 || h.Nes2.PrgWork != 64<<2 {
		t.Fatalf("unexpected PRG RAM sizes: save=%d work=%d", h.Nes2.PrgSave, h.Nes2.PrgWork)
	}
	if h.Nes2.ChrSave != 64<<3 || h.Nes2.ChrWork != 64<<4 {
		t.Fatalf("expected CHR sizes read from byte 11 (save=%d work=%d), got save=%d work=%d",
			64<<3, 64<<4, h.Nes2.ChrSave, h.Nes2.ChrWork)
	}
}

func TestParse_RejectsTrainer(t *testing.T) {
	raw := makeHeader(1, 1, 0x04, 0x00, 0, 0, 0, 0)
	if _, err := Parse(raw); err == nil {
		t.Fatal("expected an error for a trainer-bearing header")
	}
}

func TestResolver_ChrRamDefaultsWhenNothingSupplied(t *testing.T) {
	raw := makeHeader(1, 0, 0x00, 0x00, 0, 0, 0, 0)
	h, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := NewMetadataResolver(h).Resolve()
	if m.ChrWorkRamSize != 8*1024 {
		t.Fatalf("expected default 8 KiB CHR RAM, got %d", m.ChrWorkRamSize)
	}
}
