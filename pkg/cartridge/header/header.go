// Package header parses the 16-byte iNES/NES 2.0 cartridge header and
// resolves it, together with an optional external database, into a single
// ResolvedMetadata — see SPEC_FULL.md §4.9 and §3.
package header

import (
	"fmt"

	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
)

const (
	prgRomChunkLength = 16 * 1024
	chrRomChunkLength = 8 * 1024
)

var iNESMagic = [4]byte{'N', 'E', 'S', 0x1A}

// ConsoleType distinguishes the handful of console variants the NES 2.0
// header format can describe.
type ConsoleType int

const (
	ConsoleNES ConsoleType = iota
	ConsoleVsUnisystem
	ConsolePlayChoice10
	ConsoleExtended
)

func (c ConsoleType) String() string {
	switch c {
	case ConsoleNES:
		return "NES"
	case ConsoleVsUnisystem:
		return "VS Unisystem"
	case ConsolePlayChoice10:
		return "Play Choice 10"
	case ConsoleExtended:
		return "Extended"
	default:
		return "Unknown"
	}
}

// Nes2Fields holds the extra fields only present when the header declares
// itself NES 2.0 (version bits == 0b10).
type Nes2Fields struct {
	SubmapperNumber uint8
	PrgWork         uint32
	PrgSave         uint32
	ChrWork         uint32
	ChrSave         uint32
}

// CartridgeHeader is the decoded, but not yet fully resolved, 16-byte
// header — see ResolvedMetadata for the final layered result.
type CartridgeHeader struct {
	MapperNumber         uint16
	NameTableMirroring   *banks.NameTableMirroring // nil means FourScreen (mapper-defined) or unspecified
	HasPersistentMemory  bool
	ConsoleType          ConsoleType
	PrgRomSize           uint32
	ChrRomSize           uint32
	Nes2                 *Nes2Fields
}

// ChrPresent reports whether the cartridge declares any CHR storage at all
// (ROM, or NES 2.0 work/save RAM).
func (h CartridgeHeader) ChrPresent() bool {
	if h.ChrRomSize > 0 {
		return true
	}
	if h.Nes2 != nil {
		return h.Nes2.ChrWork > 0 || h.Nes2.ChrSave > 0
	}
	return false
}

// Parse decodes a 16-byte iNES/NES 2.0 header. Failure modes are all
// surfaced as errors, never panics, per SPEC_FULL.md §4.9/§7.
func Parse(raw [16]byte) (CartridgeHeader, error) {
	if raw[0] != iNESMagic[0] || raw[1] != iNESMagic[1] || raw[2] != iNESMagic[2] || raw[3] != iNESMagic[3] {
		return CartridgeHeader{}, fmt.Errorf("header: bad magic %v, expected %v", raw[0:4], iNESMagic)
	}

	prgRomChunks := uint32(raw[4])
	chrRomChunks := uint32(raw[5])

	flags6 := raw[6]
	lowerMapperNumber := flags6 >> 4
	fourScreen := flags6&0x08 != 0
	trainerEnabled := flags6&0x04 != 0
	hasPersistentMemory := flags6&0x02 != 0
	verticalMirroring := flags6&0x01 != 0

	flags7 := raw[7]
	upperMapperNumber := flags7 >> 4
	ines2Bits := (flags7 >> 2) & 0b11
	playChoiceEnabled := flags7&0x02 != 0
	vsUnisystemEnabled := flags7&0x01 != 0
	ines2Present := ines2Bits == 0b10

	if trainerEnabled {
		return CartridgeHeader{}, fmt.Errorf("header: trainer isn't implemented yet")
	}
	if playChoiceEnabled {
		return CartridgeHeader{}, fmt.Errorf("header: PlayChoice isn't implemented yet")
	}
	if vsUnisystemEnabled {
		return CartridgeHeader{}, fmt.Errorf("header: VS Unisystem isn't implemented yet")
	}

	mapperNumber := uint16(upperMapperNumber)<<4 | uint16(lowerMapperNumber)

	var nes2 *Nes2Fields
	if ines2Present {
		mapperNumber |= uint16(raw[8]&0x0F) << 8
		submapperNumber := raw[8] >> 4

		prgSave, prgWork := splitSizeByte(raw[10])
		// raw[11] (not raw[10]) carries the CHR-side sizes — a bug in the
		// Rust source this module was distilled from reads raw[10] for both,
		// per the NES 2.0 spec raw[11] is the correct byte for CHR sizing.
		chrSave, chrWork := splitSizeByte(raw[11])

		nes2 = &Nes2Fields{
			SubmapperNumber: submapperNumber,
			PrgWork:         prgWork,
			PrgSave:         prgSave,
			ChrWork:         chrWork,
			ChrSave:         chrSave,
		}
	}

	var mirroring *banks.NameTableMirroring
	if !fourScreen {
		if verticalMirroring {
			m := banks.Vertical
			mirroring = &m
		} else {
			m := banks.Horizontal
			mirroring = &m
		}
	}

	return CartridgeHeader{
		MapperNumber:        mapperNumber,
		NameTableMirroring:  mirroring,
		HasPersistentMemory: hasPersistentMemory,
		ConsoleType:         ConsoleNES,
		PrgRomSize:          prgRomChunks * prgRomChunkLength,
		ChrRomSize:          chrRomChunks * chrRomChunkLength,
		Nes2:                nes2,
	}, nil
}

// splitSizeByte decodes an NES 2.0 "sssswwww"-style size byte into
// (saveSize, workSize), each either 0 (not present) or 64 << exponent bytes.
func splitSizeByte(b byte) (saveSize, workSize uint32) {
	s := b >> 4
	w := b & 0x0F
	if w > 0 {
		workSize = 64 << w
	}
	if s > 0 {
		saveSize = 64 << s
	}
	return saveSize, workSize
}
