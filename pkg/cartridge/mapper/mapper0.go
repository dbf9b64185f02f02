package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// Nrom is mapper 0: no bank switching at all. PRG ROM is either a single
// 16 KiB bank mirrored across $8000-$FFFF, or a single 32 KiB bank filling
// it exactly; CHR is a single fixed 8 KiB bank, ROM or RAM.
type Nrom struct {
	BaseMapper
}

func newNrom(p *Params) (Mapper, error) {
	return &Nrom{}, nil
}

// NromPrgLayout builds the PRG layout for either NROM-128 (16 KiB, mirrored)
// or NROM-256 (32 KiB, filling the window once).
func NromPrgLayout(prgRomSize uint32) banks.LayoutSet {
	if prgRomSize <= 16*1024 {
		return banks.LayoutSet{Layouts: []banks.Layout{
			banks.NewLayoutBuilder(0x8000, 0xFFFF).
				AddWindow(banks.NewWindow(0x8000, 0xBFFF, banks.RomBank(banks.Fixed(0)))).
				AddWindow(banks.NewWindow(0xC000, 0xFFFF, banks.RomBank(banks.Fixed(0)))).
				Build(),
		}}
	}
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x8000, 0xFFFF).
			AddWindow(banks.NewWindow(0x8000, 0xFFFF, banks.RomBank(banks.Fixed(0)))).
			Build(),
	}}
}

// NromChrLayout builds the single fixed 8 KiB CHR window, ROM or RAM
// depending on what the cartridge declares.
func NromChrLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x0000, 0x1FFF).
			AddWindow(banks.NewWindow(0x0000, 0x1FFF, banks.RomOrRamBank(banks.Fixed(0)).WithChrSource(banks.CS0))).
			Build(),
	}}
}
