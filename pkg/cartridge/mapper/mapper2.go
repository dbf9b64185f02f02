package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// Uxrom is mapper 2: a single 8-bit register switches the low 16 KiB PRG
// window; the high 16 KiB is fixed to the last bank. CHR is always a single
// fixed 8 KiB RAM bank (UxROM boards never have CHR ROM).
type Uxrom struct {
	BaseMapper
}

func newUxrom(p *Params) (Mapper, error) {
	return &Uxrom{}, nil
}

func UxromPrgLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x8000, 0xFFFF).
			AddWindow(banks.NewWindow(0x8000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P0)))).
			AddWindow(banks.NewWindow(0xC000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
			Build(),
	}}
}

func UxromChrLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x0000, 0x1FFF).
			AddWindow(banks.NewWindow(0x0000, 0x1FFF, banks.RomOrRamBank(banks.Fixed(0)).WithChrSource(banks.CS0))).
			Build(),
	}}
}

func (m *Uxrom) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	params.Prg.Registers.Set(banks.P0, uint16(value))
}
