package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// Axrom is mapper 7: a single register switches the entire 32 KiB PRG
// window and selects one of two single-screen name-table mirrorings. CHR is
// always a fixed 8 KiB RAM bank.
type Axrom struct {
	BaseMapper
}

func newAxrom(p *Params) (Mapper, error) {
	return &Axrom{}, nil
}

func AxromPrgLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x8000, 0xFFFF).
			AddWindow(banks.NewWindow(0x8000, 0xFFFF, banks.RomBank(banks.Switchable(banks.P0)))).
			Build(),
	}}
}

func AxromChrLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x0000, 0x1FFF).
			AddWindow(banks.NewWindow(0x0000, 0x1FFF, banks.RomOrRamBank(banks.Fixed(0)).WithChrSource(banks.CS0))).
			Build(),
	}}
}

func (m *Axrom) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	params.Prg.Registers.Set(banks.P0, uint16(value&0x07))
	if value&0x10 != 0 {
		params.SetNameTableMirroring(banks.OneScreenRight)
	} else {
		params.SetNameTableMirroring(banks.OneScreenLeft)
	}
}
