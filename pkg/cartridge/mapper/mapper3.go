package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// Cnrom is mapper 3: PRG is fixed (16 or 32 KiB, same shape as NROM); a
// single register switches the entire 8 KiB CHR window. Real boards have
// only 2 significant bits, but some bootlegs wire all 8 — this module keeps
// the full byte and lets bank-count masking in bankIndex handle the rest.
type Cnrom struct {
	BaseMapper
}

func newCnrom(p *Params) (Mapper, error) {
	return &Cnrom{}, nil
}

func CnromChrLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x0000, 0x1FFF).
			AddWindow(banks.NewWindow(0x0000, 0x1FFF, banks.RomBank(banks.Switchable(banks.C0)))).
			Build(),
	}}
}

func (m *Cnrom) HasBusConflicts() bool { return true }

func (m *Cnrom) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	params.Prg.Registers.Set(banks.C0, uint16(value))
}
