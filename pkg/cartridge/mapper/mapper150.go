package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// Sachen implements mapper 150: one representative of the many Sachen
// multicart mapper numbers (133, 137-150, 243...), most of which layer
// address-line bus-scrambling and undocumented security-check latches atop
// a basic bank-switch register pair, board revision by board revision. This
// implements only the basic shape shared across the family — a command
// register and a data register together selecting one 16 KiB PRG bank, one
// 8 KiB CHR bank, and a mirroring bit — and does not model any of the
// scrambling/security-check behavior. See DESIGN.md.
type Sachen struct {
	BaseMapper

	command uint8
}

func newSachen(p *Params) (Mapper, error) {
	return &Sachen{}, nil
}

// SachenPrgLayout builds a single switchable 16 KiB PRG window mirrored
// across both halves of cartridge PRG space.
func SachenPrgLayout() banks.LayoutSet {
	l := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xC000, 0xFFFF, banks.RomBank(banks.Switchable(banks.P0)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{l}}
}

// SachenChrLayout builds a single switchable 8 KiB CHR window.
func SachenChrLayout() banks.LayoutSet {
	l := banks.NewLayoutBuilder(0x0000, 0x1FFF).
		AddWindow(banks.NewWindow(0x0000, 0x1FFF, banks.RomBank(banks.Switchable(banks.C0)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{l}}
}

func (m *Sachen) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	switch {
	case cpuAddr >= 0x4020 && cpuAddr < 0x6000 && cpuAddr&0x01 == 0:
		m.command = value & 0x07
	case cpuAddr >= 0x4020 && cpuAddr < 0x6000:
		m.writeData(params, value)
	case cpuAddr >= 0x8000:
		m.writeData(params, value)
	}
}

func (m *Sachen) writeData(params *banks.MapperParams, value uint8) {
	switch m.command {
	case 0, 1, 2, 3:
		params.Chr.Registers.Set(banks.C0, uint16(value&0x07))
	case 4:
		params.Prg.Registers.Set(banks.P0, uint16(value&0x07))
	case 5:
		if value&0x01 != 0 {
			params.SetNameTableMirroring(banks.Horizontal)
		} else {
			params.SetNameTableMirroring(banks.Vertical)
		}
	}
}
