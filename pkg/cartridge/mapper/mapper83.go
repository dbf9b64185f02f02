package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// Cony implements mapper 83: a Taiwanese multicart board (Fire Hawk, Divine
// Seal) documented far more sparsely than the mainline Nintendo/Konami/
// Sunsoft chips, with several incompatible PCB revisions sharing the same
// mapper number. Rather than chase one specific undocumented revision, this
// implements the commonly-described shape: four independently switchable
// 8 KiB PRG windows, eight independently switchable 1 KiB CHR windows, and a
// single mirroring bit — and does not reproduce the outer-bank/multicart
// menu-select registers real Cony boards are reported to also have. See
// DESIGN.md for why this is a deliberately simplified representative rather
// than a register-exact reproduction.
type Cony struct {
	BaseMapper
}

func newCony(p *Params) (Mapper, error) {
	return &Cony{}, nil
}

// ConyPrgLayout builds four independently switchable 8 KiB PRG windows.
func ConyPrgLayout() banks.LayoutSet {
	l := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P1)))).
		AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Switchable(banks.P2)))).
		AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Switchable(banks.P3)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{l}}
}

// ConyChrLayout builds the eight independently switchable 1 KiB CHR windows.
func ConyChrLayout() banks.LayoutSet {
	b := banks.NewLayoutBuilder(0x0000, 0x1FFF)
	regs := []banks.BankRegisterID{banks.C0, banks.C1, banks.C2, banks.C3, banks.C4, banks.C5, banks.C6, banks.C7}
	for i, reg := range regs {
		start := uint16(i * 0x400)
		b = b.AddWindow(banks.NewWindow(start, start+0x3FF, banks.RomBank(banks.Switchable(reg))))
	}
	return banks.LayoutSet{Layouts: []banks.Layout{b.Build()}}
}

func (m *Cony) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	switch {
	case cpuAddr >= 0x8000 && cpuAddr < 0x9000:
		params.Prg.Registers.Set(banks.P0, uint16(value&0x0F))
	case cpuAddr >= 0x9000 && cpuAddr < 0xA000:
		if value&0x01 != 0 {
			params.SetNameTableMirroring(banks.Horizontal)
		} else {
			params.SetNameTableMirroring(banks.Vertical)
		}
	case cpuAddr >= 0xB000 && cpuAddr < 0xB008:
		reg := banks.BankRegisterID(int(banks.C0) + int(cpuAddr&0x07))
		params.Chr.Registers.Set(reg, uint16(value))
	case cpuAddr >= 0xC000 && cpuAddr < 0xD000:
		params.Prg.Registers.Set(banks.P1, uint16(value&0x0F))
	case cpuAddr >= 0xD000 && cpuAddr < 0xE000:
		params.Prg.Registers.Set(banks.P2, uint16(value&0x0F))
	case cpuAddr >= 0xE000:
		params.Prg.Registers.Set(banks.P3, uint16(value&0x0F))
	}
}
