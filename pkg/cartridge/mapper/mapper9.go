package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// mmc2Family implements the shared latch-driven CHR auto-switch behavior of
// MMC2 (mapper 9, Punch-Out!!) and MMC4 (mapper 10, Fire Emblem): reading
// pattern-table byte $0FD8/$0FE8 (left half, meta register M0) or $1FD8/$1FE8
// (right half, M1) flips which CHR bank register that meta register points
// at, ready for the *next* read. Both chips latch on exactly these addresses.
type mmc2Family struct {
	BaseMapper
	fourKChrWindows bool // set for MMC4; not read by the latch or layout code
}

func newMmc2(p *Params) (Mapper, error) {
	return &mmc2Family{fourKChrWindows: false}, nil
}

func newMmc4(p *Params) (Mapper, error) {
	return &mmc2Family{fourKChrWindows: true}, nil
}

// Mmc2PrgLayout: $8000-$9FFF switchable 8 KiB, remaining 24 KiB fixed to the
// last three 8 KiB banks.
func Mmc2PrgLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x8000, 0xFFFF).
			AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomBank(banks.Switchable(banks.P0)))).
			AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Fixed(-3)))).
			AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Fixed(-2)))).
			AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
			Build(),
	}}
}

// Mmc4PrgLayout: $8000-$BFFF switchable 16 KiB, $C000-$FFFF fixed to the
// last 16 KiB bank.
func Mmc4PrgLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x8000, 0xFFFF).
			AddWindow(banks.NewWindow(0x8000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P0)))).
			AddWindow(banks.NewWindow(0xC000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
			Build(),
	}}
}

// Mmc2ChrLayout builds two 4 KiB CHR windows, each meta-switched between a
// "$FD-latched" and "$FE-latched" bank register.
func Mmc2ChrLayout() banks.LayoutSet {
	return banks.LayoutSet{Layouts: []banks.Layout{
		banks.NewLayoutBuilder(0x0000, 0x1FFF).
			AddWindow(banks.NewWindow(0x0000, 0x0FFF, banks.RomBank(banks.MetaSwitchable(banks.M0)))).
			AddWindow(banks.NewWindow(0x1000, 0x1FFF, banks.RomBank(banks.MetaSwitchable(banks.M1)))).
			Build(),
	}}
}

func (m *mmc2Family) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	switch {
	case cpuAddr >= 0xA000 && cpuAddr < 0xB000:
		params.Prg.Registers.Set(banks.P0, uint16(value&0x0F))
	case cpuAddr >= 0xB000 && cpuAddr < 0xC000:
		params.Chr.Registers.Set(banks.C0, uint16(value&0x1F)) // $FD-latched, left window
	case cpuAddr >= 0xC000 && cpuAddr < 0xD000:
		params.Chr.Registers.Set(banks.C1, uint16(value&0x1F)) // $FE-latched, left window
	case cpuAddr >= 0xD000 && cpuAddr < 0xE000:
		params.Chr.Registers.Set(banks.C2, uint16(value&0x1F)) // $FD-latched, right window
	case cpuAddr >= 0xE000 && cpuAddr < 0xF000:
		params.Chr.Registers.Set(banks.C3, uint16(value&0x1F)) // $FE-latched, right window
	case cpuAddr >= 0xF000:
		if value&0x01 != 0 {
			params.SetNameTableMirroring(banks.Horizontal)
		} else {
			params.SetNameTableMirroring(banks.Vertical)
		}
	}
}

func (m *mmc2Family) OnPpuRead(params *banks.MapperParams, ppuAddr uint16, value uint8) {
	switch ppuAddr {
	case 0x0FD8:
		params.Chr.Registers.SetMetaTarget(banks.M0, banks.C0)
	case 0x0FE8:
		params.Chr.Registers.SetMetaTarget(banks.M0, banks.C1)
	case 0x1FD8:
		params.Chr.Registers.SetMetaTarget(banks.M1, banks.C2)
	case 0x1FE8:
		params.Chr.Registers.SetMetaTarget(banks.M1, banks.C3)
	}
}
