package mapper

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// Mmc1 is mapper 1: a 5-bit serial shift register feeds four internal
// registers (control, CHR bank 0, CHR bank 1, PRG bank) one bit per write,
// committing on the fifth. A write with bit 7 set resets the shift register
// and forces PRG layout 3 (16 KiB mode, $C000 fixed to the last bank)
// regardless of what was being shifted in. Large-PRG boards (SUROM/SOROM/
// SXROM) use CHR bank 0's high bit as an outer-bank selector; this type does
// not model that bit, so only the first 256 KiB of PRG ROM is reachable.
type Mmc1 struct {
	BaseMapper

	shift      uint8
	shiftCount uint8
	control    uint8
}

const (
	mmc1Layout16KFixFirst = 2
	mmc1Layout16KFixLast  = 3
	mmc1Layout32K         = 0
)

func newMmc1(p *Params) (Mapper, error) {
	return &Mmc1{shift: 0, shiftCount: 0, control: 0x0C}, nil
}

func Mmc1PrgLayouts() banks.LayoutSet {
	fixFirst := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0xBFFF, banks.RomBank(banks.Fixed(0)))).
		AddWindow(banks.NewWindow(0xC000, 0xFFFF, banks.RomBank(banks.Switchable(banks.P0)))).
		Build()
	fixLast := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xC000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
		Build()
	switch32K := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0xFFFF, banks.RomBank(banks.Switchable(banks.P0)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{switch32K, switch32K, fixFirst, fixLast}}
}

func Mmc1ChrLayouts() banks.LayoutSet {
	switched8K := banks.NewLayoutBuilder(0x0000, 0x1FFF).
		AddWindow(banks.NewWindow(0x0000, 0x1FFF, banks.RomOrRamBank(banks.Switchable(banks.C0)).WithChrSource(banks.CS0))).
		Build()
	split4K := banks.NewLayoutBuilder(0x0000, 0x1FFF).
		AddWindow(banks.NewWindow(0x0000, 0x0FFF, banks.RomOrRamBank(banks.Switchable(banks.C0)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x1000, 0x1FFF, banks.RomOrRamBank(banks.Switchable(banks.C1)).WithChrSource(banks.CS1))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{switched8K, split4K}}
}

func (m *Mmc1) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	if value&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		m.applyControl(params)
		return
	}

	m.shift |= (value & 0x01) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	committed := m.shift
	m.shift = 0
	m.shiftCount = 0

	switch {
	case cpuAddr < 0xA000:
		m.control = committed
		m.applyControl(params)
	case cpuAddr < 0xC000:
		params.Prg.Registers.Set(banks.C0, uint16(committed&0x1F))
	case cpuAddr < 0xE000:
		params.Prg.Registers.Set(banks.C1, uint16(committed&0x1F))
	default:
		prgBank := committed & 0x0F
		params.Prg.Registers.Set(banks.P0, uint16(prgBank))
		status := banks.ReadWrite
		if committed&0x10 != 0 {
			status = banks.Disabled
		}
		params.Prg.Registers.SetWriteStatus(banks.S0, status)
	}
}

func (m *Mmc1) applyControl(params *banks.MapperParams) {
	switch m.control & 0x03 {
	case 0:
		params.SetNameTableMirroring(banks.OneScreenLeft)
	case 1:
		params.SetNameTableMirroring(banks.OneScreenRight)
	case 2:
		params.SetNameTableMirroring(banks.Vertical)
	case 3:
		params.SetNameTableMirroring(banks.Horizontal)
	}

	switch (m.control >> 2) & 0x03 {
	case 0, 1:
		params.Prg.SetLayoutIndex(mmc1Layout32K)
	case 2:
		params.Prg.SetLayoutIndex(mmc1Layout16KFixFirst)
	case 3:
		params.Prg.SetLayoutIndex(mmc1Layout16KFixLast)
	}

	if m.control&0x10 != 0 {
		params.Chr.SetLayoutIndex(1)
	} else {
		params.Chr.SetLayoutIndex(0)
	}
}
