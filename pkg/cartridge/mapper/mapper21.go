package mapper

import (
	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
	"github.com/merehap/reznez-sub001/pkg/counter"
)

// Vrc4 implements the VRC2/VRC4 family (mapper numbers 21, 22, 23, 25):
// Konami's second bank-switching chip, used by Akumajou Densetsu, Gradius
// II, and several other Famicom-only titles. Every board in the family
// shares PRG/CHR/mirroring register semantics; VRC4 additionally has a
// scanline/cycle IRQ counter that VRC2 lacks, which this implementation
// always wires (reads from a VRC2 cartridge simply never write to the IRQ
// registers). Real boards differ in which CPU address lines (A0/A1, or A1/A0
// swapped) select a register's low/high nibble; this module implements the
// single most common wiring (A0 selects the nibble) and does not model the
// address-line-swapped variants distinguished by mapper numbers 22/23/25 on
// real hardware — see DESIGN.md.
type Vrc4 struct {
	BaseMapper

	prgSwapMode bool // false: $8000 swappable, $C000 fixed; true: swapped

	irq              *counter.DecrementingCounter
	irqLatch         uint8
	irqCycleMode     bool
	irqAckReenable   bool
	scanlinePrescale uint16
}

func newVrc4(p *Params) (Mapper, error) {
	irq, err := counter.NewDecrementingCounterBuilder().
		AutoTriggeredBy(counter.AlreadyZero).
		AutoReload(true).
		OnForcedReloadSetCount(counter.Immediate).
		WhenDisabledPrevent(counter.PreventTicking).
		Build()
	if err != nil {
		return nil, err
	}
	return &Vrc4{irq: irq}, nil
}

// Vrc4PrgLayouts builds both PRG-layout halves the mode bit in the
// mirroring/mode register ($9000-$9003) swaps between.
func Vrc4PrgLayouts() banks.LayoutSet {
	swappableLow := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P1)))).
		AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Fixed(-2)))).
		AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
		Build()
	swappableHigh := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomBank(banks.Fixed(-2)))).
		AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P1)))).
		AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{swappableLow, swappableHigh}}
}

// Vrc4ChrLayout builds the eight independently switchable 1 KiB CHR windows.
func Vrc4ChrLayout() banks.LayoutSet {
	b := banks.NewLayoutBuilder(0x0000, 0x1FFF)
	regs := []banks.BankRegisterID{banks.C0, banks.C1, banks.C2, banks.C3, banks.C4, banks.C5, banks.C6, banks.C7}
	for i, reg := range regs {
		start := uint16(i * 0x400)
		b = b.AddWindow(banks.NewWindow(start, start+0x3FF, banks.RomBank(banks.Switchable(reg))))
	}
	return banks.LayoutSet{Layouts: []banks.Layout{b.Build()}}
}

func (m *Vrc4) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	lowNibble := cpuAddr&0x01 == 0

	switch {
	case cpuAddr >= 0x8000 && cpuAddr < 0x9000:
		params.Prg.Registers.Set(banks.P0, uint16(value&0x1F))
	case cpuAddr >= 0x9000 && cpuAddr < 0xA000:
		if lowNibble {
			params.SetNameTableMirroring(vrc4Mirroring(value & 0x03))
		} else {
			m.prgSwapMode = value&0x02 != 0
		}
	case cpuAddr >= 0xA000 && cpuAddr < 0xB000:
		params.Prg.Registers.Set(banks.P1, uint16(value&0x1F))
	case cpuAddr >= 0xB000 && cpuAddr < 0xF000:
		m.writeChrBank(params, cpuAddr, value)
	case cpuAddr >= 0xF000:
		m.writeIrqRegister(params, cpuAddr, value)
	}

	params.Prg.SetLayoutIndex(boolToIndex(m.prgSwapMode))
}

func (m *Vrc4) writeChrBank(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	rangeIndex := int((cpuAddr >> 12) - 0xB) // 0..3 for $B/$C/$D/$E
	pairOffset := 0
	if cpuAddr&0x02 != 0 {
		pairOffset = 1
	}
	reg := banks.BankRegisterID(int(banks.C0) + 2*rangeIndex + pairOffset)
	if cpuAddr&0x01 == 0 {
		params.Chr.Registers.SetBits(reg, uint16(value&0x0F), 0x0F)
	} else {
		params.Chr.Registers.SetBits(reg, uint16(value&0x0F)<<4, 0xF0)
	}
}

func (m *Vrc4) writeIrqRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	// The 8-bit latch L is loaded as a down-count of 0xFF-L: with the
	// AlreadyZero trigger the IRQ then fires every 256-L ticks, the period of
	// hardware's up-count from L past 0xFF.
	switch cpuAddr & 0x03 {
	case 0:
		m.irqLatch = m.irqLatch&0xF0 | value&0x0F
		m.irq.SetReloadValue(uint16(0xFF - m.irqLatch))
	case 1:
		m.irqLatch = m.irqLatch&0x0F | (value&0x0F)<<4
		m.irq.SetReloadValue(uint16(0xFF - m.irqLatch))
	case 2:
		m.irqCycleMode = value&0x04 != 0
		m.irqAckReenable = value&0x01 != 0
		if value&0x02 != 0 {
			m.irq.Enable()
		} else {
			m.irq.Disable()
		}
		m.irq.ForceReload()
		m.scanlinePrescale = 0
	case 3:
		if m.irqAckReenable {
			m.irq.Enable()
		} else {
			m.irq.Disable()
		}
		params.SetIrqPending(false)
	}
}

func (m *Vrc4) OnEndOfCpuCycle(params *banks.MapperParams) {
	if m.irqCycleMode {
		if m.irq.Tick() {
			params.SetIrqPending(true)
		}
		return
	}

	// One scanline is 341/3 CPU cycles.
	m.scanlinePrescale += 3
	if m.scanlinePrescale < 341 {
		return
	}
	m.scanlinePrescale -= 341
	if m.irq.Tick() {
		params.SetIrqPending(true)
	}
}

func vrc4Mirroring(bits uint8) banks.NameTableMirroring {
	switch bits {
	case 0:
		return banks.Vertical
	case 1:
		return banks.Horizontal
	case 2:
		return banks.OneScreenLeft
	default:
		return banks.OneScreenRight
	}
}

func boolToIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
