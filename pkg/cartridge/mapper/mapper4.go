package mapper

import (
	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
	"github.com/merehap/reznez-sub001/pkg/counter"
)

// Mmc3IrqVariant distinguishes the four IRQ-counter behaviors real MMC3
// boards (and their clones) are known to implement.
type Mmc3IrqVariant int

const (
	Mmc3Sharp Mmc3IrqVariant = iota
	Mmc3Nec
	Mmc3RevA
	Mmc3McAcc
)

// Mmc3 is mapper 4: eight bank registers (R0-R7) selected by a bank-select
// byte, two swappable PRG/CHR layout halves chosen by control bits, and a
// scanline IRQ counter clocked by PPU A12 rising edges.
type Mmc3 struct {
	BaseMapper

	bankSelect uint8
	variant    Mmc3IrqVariant

	irq            *counter.DecrementingCounter
	lastA12        bool
	a12LowCycles   int
	mcAccEdgeCount uint8
}

// MMC3 submapper numbers per NES 2.0: 0 (Sharp, the default and most common
// board), 4 (NEC, whose IRQ fires only on a 1->0 count transition), 3
// (MC-ACC, prescaled by 8), 99 (Rev A, the source's own reused-number
// convention for a submapper with no official NES 2.0 assignment; 1->0
// trigger plus a trigger when a forced reload loads zero).
func newMmc3(p *Params) (Mapper, error) {
	switch p.SubmapperNumber {
	case 4:
		return newMmc3Variant(Mmc3Nec)
	case 3:
		return newMmc3Variant(Mmc3McAcc)
	case 99:
		return newMmc3Variant(Mmc3RevA)
	default:
		return newMmc3Variant(Mmc3Sharp)
	}
}

func newMmc3Variant(variant Mmc3IrqVariant) (*Mmc3, error) {
	trigger := counter.EndingOnZero
	if variant == Mmc3Nec || variant == Mmc3RevA {
		trigger = counter.OneToZeroTransition
	}
	builder := counter.NewDecrementingCounterBuilder().
		AutoTriggeredBy(trigger).
		AutoReload(true).
		OnForcedReloadSetCount(counter.OnNextTick).
		WhenDisabledPrevent(counter.PreventTriggering)
	if variant == Mmc3RevA {
		builder = builder.AlsoTriggerOnForcedReloadOfZero()
	}
	irq, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Mmc3{variant: variant, irq: irq, lastA12: true}, nil
}

// Mmc3PrgLayouts builds both PRG-layout halves MMC3's control bit 6 swaps
// between: whichever of $8000/$C000 isn't P0-switchable is fixed to the
// second-to-last bank, and $E000-$FFFF is always fixed to the last bank.
func Mmc3PrgLayouts() banks.LayoutSet {
	r0SwitchesLow := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P1)))).
		AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Fixed(-2)))).
		AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
		Build()
	r0SwitchesHigh := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomBank(banks.Fixed(-2)))).
		AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P1)))).
		AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{r0SwitchesLow, r0SwitchesHigh}}
}

// Mmc3ChrLayouts builds both CHR-layout halves control bit 7 swaps between:
// two 2 KiB windows and four 1 KiB windows trade places in the address space.
func Mmc3ChrLayouts() banks.LayoutSet {
	twoKFirst := banks.NewLayoutBuilder(0x0000, 0x1FFF).
		AddWindow(banks.NewWindow(0x0000, 0x07FF, banks.RomOrRamBank(banks.Switchable(banks.C0)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x0800, 0x0FFF, banks.RomOrRamBank(banks.Switchable(banks.C1)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x1000, 0x13FF, banks.RomOrRamBank(banks.Switchable(banks.C2)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x1400, 0x17FF, banks.RomOrRamBank(banks.Switchable(banks.C3)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x1800, 0x1BFF, banks.RomOrRamBank(banks.Switchable(banks.C4)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x1C00, 0x1FFF, banks.RomOrRamBank(banks.Switchable(banks.C5)).WithChrSource(banks.CS0))).
		Build()
	oneKFirst := banks.NewLayoutBuilder(0x0000, 0x1FFF).
		AddWindow(banks.NewWindow(0x0000, 0x03FF, banks.RomOrRamBank(banks.Switchable(banks.C2)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x0400, 0x07FF, banks.RomOrRamBank(banks.Switchable(banks.C3)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x0800, 0x0BFF, banks.RomOrRamBank(banks.Switchable(banks.C4)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x0C00, 0x0FFF, banks.RomOrRamBank(banks.Switchable(banks.C5)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x1000, 0x17FF, banks.RomOrRamBank(banks.Switchable(banks.C0)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0x1800, 0x1FFF, banks.RomOrRamBank(banks.Switchable(banks.C1)).WithChrSource(banks.CS0))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{twoKFirst, oneKFirst}}
}

func (m *Mmc3) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	even := cpuAddr%2 == 0
	switch {
	case cpuAddr >= 0x8000 && cpuAddr < 0xA000 && even:
		m.bankSelect = value
		params.Chr.SetLayoutIndex(int((value >> 7) & 0x01))
		params.Prg.SetLayoutIndex(int((value >> 6) & 0x01))
	case cpuAddr >= 0x8000 && cpuAddr < 0xA000:
		m.writeBankValue(params, value)
	case cpuAddr >= 0xA000 && cpuAddr < 0xC000 && even:
		if value&0x01 != 0 {
			params.SetNameTableMirroring(banks.Horizontal)
		} else {
			params.SetNameTableMirroring(banks.Vertical)
		}
	case cpuAddr >= 0xA000 && cpuAddr < 0xC000:
		status := banks.ReadWrite
		if value&0x80 == 0 {
			status = banks.Disabled
		}
		params.Prg.Registers.SetWriteStatus(banks.S0, status)
	case cpuAddr >= 0xC000 && cpuAddr < 0xE000 && even:
		m.irq.SetReloadValue(uint16(value))
	case cpuAddr >= 0xC000 && cpuAddr < 0xE000:
		m.irq.ForceReload()
	case cpuAddr >= 0xE000 && even:
		m.irq.Disable()
		params.SetIrqPending(false)
	case cpuAddr >= 0xE000:
		m.irq.Enable()
	}
}

func (m *Mmc3) writeBankValue(params *banks.MapperParams, value uint8) {
	selected := m.bankSelect & 0x07
	switch selected {
	case 0, 1:
		chrReg := []banks.BankRegisterID{banks.C0, banks.C1}[selected]
		params.Chr.Registers.Set(chrReg, uint16(value&0xFE))
	case 2, 3, 4, 5:
		chrReg := []banks.BankRegisterID{banks.C2, banks.C3, banks.C4, banks.C5}[selected-2]
		params.Chr.Registers.Set(chrReg, uint16(value))
	case 6:
		params.Prg.Registers.Set(banks.P0, uint16(value&0x3F))
	case 7:
		params.Prg.Registers.Set(banks.P1, uint16(value&0x3F))
	}
}

func (m *Mmc3) OnPpuAddressChange(params *banks.MapperParams, ppuAddr uint16) {
	a12 := ppuAddr&0x1000 != 0
	if a12 && !m.lastA12 {
		m.clockIrq(params)
	}
	m.lastA12 = a12
}

func (m *Mmc3) clockIrq(params *banks.MapperParams) {
	switch m.variant {
	case Mmc3McAcc:
		m.mcAccEdgeCount++
		if m.mcAccEdgeCount < 8 {
			return
		}
		m.mcAccEdgeCount = 0
	}
	if m.irq.Tick() {
		params.SetIrqPending(true)
	}
}
