package mapper

import (
	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
	"github.com/merehap/reznez-sub001/pkg/counter"
)

// Sunsoft implements mapper 69: the Sunsoft FME-7 chip (Gimmick!, Hebereke,
// Batman: Return of the Joker). A single command register at $8000-$9FFF
// selects one of sixteen internal registers, and a single parameter
// register at $A000-$BFFF writes to whichever register is currently
// selected: eight CHR banks, one PRG-RAM/ROM window plus two switchable
// PRG ROM windows (the top window is fixed), a mirroring register, an IRQ control register, and a
// 16-bit free-running up-counting IRQ counter split across two registers —
// the natural consumer of pkg/counter's incrementing counter, which until
// this mapper had no caller.
type Sunsoft struct {
	BaseMapper

	command uint8

	irq        *counter.IncrementingCounter
	irqEnabled bool
}

func newSunsoft(p *Params) (Mapper, error) {
	irq, err := counter.NewIncrementingCounterBuilder().
		AutoTriggeredBy(counter.EndingOnTarget).
		TriggerTarget(0).
		WhenTargetReached(counter.Continue).
		WhenDisabledPrevent(counter.PreventTicking).
		Build()
	if err != nil {
		return nil, err
	}
	return &Sunsoft{irq: irq}, nil
}

// SunsoftPrgLayout builds FME-7's four 8 KiB PRG windows: the first is
// either PRG RAM or ROM depending on register $8, the next two are
// independently switchable ROM banks, and the last is fixed to the final bank.
func SunsoftPrgLayout() banks.LayoutSet {
	l := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomOrRamBank(banks.Switchable(banks.P0)).WithChrSource(banks.CS0))).
		AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P1)))).
		AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Switchable(banks.P2)))).
		AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{l}}
}

// SunsoftChrLayout builds the eight independently switchable 1 KiB CHR windows.
func SunsoftChrLayout() banks.LayoutSet {
	b := banks.NewLayoutBuilder(0x0000, 0x1FFF)
	regs := []banks.BankRegisterID{banks.C0, banks.C1, banks.C2, banks.C3, banks.C4, banks.C5, banks.C6, banks.C7}
	for i, reg := range regs {
		start := uint16(i * 0x400)
		b = b.AddWindow(banks.NewWindow(start, start+0x3FF, banks.RomBank(banks.Switchable(reg))))
	}
	return banks.LayoutSet{Layouts: []banks.Layout{b.Build()}}
}

func (m *Sunsoft) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	switch {
	case cpuAddr >= 0x8000 && cpuAddr < 0xA000:
		m.command = value & 0x0F
	case cpuAddr >= 0xA000 && cpuAddr < 0xC000:
		m.writeParameter(params, value)
	}
}

func (m *Sunsoft) writeParameter(params *banks.MapperParams, value uint8) {
	switch m.command {
	case 0x0, 0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7:
		chrReg := banks.BankRegisterID(int(banks.C0) + int(m.command))
		params.Chr.Registers.Set(chrReg, uint16(value))
	case 0x8:
		source := banks.SourceRom
		if value&0x40 != 0 {
			source = banks.SourceRam
		}
		params.Chr.Registers.SetChrSource(banks.CS0, source)
		status := banks.Disabled
		if value&0x80 != 0 {
			status = banks.ReadWrite
		}
		params.Prg.Registers.SetReadStatus(banks.S0, status)
		params.Prg.Registers.SetWriteStatus(banks.S0, status)
		params.Prg.Registers.Set(banks.P0, uint16(value&0x3F))
	case 0x9:
		params.Prg.Registers.Set(banks.P1, uint16(value&0x3F))
	case 0xA:
		params.Prg.Registers.Set(banks.P2, uint16(value&0x3F))
	case 0xC:
		params.SetNameTableMirroring(sunsoftMirroring(value & 0x03))
	case 0xD:
		m.irqEnabled = value&0x01 != 0
		if !m.irqEnabled {
			params.SetIrqPending(false)
		}
	case 0xE:
		m.irq.SetCountLowByte(value)
	case 0xF:
		m.irq.SetCountHighByte(value)
	}
}

func (m *Sunsoft) OnEndOfCpuCycle(params *banks.MapperParams) {
	if !m.irqEnabled {
		return
	}
	if m.irq.Tick() {
		params.SetIrqPending(true)
	}
}

func sunsoftMirroring(bits uint8) banks.NameTableMirroring {
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
