package mapper

import (
	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
	"github.com/merehap/reznez-sub001/pkg/counter"
)

// Namco163 implements mapper 19: Namco's 129/163-style chip used by Famista
// '90, Erika to Satoru no Yume Bouken, and several other late-era Famicom
// carts. Eight independently switchable 1 KiB CHR windows, three switchable
// 8 KiB PRG windows plus a fixed top window, and a 15-bit up-counting IRQ
// whose low byte is written and read back through $5000-$5FFF (reads return
// only that low byte) and whose high bits and enable flag (bit 7) are
// written at $F800-$FFFF. Namco 163's expansion-audio and
// nametable-RAM-redirect registers are out of scope (audio synthesis is a
// named SPEC_FULL.md Non-goal, and the redirect registers only matter for
// carts with CHR RAM in the nametable windows) — see DESIGN.md.
type Namco163 struct {
	BaseMapper

	irq *counter.IncrementingCounter
}

func newNamco163(p *Params) (Mapper, error) {
	irq, err := counter.NewIncrementingCounterBuilder().
		AutoTriggeredBy(counter.EndingOnTarget).
		TriggerTarget(0x7FFF).
		WhenTargetReached(counter.Stay).
		WhenDisabledPrevent(counter.PreventTicking).
		Build()
	if err != nil {
		return nil, err
	}
	return &Namco163{irq: irq}, nil
}

// Namco163PrgLayout builds the three switchable 8 KiB PRG windows plus the
// fixed top window standard on Namco 163 boards.
func Namco163PrgLayout() banks.LayoutSet {
	l := banks.NewLayoutBuilder(0x8000, 0xFFFF).
		AddWindow(banks.NewWindow(0x8000, 0x9FFF, banks.RomBank(banks.Switchable(banks.P0)))).
		AddWindow(banks.NewWindow(0xA000, 0xBFFF, banks.RomBank(banks.Switchable(banks.P1)))).
		AddWindow(banks.NewWindow(0xC000, 0xDFFF, banks.RomBank(banks.Switchable(banks.P2)))).
		AddWindow(banks.NewWindow(0xE000, 0xFFFF, banks.RomBank(banks.Fixed(-1)))).
		Build()
	return banks.LayoutSet{Layouts: []banks.Layout{l}}
}

// Namco163ChrLayout builds the eight independently switchable 1 KiB CHR windows.
func Namco163ChrLayout() banks.LayoutSet {
	b := banks.NewLayoutBuilder(0x0000, 0x1FFF)
	regs := []banks.BankRegisterID{banks.C0, banks.C1, banks.C2, banks.C3, banks.C4, banks.C5, banks.C6, banks.C7}
	for i, reg := range regs {
		start := uint16(i * 0x400)
		b = b.AddWindow(banks.NewWindow(start, start+0x3FF, banks.RomBank(banks.Switchable(reg))))
	}
	return banks.LayoutSet{Layouts: []banks.Layout{b.Build()}}
}

func (m *Namco163) WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8) {
	switch {
	case cpuAddr >= 0x5000 && cpuAddr < 0x6000:
		m.irq.SetCountLowByte(value)
	case cpuAddr >= 0x8000 && cpuAddr < 0xA000:
		reg := []banks.BankRegisterID{banks.C0, banks.C1}[(cpuAddr/0x800)%2]
		params.Chr.Registers.Set(reg, uint16(value))
	case cpuAddr >= 0xA000 && cpuAddr < 0xC000:
		reg := []banks.BankRegisterID{banks.C2, banks.C3}[(cpuAddr/0x800)%2]
		params.Chr.Registers.Set(reg, uint16(value))
	case cpuAddr >= 0xC000 && cpuAddr < 0xE000:
		reg := []banks.BankRegisterID{banks.C4, banks.C5}[(cpuAddr/0x800)%2]
		params.Chr.Registers.Set(reg, uint16(value))
	case cpuAddr >= 0xE000 && cpuAddr < 0xE800:
		params.Prg.Registers.Set(banks.P0, uint16(value&0x3F))
	case cpuAddr >= 0xE800 && cpuAddr < 0xF000:
		params.Prg.Registers.Set(banks.P1, uint16(value&0x3F))
		mirroringBits := (value >> 6) & 0x03
		params.SetNameTableMirroring(namco163Mirroring(mirroringBits))
	case cpuAddr >= 0xF000 && cpuAddr < 0xF800:
		params.Prg.Registers.Set(banks.P2, uint16(value&0x3F))
	case cpuAddr >= 0xF800:
		if value&0x80 != 0 {
			m.irq.Enable()
		} else {
			m.irq.Disable()
			params.SetIrqPending(false)
		}
		m.irq.SetCountHighByte(value & 0x7F)
	}
}

func (m *Namco163) PeekCartridgeSpace(params *banks.MapperParams, cpuAddr uint16) banks.ReadResult {
	if cpuAddr >= 0x5000 && cpuAddr < 0x6000 {
		return banks.FullRead(uint8(m.irq.Count()))
	}
	return m.BaseMapper.PeekCartridgeSpace(params, cpuAddr)
}

func (m *Namco163) ReadFromCartridgeSpace(params *banks.MapperParams, cpuAddr uint16) banks.ReadResult {
	return m.PeekCartridgeSpace(params, cpuAddr)
}

func (m *Namco163) OnEndOfCpuCycle(params *banks.MapperParams) {
	if m.irq.Tick() {
		params.SetIrqPending(true)
	}
}

func namco163Mirroring(bits uint8) banks.NameTableMirroring {
	switch bits {
	case 0:
		return banks.OneScreenLeft
	case 1:
		return banks.Vertical
	case 2:
		return banks.Horizontal
	default:
		return banks.OneScreenRight
	}
}
