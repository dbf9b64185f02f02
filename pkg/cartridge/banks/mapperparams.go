package banks

import "github.com/merehap/reznez-sub001/pkg/memory"

// PrgMemory aggregates everything needed to resolve a PRG-space address: the
// active Layout (selected from a LayoutSet by layout index), the shared
// BankRegisters file, and the ROM/work-RAM/save-RAM pools themselves.
type PrgMemory struct {
	Layouts      LayoutSet
	layoutIndex  int
	Rom          *memory.RawMemory
	WorkRam      *memory.RawMemory
	SaveRam      *memory.RawMemory
	Registers    *BankRegisters
	OuterBankReg BankRegisterID
	HasOuterBank bool
}

func NewPrgMemory(layouts LayoutSet, rom, workRam, saveRam *memory.RawMemory, registers *BankRegisters) *PrgMemory {
	return &PrgMemory{Layouts: layouts, Rom: rom, WorkRam: workRam, SaveRam: saveRam, Registers: registers}
}

func (m *PrgMemory) SetLayoutIndex(index int) { m.layoutIndex = index }
func (m *PrgMemory) LayoutIndex() int         { return m.layoutIndex }
func (m *PrgMemory) CurrentLayout() Layout    { return m.Layouts.At(m.layoutIndex) }

// SetOuterBankRegister declares which bank register holds the outer-bank
// number (for multi-megabit PRG boards like MMC1 SUROM). Without a call to
// this, the outer-bank number is always 0. bankIndex reduces its result
// modulo the pool size, which cancels the outer-bank term (a multiple of the
// pool size), so the outer-bank number does not change which byte is read.
func (m *PrgMemory) SetOuterBankRegister(id BankRegisterID) {
	m.OuterBankReg = id
	m.HasOuterBank = true
}

func (m *PrgMemory) outerBankNumber() uint32 {
	if !m.HasOuterBank {
		return 0
	}
	return uint32(m.Registers.Get(m.OuterBankReg))
}

// Peek resolves addr through the current layout without any side effects.
func (m *PrgMemory) Peek(addr uint16) ReadResult {
	window, ok := m.Layouts.At(m.layoutIndex).WindowFor(addr)
	if !ok {
		return OpenBusRead()
	}
	return resolveWindow(window, addr, m.Registers, m.Rom, m.WorkRam, m.SaveRam, m.outerBankNumber())
}

// Write applies a value to the PRG window covering addr, honoring the
// window's write-status register and ROM-is-read-only semantics.
func (m *PrgMemory) Write(addr uint16, value uint8) {
	window, ok := m.Layouts.At(m.layoutIndex).WindowFor(addr)
	if !ok {
		return
	}
	writeWindow(window, addr, value, m.Registers, m.WorkRam, m.SaveRam, m.outerBankNumber())
}

// ChrMemory is PrgMemory's PPU-space counterpart: it also owns the
// name-table ROM/RAM pages some mappers (MMC5-class, though out of this
// module's representative set) substitute for CIRAM.
type ChrMemory struct {
	Layouts     LayoutSet
	layoutIndex int
	Rom         *memory.RawMemory
	Ram         *memory.RawMemory
	Registers   *BankRegisters
}

func NewChrMemory(layouts LayoutSet, rom, ram *memory.RawMemory, registers *BankRegisters) *ChrMemory {
	return &ChrMemory{Layouts: layouts, Rom: rom, Ram: ram, Registers: registers}
}

func (m *ChrMemory) SetLayoutIndex(index int) { m.layoutIndex = index }
func (m *ChrMemory) LayoutIndex() int         { return m.layoutIndex }
func (m *ChrMemory) CurrentLayout() Layout    { return m.Layouts.At(m.layoutIndex) }

func (m *ChrMemory) Peek(addr uint16) ReadResult {
	window, ok := m.Layouts.At(m.layoutIndex).WindowFor(addr)
	if !ok {
		return OpenBusRead()
	}
	return resolveWindow(window, addr, m.Registers, m.Rom, m.Ram, nil, 0)
}

func (m *ChrMemory) Write(addr uint16, value uint8) {
	window, ok := m.Layouts.At(m.layoutIndex).WindowFor(addr)
	if !ok {
		return
	}
	writeWindow(window, addr, value, m.Registers, m.Ram, nil, 0)
}

// resolveWindow implements the read half of SPEC_FULL.md §4.2's address
// resolution algorithm, shared by PrgMemory and ChrMemory.
func resolveWindow(w Window, addr uint16, regs *BankRegisters, rom, workRam, saveRam *memory.RawMemory, outerBankNumber uint32) ReadResult {
	if w.Bank.HasReadStatus {
		switch regs.ReadStatus(w.Bank.ReadStatusRegister) {
		case Disabled:
			return OpenBusRead()
		case ReadOnlyZeros:
			return FullRead(0)
		}
	}

	offset := uint32(addr - w.Start)

	switch w.Bank.Kind {
	case Empty, Absent:
		return OpenBusRead()
	case MirrorOf:
		return OpenBusRead() // resolved by the caller re-dispatching on MirrorAddr
	case Rom:
		index := bankIndex(w, regs, rom.Size(), w.Size(), outerBankNumber, offset)
		return FullRead(rom.Read(index))
	case WorkRam:
		index := bankIndex(w, regs, workRam.Size(), w.Size(), outerBankNumber, offset)
		return FullRead(workRam.Read(index))
	case SaveRam:
		index := bankIndex(w, regs, saveRam.Size(), w.Size(), outerBankNumber, offset)
		return FullRead(saveRam.Read(index))
	case RomOrRam:
		pool, size := rom, rom.Size()
		if w.Bank.HasChrSource && regs.ChrSource(w.Bank.ChrSourceRegister) == SourceRam {
			pool, size = workRam, workRam.Size()
		}
		if size == 0 {
			return OpenBusRead()
		}
		index := bankIndex(w, regs, size, w.Size(), outerBankNumber, offset)
		return FullRead(pool.Read(index))
	default:
		return OpenBusRead()
	}
}

func writeWindow(w Window, addr uint16, value uint8, regs *BankRegisters, workRam, saveRam *memory.RawMemory, outerBankNumber uint32) {
	if w.Bank.HasWriteStatus {
		status := regs.WriteStatus(w.Bank.WriteStatusRegister)
		if status == Disabled || status == ReadOnly || status == ReadOnlyZeros {
			return
		}
	}

	offset := uint32(addr - w.Start)

	switch w.Bank.Kind {
	case WorkRam:
		index := bankIndex(w, regs, workRam.Size(), w.Size(), outerBankNumber, offset)
		workRam.Write(index, value)
	case SaveRam:
		index := bankIndex(w, regs, saveRam.Size(), w.Size(), outerBankNumber, offset)
		saveRam.Write(index, value)
	case RomOrRam:
		if w.Bank.HasChrSource && regs.ChrSource(w.Bank.ChrSourceRegister) == SourceRam {
			index := bankIndex(w, regs, workRam.Size(), w.Size(), outerBankNumber, offset)
			workRam.Write(index, value)
		}
		// Writes to the ROM side of a RomOrRam window are dropped, same as Rom.
	default:
		// Writes to Rom/Empty/Absent/MirrorOf windows are dropped (ROM is read-only).
	}
}

// bankIndex resolves a window's Addressing to a concrete byte index within
// poolSize bytes of backing storage, per SPEC_FULL.md §4.2 steps 3-5.
func bankIndex(w Window, regs *BankRegisters, poolSize uint32, windowSize uint32, outerBankNumber uint32, offset uint32) uint32 {
	if poolSize == 0 {
		return 0
	}
	banksInPool := poolSize / windowSize
	if banksInPool == 0 {
		banksInPool = 1
	}

	var rawIndex int32
	switch w.Bank.Addressing.Kind {
	case AddressingFixed:
		rawIndex = int32(w.Bank.Addressing.FixedNumber)
	default:
		value, ok := regs.Resolve(w.Bank.Addressing)
		if !ok {
			value = 0
		}
		rawIndex = int32(value)
	}

	if rawIndex < 0 {
		rawIndex += int32(banksInPool)
	}
	bankNumber := uint32(((rawIndex % int32(banksInPool)) + int32(banksInPool))) % banksInPool

	byteIndex := outerBankNumber*poolSize + bankNumber*windowSize + offset
	return byteIndex % poolSize
}

// MapperParams is the per-cartridge-instance mutable state every Mapper
// method operates on: PRG and CHR memory, the current name-table mirroring,
// and the pending-IRQ flag, per SPEC_FULL.md §3.
type MapperParams struct {
	Prg        *PrgMemory
	Chr        *ChrMemory
	Mirroring  NameTableMirroring
	IrqPending bool
}

func (p *MapperParams) SetNameTableMirroring(m NameTableMirroring) {
	p.Mirroring = m
}

func (p *MapperParams) SetIrqPending(pending bool) {
	p.IrqPending = pending
}
