// Package mapper implements the bank-switching logic that turns a raw
// iNES/NES 2.0 ROM image into addressable PRG/CHR space, built on top of the
// shared vocabulary in pkg/cartridge/banks (windows, layouts, bank registers,
// address templates).
package mapper

import (
	"fmt"

	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
	"github.com/merehap/reznez-sub001/pkg/logger"
)

// Mapper is the behavior every bank-switching chip implements. Most mappers
// only need WriteRegister plus a Layout built once at construction time;
// BaseMapper supplies no-op defaults for everything else so a concrete
// mapper only overrides the hooks it actually uses.
type Mapper interface {
	// WriteRegister handles a CPU write that falls within the cartridge's
	// register space (as opposed to plain PRG RAM).
	WriteRegister(params *banks.MapperParams, cpuAddr uint16, value uint8)

	// PeekCartridgeSpace reads without side effects (debugger/disassembler use).
	PeekCartridgeSpace(params *banks.MapperParams, cpuAddr uint16) banks.ReadResult
	// ReadFromCartridgeSpace is PeekCartridgeSpace's side-effecting counterpart.
	ReadFromCartridgeSpace(params *banks.MapperParams, cpuAddr uint16) banks.ReadResult

	OnEndOfCpuCycle(params *banks.MapperParams)
	OnEndOfPpuCycle(params *banks.MapperParams)
	// OnPpuAddressChange drives A12-edge IRQs (the MMC3 family).
	OnPpuAddressChange(params *banks.MapperParams, ppuAddr uint16)
	// OnPpuRead triggers MMC2/MMC4-style latched CHR bank swaps.
	OnPpuRead(params *banks.MapperParams, ppuAddr uint16, value uint8)
	OnCpuRead(params *banks.MapperParams, cpuAddr uint16, value uint8)
	OnCpuWrite(params *banks.MapperParams, cpuAddr uint16, value uint8)

	HasBusConflicts() bool
	// FillModeNameTable supplies the quadrant source fixed-fill-mode
	// name-table quadrants resolve to (used by MMC5-class boards; BaseMapper
	// returns banks.FillModeTileSource()).
	FillModeNameTable() banks.QuadrantSource
}

// BaseMapper gives every concrete mapper the commodity behavior most chips
// share: register writes land nowhere unless overridden, reads fall through
// to the bank layout, and none of the rare per-cycle/per-PPU-access hooks do
// anything. Concrete mappers embed this and override only what differs.
type BaseMapper struct{}

func (BaseMapper) WriteRegister(*banks.MapperParams, uint16, uint8) {}

func (BaseMapper) PeekCartridgeSpace(params *banks.MapperParams, cpuAddr uint16) banks.ReadResult {
	return params.Prg.Peek(cpuAddr)
}

func (b BaseMapper) ReadFromCartridgeSpace(params *banks.MapperParams, cpuAddr uint16) banks.ReadResult {
	return b.PeekCartridgeSpace(params, cpuAddr)
}

func (BaseMapper) OnEndOfCpuCycle(*banks.MapperParams)                  {}
func (BaseMapper) OnEndOfPpuCycle(*banks.MapperParams)                  {}
func (BaseMapper) OnPpuAddressChange(*banks.MapperParams, uint16)       {}
func (BaseMapper) OnPpuRead(*banks.MapperParams, uint16, uint8)         {}
func (BaseMapper) OnCpuRead(*banks.MapperParams, uint16, uint8)         {}
func (BaseMapper) OnCpuWrite(*banks.MapperParams, uint16, uint8)        {}
func (BaseMapper) HasBusConflicts() bool                                { return false }
func (BaseMapper) FillModeNameTable() banks.QuadrantSource              { return banks.FillModeTileSource() }

// LookupStatus classifies why a given (mapper, submapper) pair either
// resolved to a concrete Mapper or didn't, per SPEC_FULL.md §4.1/§7 — the
// cartridge loader surfaces this distinction rather than collapsing
// everything into one generic "unsupported" error.
type LookupStatus int

const (
	Supported LookupStatus = iota
	UnassignedMapper
	UnassignedSubmapper
	TodoMapper
	TodoSubmapper
	UnspecifiedSubmapper
	ReassignedMapper
)

// LookupResult is the outcome of resolving a mapper/submapper pair to a
// constructor, or an explanation of why none exists yet.
type LookupResult struct {
	Status LookupStatus
	Build  func(p *Params) (Mapper, error)
}

// Params bundles everything a mapper constructor needs to build its Layout
// and seed its BankRegisters: ROM sizes, declared RAM sizes, and the
// submapper number (most mappers ignore it).
type Params struct {
	PrgRomSize      uint32
	ChrRomSize      uint32
	PrgWorkRamSize  uint32
	PrgSaveRamSize  uint32
	ChrWorkRamSize  uint32
	ChrSaveRamSize  uint32
	SubmapperNumber uint8
}

var registry = map[uint16]func(*Params) (Mapper, error){
	0:   newNrom,
	1:   newMmc1,
	2:   newUxrom,
	3:   newCnrom,
	4:   newMmc3,
	7:   newAxrom,
	9:   newMmc2,
	10:  newMmc4,
	19:  newNamco163,
	21:  newVrc4,
	22:  newVrc4,
	23:  newVrc4,
	25:  newVrc4,
	69:  newSunsoft,
	83:  newCony,
	150: newSachen,
}

// Lookup resolves a mapper number (and, where it matters, submapper number)
// to a constructor. Mappers this module hasn't implemented yet report
// TodoMapper rather than a bare error, so callers can surface a precise
// diagnostic instead of a generic failure.
func Lookup(mapperNumber uint16, submapperNumber uint8) LookupResult {
	ctor, ok := registry[mapperNumber]
	if !ok {
		return LookupResult{Status: TodoMapper}
	}
	return LookupResult{Status: Supported, Build: ctor}
}

// New builds a Mapper for the given parameters, logging the resolution the
// way the teacher's mapper package always has.
func New(mapperNumber uint16, submapperNumber uint8, p *Params) (Mapper, error) {
	result := Lookup(mapperNumber, submapperNumber)
	if result.Status != Supported {
		return nil, fmt.Errorf("mapper: mapper %d is not implemented (%v)", mapperNumber, result.Status)
	}
	p.SubmapperNumber = submapperNumber
	m, err := result.Build(p)
	if err != nil {
		return nil, fmt.Errorf("mapper: building mapper %d: %w", mapperNumber, err)
	}
	logger.LogMapper("resolved mapper %d (submapper %d) to %T", mapperNumber, submapperNumber, m)
	return m, nil
}

func prgBankCount(p *Params, windowSize uint32) uint16 {
	if windowSize == 0 {
		return 0
	}
	return uint16(p.PrgRomSize / windowSize)
}
