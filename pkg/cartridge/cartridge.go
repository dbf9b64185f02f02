package cartridge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/merehap/reznez-sub001/pkg/cartridge/banks"
	"github.com/merehap/reznez-sub001/pkg/cartridge/header"
	"github.com/merehap/reznez-sub001/pkg/cartridge/mapper"
	"github.com/merehap/reznez-sub001/pkg/logger"
	"github.com/merehap/reznez-sub001/pkg/memory"
)

// Cartridge is the loaded ROM image plus everything resolved from its
// header: the mapper instance, the PRG/CHR bank layouts it drives, and the
// flat byte views (PRGROM/CHRROM/PRGRAM/CHRRAM) debug tooling inspects
// directly.
type Cartridge struct {
	PRGROM []uint8
	CHRROM []uint8
	PRGRAM []uint8
	CHRRAM []uint8

	Header iNESHeader

	Mapper mapper.Mapper
	Params *banks.MapperParams

	Mirroring MirroringMode

	savePath string
}

// iNESHeader is the raw-byte view of the 16-byte header, kept for debug
// tooling (cmd/rom_analyzer, cmd/gones) that dumps it verbatim; the actual
// resolution logic lives in pkg/cartridge/header.
type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8
	CHRROMSize uint8
	Flags6     uint8
	Flags7     uint8
	Flags8     uint8
	Flags9     uint8
	Flags10    uint8
	Padding    [5]uint8
}

// MirroringMode mirrors the legacy four-value mirroring enum this module's
// callers (pkg/ppu) were written against; GetMirroring translates the
// richer banks.NameTableMirroring into one of these for that narrow surface.
type MirroringMode int

const (
	MirroringHorizontal MirroringMode = iota
	MirroringVertical
	MirroringFourScreen
	MirroringSingleScreenA
	MirroringSingleScreenB
)

// LoadFromReader parses an iNES/NES 2.0 ROM image, resolves its metadata,
// and builds the mapper and bank layouts needed to serve PRG/CHR accesses.
func LoadFromReader(reader io.Reader) (*Cartridge, error) {
	return loadFrom(reader, "")
}

// LoadFromFile loads a ROM from disk and remembers a sibling save-RAM path
// (saveram/<stem>.prg.saveram), per SPEC_FULL.md §6. Save RAM is loaded from
// and flushed to it only when the resolved PRG save-RAM size is non-zero; the
// header's battery flag is not consulted.
func LoadFromFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: opening %s: %w", path, err)
	}
	defer f.Close()
	return loadFrom(f, path)
}

func loadFrom(reader io.Reader, romPath string) (*Cartridge, error) {
	var rawHeader [16]byte
	if _, err := io.ReadFull(reader, rawHeader[:]); err != nil {
		return nil, fmt.Errorf("cartridge: reading header: %w", err)
	}

	decoded, err := header.Parse(rawHeader)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}

	prgRom := make([]uint8, decoded.PrgRomSize)
	if _, err := io.ReadFull(reader, prgRom); err != nil {
		return nil, fmt.Errorf("cartridge: reading PRG ROM: %w", err)
	}

	var chrRom []uint8
	if decoded.ChrRomSize > 0 {
		chrRom = make([]uint8, decoded.ChrRomSize)
		if _, err := io.ReadFull(reader, chrRom); err != nil {
			return nil, fmt.Errorf("cartridge: reading CHR ROM: %w", err)
		}
	}

	meta := header.NewMetadataResolver(decoded).Resolve()

	cart := &Cartridge{
		PRGROM:   prgRom,
		CHRROM:   chrRom,
		savePath: saveRamPath(romPath),
	}
	cart.Header = rawHeaderFields(rawHeader)

	m, err := mapper.New(meta.MapperNumber, meta.SubmapperNumber, &mapper.Params{
		PrgRomSize:     decoded.PrgRomSize,
		ChrRomSize:     decoded.ChrRomSize,
		PrgWorkRamSize: meta.PrgWorkRamSize,
		PrgSaveRamSize: meta.PrgSaveRamSize,
		ChrWorkRamSize: meta.ChrWorkRamSize,
		ChrSaveRamSize: meta.ChrSaveRamSize,
	})
	if err != nil {
		return nil, err
	}
	cart.Mapper = m

	prgRegisters := banks.NewBankRegisters()
	chrRegisters := prgRegisters // PRG and CHR share one bank-register file, per SPEC_FULL.md §3.

	prgLayouts, chrLayouts := layoutsFor(meta.MapperNumber, decoded.PrgRomSize)
	prgRawRom := memory.NewRawMemory(cart.PRGROM)
	prgRawRam := memory.NewRawMemoryOfSize(meta.PrgWorkRamSize)
	prgRawSave := memory.NewRawMemoryOfSize(meta.PrgSaveRamSize)

	chrRawRom := memory.NewRawMemory(cart.CHRROM)
	chrRawRam := memory.NewRawMemoryOfSize(meta.ChrWorkRamSize)
	cart.PRGRAM = prgRawRam.Bytes()
	cart.CHRRAM = chrRawRam.Bytes()

	if len(cart.CHRROM) == 0 {
		chrRegisters.SetChrSource(banks.CS0, banks.SourceRam)
	}

	prgMem := banks.NewPrgMemory(prgLayouts, prgRawRom, prgRawRam, prgRawSave, prgRegisters)
	chrMem := banks.NewChrMemory(chrLayouts, chrRawRom, chrRawRam, chrRegisters)

	cart.Params = &banks.MapperParams{Prg: prgMem, Chr: chrMem, Mirroring: meta.NameTableMirroring}
	cart.Mirroring = mirroringFor(meta.NameTableMirroring)

	if meta.PrgSaveRamSize > 0 && cart.savePath != "" {
		if err := cart.loadSaveRam(); err != nil {
			logger.LogError("cartridge: loading save RAM: %v", err)
		}
	}

	logger.LogMapper("loaded cartridge: mapper=%d submapper=%d prg=%d chr=%d", meta.MapperNumber, meta.SubmapperNumber, len(cart.PRGROM), len(cart.CHRROM))

	return cart, nil
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func rawHeaderFields(raw [16]byte) iNESHeader {
	var h iNESHeader
	copy(h.Magic[:], raw[0:4])
	h.PRGROMSize = raw[4]
	h.CHRROMSize = raw[5]
	h.Flags6 = raw[6]
	h.Flags7 = raw[7]
	h.Flags8 = raw[8]
	h.Flags9 = raw[9]
	h.Flags10 = raw[10]
	copy(h.Padding[:], raw[11:16])
	return h
}

func layoutsFor(mapperNumber uint16, prgRomSize uint32) (banks.LayoutSet, banks.LayoutSet) {
	switch mapperNumber {
	case 1:
		return mapper.Mmc1PrgLayouts(), mapper.Mmc1ChrLayouts()
	case 2:
		return mapper.UxromPrgLayout(), mapper.UxromChrLayout()
	case 3:
		return mapper.NromPrgLayout(prgRomSize), mapper.CnromChrLayout()
	case 4:
		return mapper.Mmc3PrgLayouts(), mapper.Mmc3ChrLayouts()
	case 7:
		return mapper.AxromPrgLayout(), mapper.AxromChrLayout()
	case 9:
		return mapper.Mmc2PrgLayout(), mapper.Mmc2ChrLayout()
	case 10:
		return mapper.Mmc4PrgLayout(), mapper.Mmc2ChrLayout()
	case 19:
		return mapper.Namco163PrgLayout(), mapper.Namco163ChrLayout()
	case 21, 22, 23, 25:
		return mapper.Vrc4PrgLayouts(), mapper.Vrc4ChrLayout()
	case 69:
		return mapper.SunsoftPrgLayout(), mapper.SunsoftChrLayout()
	case 83:
		return mapper.ConyPrgLayout(), mapper.ConyChrLayout()
	case 150:
		return mapper.SachenPrgLayout(), mapper.SachenChrLayout()
	default:
		return mapper.NromPrgLayout(prgRomSize), mapper.NromChrLayout()
	}
}

func mirroringFor(m banks.NameTableMirroring) MirroringMode {
	switch m {
	case banks.Horizontal:
		return MirroringHorizontal
	case banks.Vertical:
		return MirroringVertical
	case banks.OneScreenLeft:
		return MirroringSingleScreenA
	case banks.OneScreenRight:
		return MirroringSingleScreenB
	default:
		return MirroringFourScreen
	}
}

func saveRamPath(romPath string) string {
	if romPath == "" {
		return ""
	}
	stem := strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
	return filepath.Join(filepath.Dir(romPath), "saveram", stem+".prg.saveram")
}

func (c *Cartridge) loadSaveRam() error {
	data, err := os.ReadFile(c.savePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	copy(c.Params.Prg.SaveRam.Bytes(), data)
	return nil
}

// FlushSaveRam persists battery-backed PRG save RAM to disk, creating the
// saveram/ directory next to the ROM if needed.
func (c *Cartridge) FlushSaveRam() error {
	if c.savePath == "" || c.Params.Prg.SaveRam.Size() == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.savePath), 0o755); err != nil {
		return fmt.Errorf("cartridge: creating save RAM directory: %w", err)
	}
	return os.WriteFile(c.savePath, c.Params.Prg.SaveRam.Bytes(), 0o644)
}

// ReadPRG reads from PRG space, routing through the mapper's read hook so
// mappers with CPU-read side effects see the access (MMC2/MMC4's latch is
// driven by PPU reads, through ReadCHR).
func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	result := c.Mapper.ReadFromCartridgeSpace(c.Params, addr)
	value := result.Resolve(0xFF)
	c.Mapper.OnCpuRead(c.Params, addr, value)
	return value
}

// WritePRG writes to PRG space. On boards with bus conflicts the value is
// first ANDed with the byte the cartridge drives at addr; the mapper's
// WriteRegister then sees the write, the PRG window at addr receives it
// (dropped for ROM windows), and OnCpuWrite runs last.
func (c *Cartridge) WritePRG(addr uint16, value uint8) {
	if c.Mapper.HasBusConflicts() {
		value &= c.Mapper.PeekCartridgeSpace(c.Params, addr).Resolve(0xFF)
	}
	c.Mapper.WriteRegister(c.Params, addr, value)
	c.Params.Prg.Write(addr, value)
	c.Mapper.OnCpuWrite(c.Params, addr, value)
}

// ReadCHR reads from CHR space (PPU pattern tables).
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	result := c.Params.Chr.Peek(addr)
	value := result.Resolve(0xFF)
	c.Mapper.OnPpuRead(c.Params, addr, value)
	return value
}

// WriteCHR writes to CHR space (only meaningful when CHR RAM is present).
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	c.Params.Chr.Write(addr, value)
}

// Step advances per-CPU-cycle mapper state (IRQ counters driven by CPU
// cycles rather than PPU A12 edges).
func (c *Cartridge) Step() {
	c.Mapper.OnEndOfCpuCycle(c.Params)
}

func (c *Cartridge) IsIRQPending() bool {
	return c.Params.IrqPending
}

func (c *Cartridge) ClearIRQ() {
	c.Params.SetIrqPending(false)
}

// NotifyA12 drives MMC3-family scanline IRQ counters from PPU address bus
// A12 transitions.
func (c *Cartridge) NotifyA12(chrAddr uint16, renderingEnabled bool) {
	if !renderingEnabled {
		return
	}
	c.Mapper.OnPpuAddressChange(c.Params, chrAddr)
}

// GetMirroring reports the current name-table mirroring as the legacy
// 0=horizontal/1=vertical (and beyond) integer pkg/ppu was written against.
func (c *Cartridge) GetMirroring() int {
	return int(mirroringFor(c.Params.Mirroring))
}
