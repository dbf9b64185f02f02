package header

import "github.com/merehap/reznez-sub001/pkg/cartridge/banks"

// ResolvedMetadata is the final, fully-resolved set of facts a Cartridge
// needs to build its mapper and bank layouts. Each field is produced by
// MetadataResolver layering multiple sources together, first-non-empty-wins,
// per SPEC_FULL.md §3/§4.9: hard-coded override, then cartridge header, then
// external DB, then DB extension, then computed default.
type ResolvedMetadata struct {
	MapperNumber       uint16
	SubmapperNumber    uint8
	NameTableMirroring banks.NameTableMirroring
	HasPersistentMemory bool
	PrgRomSize         uint32
	ChrRomSize         uint32
	PrgWorkRamSize     uint32
	PrgSaveRamSize     uint32
	ChrWorkRamSize     uint32
	ChrSaveRamSize     uint32
}

// source is one layer's partial ResolvedMetadata. The header, Db entries and
// hard-coded overrides fill in whichever fields they actually know about and
// leave the rest nil.
type source struct {
	mapperNumber        *uint16
	submapperNumber     *uint8
	nameTableMirroring  *banks.NameTableMirroring
	hasPersistentMemory *bool
	prgRomSize          *uint32
	chrRomSize          *uint32
	prgWorkRamSize      *uint32
	prgSaveRamSize      *uint32
	chrWorkRamSize      *uint32
	chrSaveRamSize      *uint32
}

// MetadataResolver layers an optional hard-coded override, the decoded
// header, an optional external DB entry, and an optional DB-extension entry,
// over a computed-defaults fallback, in that priority order.
type MetadataResolver struct {
	Override  *source
	Header    CartridgeHeader
	Db        *source
	DbExtension *source
}

// NewMetadataResolver builds a resolver around a decoded header; Override,
// Db, and DbExtension are left nil (unused) until callers opt in.
func NewMetadataResolver(h CartridgeHeader) *MetadataResolver {
	return &MetadataResolver{Header: h}
}

// WithDb attaches a matched nes20db.xml entry as the Db-priority layer.
func (r *MetadataResolver) WithDb(g dbGame) *MetadataResolver {
	r.Db = g.ToSource()
	return r
}

// WithDbExtension attaches a second, lower-priority DB entry — used for
// community extension databases layered below the primary nes20db.xml.
func (r *MetadataResolver) WithDbExtension(g dbGame) *MetadataResolver {
	r.DbExtension = g.ToSource()
	return r
}

// Resolve applies the five-layer priority order described in SPEC_FULL.md
// §3 and returns the final ResolvedMetadata. The header always supplies the
// mapper number, persistent-memory flag and ROM sizes; it supplies the
// submapper number and RAM sizes only for NES 2.0 headers, and mirroring only
// when the header is not four-screen. A field no layer supplies is zero
// (FourScreen for mirroring), except that CHR falls back to 8 KiB of CHR RAM.
func (r *MetadataResolver) Resolve() ResolvedMetadata {
	headerSource := headerToSource(r.Header)

	m := ResolvedMetadata{}
	m.MapperNumber = firstUint16(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint16 { return s.mapperNumber })
	m.SubmapperNumber = firstUint8(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint8 { return s.submapperNumber })
	m.NameTableMirroring = firstMirroring(r.Override, headerSource, r.Db, r.DbExtension)
	m.HasPersistentMemory = firstBool(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *bool { return s.hasPersistentMemory })
	m.PrgRomSize = firstUint32(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint32 { return s.prgRomSize })
	m.ChrRomSize = firstUint32(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint32 { return s.chrRomSize })
	m.PrgWorkRamSize = firstUint32(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint32 { return s.prgWorkRamSize })
	m.PrgSaveRamSize = firstUint32(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint32 { return s.prgSaveRamSize })
	m.ChrWorkRamSize = firstUint32(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint32 { return s.chrWorkRamSize })
	m.ChrSaveRamSize = firstUint32(r.Override, headerSource, r.Db, r.DbExtension, func(s *source) *uint32 { return s.chrSaveRamSize })

	// Computed default: a cartridge with CHR ROM/RAM size 0 anywhere in the
	// chain still needs a CHR window to point at something; treat it as 8
	// KiB of CHR RAM, the common discrete-logic-board default.
	if m.ChrRomSize == 0 && m.ChrWorkRamSize == 0 && m.ChrSaveRamSize == 0 {
		m.ChrWorkRamSize = 8 * 1024
	}

	return m
}

func headerToSource(h CartridgeHeader) *source {
	s := &source{
		mapperNumber:        &h.MapperNumber,
		hasPersistentMemory: &h.HasPersistentMemory,
		prgRomSize:          &h.PrgRomSize,
		chrRomSize:          &h.ChrRomSize,
	}
	if h.NameTableMirroring != nil {
		s.nameTableMirroring = h.NameTableMirroring
	}
	if h.Nes2 != nil {
		s.submapperNumber = &h.Nes2.SubmapperNumber
		s.prgWorkRamSize = &h.Nes2.PrgWork
		s.prgSaveRamSize = &h.Nes2.PrgSave
		s.chrWorkRamSize = &h.Nes2.ChrWork
		s.chrSaveRamSize = &h.Nes2.ChrSave
	}
	return s
}

func firstUint16(override, h, db, dbExt *source, pick func(*source) *uint16) uint16 {
	for _, s := range []*source{override, h, db, dbExt} {
		if s == nil {
			continue
		}
		if v := pick(s); v != nil {
			return *v
		}
	}
	return 0
}

func firstUint8(override, h, db, dbExt *source, pick func(*source) *uint8) uint8 {
	for _, s := range []*source{override, h, db, dbExt} {
		if s == nil {
			continue
		}
		if v := pick(s); v != nil {
			return *v
		}
	}
	return 0
}

func firstUint32(override, h, db, dbExt *source, pick func(*source) *uint32) uint32 {
	for _, s := range []*source{override, h, db, dbExt} {
		if s == nil {
			continue
		}
		if v := pick(s); v != nil {
			return *v
		}
	}
	return 0
}

func firstBool(override, h, db, dbExt *source, pick func(*source) *bool) bool {
	for _, s := range []*source{override, h, db, dbExt} {
		if s == nil {
			continue
		}
		if v := pick(s); v != nil {
			return *v
		}
	}
	return false
}

func firstMirroring(override, h, db, dbExt *source) banks.NameTableMirroring {
	for _, s := range []*source{override, h, db, dbExt} {
		if s == nil {
			continue
		}
		if s.nameTableMirroring != nil {
			return *s.nameTableMirroring
		}
	}
	return banks.FourScreen
}
