package banks

// CiramSide names one of the two physical 1 KiB pages of console-internal
// VRAM (CIRAM).
type CiramSide int

const (
	Left CiramSide = iota
	Right
)

// QuadrantSourceKind selects what backs one of the four name-table quadrants.
type QuadrantSourceKind int

const (
	FromCiram QuadrantSourceKind = iota
	FromSaveRam
	FromExtendedRam
	FromFillModeTile
)

// QuadrantSource is one name-table quadrant's backing store.
type QuadrantSource struct {
	Kind          QuadrantSourceKind
	CiramSide     CiramSide
	SaveRamStart  uint32
}

func Ciram(side CiramSide) QuadrantSource {
	return QuadrantSource{Kind: FromCiram, CiramSide: side}
}

func SaveRamSource(start uint32) QuadrantSource {
	return QuadrantSource{Kind: FromSaveRam, SaveRamStart: start}
}

func ExtendedRamSource() QuadrantSource {
	return QuadrantSource{Kind: FromExtendedRam}
}

func FillModeTileSource() QuadrantSource {
	return QuadrantSource{Kind: FromFillModeTile}
}

// NameTableMirroring selects the backing quadrant source for each of the
// four PPU name-table quadrants (top-left, top-right, bottom-left, bottom-right).
type NameTableMirroring struct {
	Quadrants [4]QuadrantSource
}

var (
	Horizontal = NameTableMirroring{Quadrants: [4]QuadrantSource{
		Ciram(Left), Ciram(Left), Ciram(Right), Ciram(Right),
	}}
	Vertical = NameTableMirroring{Quadrants: [4]QuadrantSource{
		Ciram(Left), Ciram(Right), Ciram(Left), Ciram(Right),
	}}
	OneScreenLeft = NameTableMirroring{Quadrants: [4]QuadrantSource{
		Ciram(Left), Ciram(Left), Ciram(Left), Ciram(Left),
	}}
	OneScreenRight = NameTableMirroring{Quadrants: [4]QuadrantSource{
		Ciram(Right), Ciram(Right), Ciram(Right), Ciram(Right),
	}}
	FourScreen = NameTableMirroring{Quadrants: [4]QuadrantSource{
		Ciram(Left), Ciram(Right), SaveRamSource(0x000), SaveRamSource(0x400),
	}}
)

// Quadrant returns which of the 4 name tables PPU address addr (in
// [0x2000, 0x3EFF]) falls into: 0=top-left .. 3=bottom-right.
func Quadrant(addr uint16) int {
	offset := (addr - 0x2000) % 0x1000
	return int(offset / 0x400)
}

// IndexWithinQuadrant returns the 0..0x3FF byte offset within a name table.
func IndexWithinQuadrant(addr uint16) uint16 {
	return (addr - 0x2000) % 0x400
}
