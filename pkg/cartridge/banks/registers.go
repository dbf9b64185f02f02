package banks

// BankRegisterID names one of the bank-number registers: P0-P15 for PRG,
// C0-C15 for CHR, N0-N3 for name-table-bank, per SPEC_FULL.md §3.
type BankRegisterID uint8

const (
	P0 BankRegisterID = iota
	P1
	P2
	P3
	P4
	P5
	P6
	P7
	P8
	P9
	P10
	P11
	P12
	P13
	P14
	P15
	C0
	C1
	C2
	C3
	C4
	C5
	C6
	C7
	C8
	C9
	C10
	C11
	C12
	C13
	C14
	C15
	N0
	N1
	N2
	N3
	bankRegisterCount
)

// MetaRegisterID names one of the indirection registers (M0..Mn) that point
// at a BankRegisterID, used by MMC2/MMC4-style auto-switch mappers.
type MetaRegisterID uint8

const (
	M0 MetaRegisterID = iota
	M1
	metaRegisterCount
)

// ReadWriteStatus is the value a read/write-status register can hold.
type ReadWriteStatus int

const (
	Disabled ReadWriteStatus = iota
	ReadOnly
	ReadOnlyZeros
	ReadWrite
)

// ReadWriteStatusRegisterID names a read- or write-status register slot.
type ReadWriteStatusRegisterID uint8

const (
	S0 ReadWriteStatusRegisterID = iota
	S1
	S2
	S3
	S4
	S5
	readWriteStatusRegisterCount
)

// ChrSourceRegisterID names a ROM/RAM-source register slot (CS0..CS5).
type ChrSourceRegisterID uint8

const (
	CS0 ChrSourceRegisterID = iota
	CS1
	CS2
	CS3
	CS4
	CS5
	chrSourceRegisterCount
)

// ChrSource is the value a ChrSourceRegisterID can hold.
type ChrSource int

const (
	SourceRom ChrSource = iota
	SourceRam
)

// BankRegisters is the mutable bank-register file shared by every mapper:
// bank-number registers, meta registers, read/write-status registers, and
// ROM/RAM-source registers, per SPEC_FULL.md §3.
type BankRegisters struct {
	bankNumbers  [bankRegisterCount]uint16
	metaTargets  [metaRegisterCount]BankRegisterID
	readStatus   [readWriteStatusRegisterCount]ReadWriteStatus
	writeStatus  [readWriteStatusRegisterCount]ReadWriteStatus
	chrSource    [chrSourceRegisterCount]ChrSource
}

// NewBankRegisters returns a zeroed register file: all bank numbers 0, every
// meta register pointing at P0, every status register ReadWrite, every
// CHR-source register defaulting to ROM.
func NewBankRegisters() *BankRegisters {
	r := &BankRegisters{}
	for i := range r.metaTargets {
		r.metaTargets[i] = P0
	}
	for i := range r.readStatus {
		r.readStatus[i] = ReadWrite
	}
	for i := range r.writeStatus {
		r.writeStatus[i] = ReadWrite
	}
	return r
}

func (r *BankRegisters) Get(id BankRegisterID) uint16 {
	return r.bankNumbers[id]
}

func (r *BankRegisters) Set(id BankRegisterID, value uint16) {
	r.bankNumbers[id] = value
}

// SetBits writes only the bits selected by mask into register id, leaving
// the rest of the current value untouched. Used by mappers that build a
// bank number up nibble-by-nibble (VRC2/VRC4's CHR registers).
func (r *BankRegisters) SetBits(id BankRegisterID, bits, mask uint16) {
	r.bankNumbers[id] = (r.bankNumbers[id] &^ mask) | (bits & mask)
}

// Update replaces register id's value with f(currentValue).
func (r *BankRegisters) Update(id BankRegisterID, f func(uint16) uint16) {
	r.bankNumbers[id] = f(r.bankNumbers[id])
}

// Resolve follows an Addressing through any meta-register indirection and
// returns the raw value of the bank-number register it lands on. Fixed
// addressing has no backing register and returns ok=false.
func (r *BankRegisters) Resolve(a Addressing) (value uint16, ok bool) {
	switch a.Kind {
	case AddressingSwitchable:
		return r.Get(a.BankRegister), true
	case AddressingMetaSwitchable:
		target := r.metaTargets[a.MetaRegister]
		return r.Get(target), true
	default:
		return 0, false
	}
}

func (r *BankRegisters) SetMetaTarget(meta MetaRegisterID, target BankRegisterID) {
	r.metaTargets[meta] = target
}

func (r *BankRegisters) MetaTarget(meta MetaRegisterID) BankRegisterID {
	return r.metaTargets[meta]
}

func (r *BankRegisters) ReadStatus(id ReadWriteStatusRegisterID) ReadWriteStatus {
	return r.readStatus[id]
}

func (r *BankRegisters) SetReadStatus(id ReadWriteStatusRegisterID, status ReadWriteStatus) {
	r.readStatus[id] = status
}

func (r *BankRegisters) WriteStatus(id ReadWriteStatusRegisterID) ReadWriteStatus {
	return r.writeStatus[id]
}

func (r *BankRegisters) SetWriteStatus(id ReadWriteStatusRegisterID, status ReadWriteStatus) {
	r.writeStatus[id] = status
}

func (r *BankRegisters) ChrSource(id ChrSourceRegisterID) ChrSource {
	return r.chrSource[id]
}

func (r *BankRegisters) SetChrSource(id ChrSourceRegisterID, source ChrSource) {
	r.chrSource[id] = source
}
