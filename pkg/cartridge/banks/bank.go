package banks

// BankKind identifies what kind of storage a Window's Bank descriptor
// resolves into, per SPEC_FULL.md §3.
type BankKind int

const (
	Empty BankKind = iota
	Absent
	Rom
	WorkRam
	SaveRam
	RomOrRam
	MirrorOf
)

// AddressingKind selects how a Bank's index is derived.
type AddressingKind int

const (
	// AddressingFixed ties the window to a constant bank index (negative
	// counts from the end of the ROM/RAM pool).
	AddressingFixed AddressingKind = iota
	// AddressingSwitchable reads the bank index from a BankRegisterID.
	AddressingSwitchable
	// AddressingMetaSwitchable follows a MetaRegisterID to a BankRegisterID
	// before reading the index (MMC2/MMC4-style auto-switch).
	AddressingMetaSwitchable
	// AddressingAbsent marks a window with no addressable storage at all.
	AddressingAbsent
)

// Addressing describes how a Bank's concrete index is obtained.
type Addressing struct {
	Kind          AddressingKind
	FixedNumber   int16
	BankRegister  BankRegisterID
	MetaRegister  MetaRegisterID
}

// Fixed builds a fixed-bank-number Addressing. Negative numbers count from
// the end of the ROM/RAM pool (−1 is the last bank).
func Fixed(number int16) Addressing {
	return Addressing{Kind: AddressingFixed, FixedNumber: number}
}

// Switchable builds an Addressing driven directly by a bank-number register.
func Switchable(id BankRegisterID) Addressing {
	return Addressing{Kind: AddressingSwitchable, BankRegister: id}
}

// MetaSwitchable builds an Addressing driven by a meta register, which in
// turn selects which bank-number register to read.
func MetaSwitchable(id MetaRegisterID) Addressing {
	return Addressing{Kind: AddressingMetaSwitchable, MetaRegister: id}
}

// NoAddressing marks a window with no bank index at all (Empty/Absent banks).
func NoAddressing() Addressing {
	return Addressing{Kind: AddressingAbsent}
}

// Bank is a window's storage descriptor: what kind of memory backs it, and
// (for storage kinds) how its bank index is derived.
type Bank struct {
	Kind       BankKind
	Addressing Addressing
	MirrorAddr uint16 // only meaningful when Kind == MirrorOf

	ReadStatusRegister  ReadWriteStatusRegisterID
	WriteStatusRegister ReadWriteStatusRegisterID
	ChrSourceRegister   ChrSourceRegisterID
	HasReadStatus       bool
	HasWriteStatus      bool
	HasChrSource        bool
}

// WithReadStatus attaches a read-status register to this bank descriptor.
func (b Bank) WithReadStatus(id ReadWriteStatusRegisterID) Bank {
	b.ReadStatusRegister = id
	b.HasReadStatus = true
	return b
}

// WithWriteStatus attaches a write-status register to this bank descriptor.
func (b Bank) WithWriteStatus(id ReadWriteStatusRegisterID) Bank {
	b.WriteStatusRegister = id
	b.HasWriteStatus = true
	return b
}

// WithChrSource attaches a ROM/RAM-source register, letting the window
// dynamically pick between ROM and RAM pools (Kind must be RomOrRam).
func (b Bank) WithChrSource(id ChrSourceRegisterID) Bank {
	b.ChrSourceRegister = id
	b.HasChrSource = true
	return b
}

// RomBank builds a Rom-kind Bank with the given Addressing.
func RomBank(a Addressing) Bank { return Bank{Kind: Rom, Addressing: a} }

// WorkRamBank builds a WorkRam-kind Bank with the given Addressing.
func WorkRamBank(a Addressing) Bank { return Bank{Kind: WorkRam, Addressing: a} }

// SaveRamBank builds a SaveRam-kind Bank with the given Addressing.
func SaveRamBank(a Addressing) Bank { return Bank{Kind: SaveRam, Addressing: a} }

// RomOrRamBank builds a RomOrRam-kind Bank with the given Addressing.
func RomOrRamBank(a Addressing) Bank { return Bank{Kind: RomOrRam, Addressing: a} }

// EmptyBank builds an Empty-kind Bank (reads as open bus, writes discarded).
func EmptyBank() Bank { return Bank{Kind: Empty, Addressing: NoAddressing()} }

// AbsentBank builds an Absent-kind Bank (no chip installed at all).
func AbsentBank() Bank { return Bank{Kind: Absent, Addressing: NoAddressing()} }

// MirrorBank builds a Bank that re-reads another CPU address verbatim.
func MirrorBank(addr uint16) Bank { return Bank{Kind: MirrorOf, MirrorAddr: addr} }
