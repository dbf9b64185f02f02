package banks

// AddressTemplate resolves a window's outer-bank number, inner-bank index,
// and in-window offset into a single byte index, per SPEC_FULL.md §4.3. It is
// a fixed three-segment simplification of the bit-concatenation scheme in
// original_source/src/memory/bit_template.rs: this module's representative
// mapper set never needs more than outer bank / inner bank / base address.
type AddressTemplate struct {
	outerBankWidth   uint8
	innerBankWidth   uint8
	baseAddressWidth uint8
}

// NewAddressTemplate builds a template from the three segment widths, in bits.
func NewAddressTemplate(outerBankWidth, innerBankWidth, baseAddressWidth uint8) AddressTemplate {
	return AddressTemplate{
		outerBankWidth:   outerBankWidth,
		innerBankWidth:   innerBankWidth,
		baseAddressWidth: baseAddressWidth,
	}
}

// Width returns the total number of address bits this template covers.
func (t AddressTemplate) Width() uint8 {
	return t.outerBankWidth + t.innerBankWidth + t.baseAddressWidth
}

// InnerBankCount returns how many distinct inner-bank indices this template's
// inner-bank segment can address.
func (t AddressTemplate) InnerBankCount() uint32 {
	if t.innerBankWidth == 0 {
		return 1
	}
	return 1 << t.innerBankWidth
}

// WindowSize returns the number of bytes one inner bank covers (2^baseAddressWidth).
func (t AddressTemplate) WindowSize() uint32 {
	return 1 << t.baseAddressWidth
}

// OuterBankSize returns the number of bytes one outer bank covers.
func (t AddressTemplate) OuterBankSize() uint32 {
	return t.InnerBankCount() * t.WindowSize()
}

// Resolve combines an outer-bank number, a raw inner-bank index, and an
// in-window offset into an absolute byte index. The inner-bank index is
// masked to InnerBankCount()-1 first, so an out-of-range register value
// can never escape the declared layout (the invariant SPEC_FULL.md §4.3
// calls out explicitly).
func (t AddressTemplate) Resolve(outerBankNumber uint32, innerBankIndex uint16, offsetInWindow uint32) uint32 {
	maskedInner := uint32(innerBankIndex) % t.InnerBankCount()
	return outerBankNumber*t.OuterBankSize() + maskedInner*t.WindowSize() + offsetInWindow
}

// IncreaseSegmentMagnitude widens the inner-bank segment to newMagnitude bits,
// shrinking the base-address segment by the same number of bits so that
// Width() is unchanged. This mirrors increase_segment_magnitude in
// original_source's BitTemplate: enlarging an inner bank window necessarily
// steals bits from the base-address (offset) field.
func (t *AddressTemplate) IncreaseSegmentMagnitude(newInnerBankWidth uint8) {
	if newInnerBankWidth < t.innerBankWidth {
		panic("banks: IncreaseSegmentMagnitude must not shrink the inner-bank segment")
	}
	delta := newInnerBankWidth - t.innerBankWidth
	if delta > t.baseAddressWidth {
		panic("banks: overshift — base-address segment can't shrink below zero bits")
	}
	t.innerBankWidth = newInnerBankWidth
	t.baseAddressWidth -= delta
}
