package counter

import "fmt"

// IncAutoTriggeredBy selects which tick-to-tick transition of an
// IncrementingCounter asserts its IRQ line automatically.
type IncAutoTriggeredBy int

const (
	// AlreadyOnTarget triggers when the count was already at the target before this tick.
	AlreadyOnTarget IncAutoTriggeredBy = iota
	// EndingOnTarget triggers when the count reaches the target as a result of this tick.
	EndingOnTarget
)

// WhenTargetReached controls what happens to the count once it hits the target.
type WhenTargetReached int

const (
	// Stay freezes the count at the target until externally reset.
	Stay WhenTargetReached = iota
	// Clear resets the count to zero once the target is reached.
	Clear
	// Continue lets the count keep incrementing (and wrapping) past the target.
	Continue
)

// IncrementingCounter models the count-up-to-target IRQ counters (e.g. MMC5
// scanline counter): the dual of DecrementingCounter, see SPEC_FULL.md §4.4.
type IncrementingCounter struct {
	autoTriggeredBy     IncAutoTriggeredBy
	triggerTarget       uint16
	whenTargetReached   WhenTargetReached
	whenDisabledPrevent *WhenDisabledPrevent

	tickingEnabled    bool
	triggeringEnabled bool
	count             uint16
}

// Enable turns ticking and triggering on. Panics if this counter was built
// with NeverDisabled, matching the source's "already always enabled" contract.
func (c *IncrementingCounter) Enable() {
	if c.whenDisabledPrevent == nil {
		panic("counter: this counter is configured to never be disabled, so it starts enabled")
	}
	c.triggeringEnabled = true
	c.tickingEnabled = true
}

// Disable suppresses ticking, triggering, or both, per WhenDisabledPrevent.
// Panics if this counter was built with NeverDisabled.
func (c *IncrementingCounter) Disable() {
	if c.whenDisabledPrevent == nil {
		panic("counter: can't disable since this counter is configured to never be disabled")
	}
	switch *c.whenDisabledPrevent {
	case PreventTicking:
		c.tickingEnabled = false
	case PreventTriggering:
		c.triggeringEnabled = false
	case PreventBoth:
		c.tickingEnabled = false
		c.triggeringEnabled = false
	}
}

func (c *IncrementingCounter) CountLowByte() uint8  { return uint8(c.count) }
func (c *IncrementingCounter) CountHighByte() uint8 { return uint8(c.count >> 8) }

func (c *IncrementingCounter) SetCountLowByte(value uint8) {
	c.count = (c.count & 0xFF00) | uint16(value)
}

func (c *IncrementingCounter) SetCountHighByte(value uint8) {
	c.count = (c.count & 0x00FF) | (uint16(value) << 8)
}

// Count returns the current count, for debug tooling and tests.
func (c *IncrementingCounter) Count() uint16 {
	return c.count
}

// Clear resets the count to zero without touching enabled state.
func (c *IncrementingCounter) Clear() {
	c.count = 0
}

// Tick advances the counter by one step and reports whether the IRQ line
// should assert this tick.
func (c *IncrementingCounter) Tick() bool {
	oldCount := c.count
	if c.tickingEnabled {
		targetReached := c.count == c.triggerTarget
		switch {
		case targetReached && c.whenTargetReached == Stay:
			// Stay on the old count.
		case targetReached && c.whenTargetReached == Clear:
			c.count = 0
		default:
			c.count++
		}
	}

	newCount := c.count
	var triggered bool
	switch c.autoTriggeredBy {
	case AlreadyOnTarget:
		triggered = oldCount == c.triggerTarget
	case EndingOnTarget:
		triggered = newCount == c.triggerTarget && oldCount != newCount
	}
	return triggered && c.triggeringEnabled
}

// IncrementingCounterBuilder assembles an IncrementingCounter, validating that
// every required field is set before Build succeeds.
type IncrementingCounterBuilder struct {
	autoTriggeredBy     *IncAutoTriggeredBy
	triggerTarget       *uint16
	whenTargetReached   *WhenTargetReached
	whenDisabledPrevent **WhenDisabledPrevent
}

// NewIncrementingCounterBuilder returns an empty builder; every field must be
// set explicitly before Build.
func NewIncrementingCounterBuilder() *IncrementingCounterBuilder {
	return &IncrementingCounterBuilder{}
}

func (b *IncrementingCounterBuilder) AutoTriggeredBy(v IncAutoTriggeredBy) *IncrementingCounterBuilder {
	b.autoTriggeredBy = &v
	return b
}

func (b *IncrementingCounterBuilder) TriggerTarget(v uint16) *IncrementingCounterBuilder {
	b.triggerTarget = &v
	return b
}

func (b *IncrementingCounterBuilder) WhenTargetReached(v WhenTargetReached) *IncrementingCounterBuilder {
	b.whenTargetReached = &v
	return b
}

func (b *IncrementingCounterBuilder) WhenDisabledPrevent(v WhenDisabledPrevent) *IncrementingCounterBuilder {
	p := &v
	b.whenDisabledPrevent = &p
	return b
}

// NeverDisabled marks this counter as always enabled: Enable/Disable both panic.
func (b *IncrementingCounterBuilder) NeverDisabled() *IncrementingCounterBuilder {
	var nilPrevent *WhenDisabledPrevent
	b.whenDisabledPrevent = &nilPrevent
	return b
}

// Build validates and assembles the IncrementingCounter.
func (b *IncrementingCounterBuilder) Build() (*IncrementingCounter, error) {
	if b.autoTriggeredBy == nil {
		return nil, fmt.Errorf("counter: autoTriggeredBy must be set")
	}
	if b.triggerTarget == nil {
		return nil, fmt.Errorf("counter: triggerTarget must be set")
	}
	if b.whenTargetReached == nil {
		return nil, fmt.Errorf("counter: whenTargetReached must be set")
	}
	if b.whenDisabledPrevent == nil {
		return nil, fmt.Errorf("counter: whenDisabledPrevent must be set; use NeverDisabled() if this counter can't be disabled")
	}

	return &IncrementingCounter{
		autoTriggeredBy:     *b.autoTriggeredBy,
		triggerTarget:       *b.triggerTarget,
		whenTargetReached:   *b.whenTargetReached,
		whenDisabledPrevent: *b.whenDisabledPrevent,
		tickingEnabled:      true,
		triggeringEnabled:   true,
		count:               0,
	}, nil
}
