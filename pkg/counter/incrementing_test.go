package counter

import "testing"

func TestIncrementingCounter_EndingOnTargetTriggersOnce(t *testing.T) {
	c, err := NewIncrementingCounterBuilder().
		AutoTriggeredBy(EndingOnTarget).
		TriggerTarget(3).
		WhenTargetReached(Stay).
		WhenDisabledPrevent(PreventTriggering).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var triggers int
	for i := 0; i < 10; i++ {
		if c.Tick() {
			triggers++
		}
	}
	if triggers != 1 {
		t.Fatalf("WhenTargetReached=Stay should trigger exactly once, got %d", triggers)
	}
	if c.Count() != 3 {
		t.Fatalf("expected count to stay at target 3, got %d", c.Count())
	}
}

func TestIncrementingCounter_ContinuePastTargetRetriggersOnWrap(t *testing.T) {
	c, err := NewIncrementingCounterBuilder().
		AutoTriggeredBy(EndingOnTarget).
		TriggerTarget(0xFFFF).
		WhenTargetReached(Continue).
		WhenDisabledPrevent(PreventTriggering).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c.SetCountHighByte(0xFF)
	c.SetCountLowByte(0xFD)

	if c.Tick() { // 0xFFFD -> 0xFFFE
		t.Fatal("should not trigger before reaching target")
	}
	if !c.Tick() { // 0xFFFE -> 0xFFFF, hits target
		t.Fatal("should trigger the tick the count reaches the target")
	}
	if c.Tick() { // 0xFFFF -> wraps to 0x0000, Continue keeps incrementing past target
		t.Fatal("should not re-trigger on the wrap-past tick, since the new count no longer equals the target")
	}
	if c.Count() != 0 {
		t.Fatalf("expected wraparound to 0, got %d", c.Count())
	}
}

func TestIncrementingCounter_NeverDisabledPanicsOnDisable(t *testing.T) {
	c, err := NewIncrementingCounterBuilder().
		AutoTriggeredBy(AlreadyOnTarget).
		TriggerTarget(1).
		WhenTargetReached(Clear).
		NeverDisabled().
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected Disable to panic for a NeverDisabled counter")
		}
	}()
	c.Disable()
}
