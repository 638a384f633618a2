package resolver

import "testing"

func TestMemoryGuardDisabled(t *testing.T) {
	guard := &memoryGuard{}

	percent, level := guard.check()
	if percent != 0 {
		t.Errorf("disabled guard percent = %v, want 0", percent)
	}
	if level != pressureNormal {
		t.Errorf("disabled guard level = %v, want normal", level)
	}
}

func TestMemoryGuardLevels(t *testing.T) {
	// A tiny limit makes any live heap read as critical pressure.
	guard := &memoryGuard{limitBytes: 1}
	percent, level := guard.check()
	if level != pressureCritical {
		t.Errorf("level = %v, want critical at %v%% usage", level, percent)
	}

	// A huge limit reads as normal.
	guard = &memoryGuard{limitBytes: 1 << 50}
	if _, level := guard.check(); level != pressureNormal {
		t.Errorf("level = %v, want normal under a huge limit", level)
	}
}

func TestNewMemoryGuardZeroDisables(t *testing.T) {
	guard := newMemoryGuard(0)
	if guard.limitBytes != 0 {
		t.Errorf("limitBytes = %d, want 0 for disabled guard", guard.limitBytes)
	}
}
