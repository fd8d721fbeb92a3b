package faketick

import (
	"testing"
	"time"
)

func TestSource_TickFiresActiveSchedules(t *testing.T) {
	source := New()
	count := 0
	source.SchedulePeriodic(func() { count++ }, time.Second)

	source.Tick(3)

	if count != 3 {
		t.Errorf("callback count = %d, want 3", count)
	}
	if got := source.Periods(); len(got) != 1 || got[0] != time.Second {
		t.Errorf("Periods() = %v, want [1s]", got)
	}
}

func TestSource_CancelStopsTicks(t *testing.T) {
	source := New()
	count := 0
	handle := source.SchedulePeriodic(func() { count++ }, time.Second)

	source.Cancel(handle)
	source.Cancel(handle)
	source.Tick(2)

	if count != 0 {
		t.Errorf("callback count after cancel = %d, want 0", count)
	}
	if source.Active() != 0 {
		t.Errorf("Active() = %d, want 0", source.Active())
	}
	if source.Cancelled() != 1 {
		t.Errorf("Cancelled() = %d, want 1", source.Cancelled())
	}
}

func TestSource_CaptureUnknownHandle(t *testing.T) {
	source := New()
	if cb := source.Capture(42); cb != nil {
		t.Error("Capture(unknown) should return nil")
	}
}
