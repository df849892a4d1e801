package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestConfirmCleanup_SweepRejectsIdle(t *testing.T) {
	reg := confirm.NewRegistry(time.Minute)
	p := reg.For("idle").Show(confirm.Request{Message: "delete?"})
	reg.For("busy")

	w := NewConfirmCleanup(reg, zap.NewNop(), time.Hour)
	w.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	w.sweep()

	if n := reg.Len(); n != 0 {
		t.Errorf("Len() = %d after sweep, want 0", n)
	}
	if _, err := p.Wait(context.Background()); !errors.Is(err, confirm.ErrClosed) {
		t.Errorf("Wait() err = %v, want ErrClosed", err)
	}
}

func TestConfirmCleanup_KeepsActive(t *testing.T) {
	reg := confirm.NewRegistry(time.Hour)
	reg.For("a")

	w := NewConfirmCleanup(reg, zap.NewNop(), time.Hour)
	w.sweep()
	if n := reg.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestConfirmCleanup_StartStop(t *testing.T) {
	reg := confirm.NewRegistry(time.Nanosecond)
	reg.For("a")

	w := NewConfirmCleanup(reg, zap.NewNop(), time.Millisecond)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for reg.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if n := reg.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0 after the worker ran", n)
	}
}
