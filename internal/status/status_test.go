package status

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLineShowAndExpire(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLine(time.Second)
	l.now = func() time.Time { return now }

	l.Show("saved", 0)
	msg, ok := l.Current()
	if !ok || msg.Text != "saved" || msg.Level != LevelInfo {
		t.Fatalf("Current() = %+v, %v", msg, ok)
	}
	if want := now.Add(time.Second); !msg.Expires.Equal(want) {
		t.Errorf("Expires = %v, want %v", msg.Expires, want)
	}

	now = now.Add(time.Second)
	if _, ok := l.Current(); ok {
		t.Error("message should have expired")
	}
}

func TestLineReplaces(t *testing.T) {
	l := NewLine(time.Minute)
	l.Show("first", 0)
	l.Warn("second")

	msg, ok := l.Current()
	if !ok || msg.Text != "second" || msg.Level != LevelWarn {
		t.Errorf("Current() = %+v, %v", msg, ok)
	}

	l.Clear()
	if _, ok := l.Current(); ok {
		t.Error("Clear should remove the message")
	}
}

func TestLineExplicitDuration(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLine(time.Minute)
	l.now = func() time.Time { return now }

	l.Show("brief", 10*time.Millisecond)
	msg, _ := l.Current()
	if want := now.Add(10 * time.Millisecond); !msg.Expires.Equal(want) {
		t.Errorf("Expires = %v, want %v", msg.Expires, want)
	}
}

func TestLineOnChange(t *testing.T) {
	l := NewLine(time.Minute)
	var calls atomic.Int32
	done := make(chan struct{}, 1)
	l.OnChange(func() {
		if calls.Add(1) == 2 {
			done <- struct{}{}
		}
	})

	l.Show("x", 10*time.Millisecond)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("OnChange called %d times, want a call on post and on expiry", calls.Load())
	}
}

func TestLineDuration(t *testing.T) {
	l := NewLine(0)
	if got := l.Duration(); got != DefaultDuration {
		t.Errorf("Duration() = %v, want %v", got, DefaultDuration)
	}
	l.SetDuration(time.Second)
	if got := l.Duration(); got != time.Second {
		t.Errorf("Duration() = %v", got)
	}
}

func TestLevelString(t *testing.T) {
	tests := map[Level]string{LevelInfo: "info", LevelWarn: "warn", LevelError: "error"}
	for l, want := range tests {
		if got := l.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", l, got, want)
		}
	}
}

var _ Surface = (*Line)(nil)
