package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wledit/internal/input/key"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(20, 5)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalSetCell(t *testing.T) {
	term, sim := newSimTerminal(t)

	term.SetCell(1, 2, 'z', StyleBlock)
	term.Show()

	cells, w, _ := sim.GetContents()
	c := cells[2*w+1]
	if len(c.Runes) == 0 || c.Runes[0] != 'z' {
		t.Errorf("cell runes = %q, want z", c.Runes)
	}
}

func TestTerminalPollKey(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyCtrlK, 0, tcell.ModCtrl)

	for {
		ev := term.PollEvent()
		if ev.Type == EventResize {
			continue
		}
		if ev.Type != EventKey {
			t.Fatalf("event type = %v, want EventKey", ev.Type)
		}
		if !ev.Key.Equals(key.Ctrl('k')) {
			t.Errorf("key = %v, want ^K", ev.Key)
		}
		return
	}
}

func TestTerminalWake(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.Wake()

	for {
		ev := term.PollEvent()
		if ev.Type == EventResize {
			continue
		}
		if ev.Type != EventWake {
			t.Errorf("event type = %v, want EventWake", ev.Type)
		}
		return
	}
}

func TestNullBackend(t *testing.T) {
	b := NewNullBackend(10, 3)

	b.SetCell(0, 0, 'h', StyleDefault)
	b.SetCell(1, 0, 'i', StyleBlock)
	b.SetCell(50, 50, 'x', StyleDefault)

	if got := b.Row(0); got != "hi" {
		t.Errorf("Row(0) = %q, want hi", got)
	}
	if got := b.StyleAt(1, 0); got != StyleBlock {
		t.Errorf("StyleAt(1,0) = %v, want StyleBlock", got)
	}

	b.PostKey(key.Ctrl('q'))
	if ev := b.PollEvent(); ev.Type != EventKey || !ev.Key.Equals(key.Ctrl('q')) {
		t.Errorf("PollEvent = %+v, want ^Q", ev)
	}

	b.Shutdown()
	if ev := b.PollEvent(); ev.Type != EventNone {
		t.Errorf("PollEvent after Shutdown = %+v, want EventNone", ev)
	}
	b.Shutdown()
}
