package chord

import "github.com/dshills/wledit/internal/input/key"

// Outcome is the result of one transition.
type Outcome struct {
	// Next is the state after the event.
	Next State
	// Command is the resolved command, or CmdNone.
	Command Command
	// Handled reports whether the event was consumed.
	Handled bool
	// Absorbed is set when a second key matched no table entry.
	Absorbed bool
}

// Step computes the transition for ev in state s. It does not know about
// block mode or the buffer selection; Handler consults its Executor for
// those before calling Step on an Escape.
func Step(s State, ev key.Event, t Tables) Outcome {
	if ev.IsEscape() {
		if s.Pending() {
			return Outcome{Next: Idle, Handled: true}
		}
		return Outcome{Next: Idle}
	}

	if s.Pending() {
		cmd, ok := t.table(s).Lookup(ev.Letter())
		if !ok {
			return Outcome{Next: Idle, Handled: true, Absorbed: true}
		}
		return Outcome{Next: Idle, Command: cmd, Handled: true}
	}

	if !ev.IsCtrlOnly() {
		return Outcome{Next: Idle}
	}
	letter := ev.Letter()
	if letter == 0 {
		return Outcome{Next: Idle}
	}
	cmd, ok := t.Primary.Lookup(letter)
	if !ok {
		return Outcome{Next: Idle}
	}

	switch cmd {
	case CmdLeadQ:
		return Outcome{Next: AwaitQ, Command: cmd, Handled: true}
	case CmdLeadK:
		return Outcome{Next: AwaitK, Command: cmd, Handled: true}
	}
	return Outcome{Next: Idle, Command: cmd, Handled: true}
}
