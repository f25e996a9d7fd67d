package chord

// State is the chord state of one editor instance.
type State uint8

const (
	// Idle means no chord is pending.
	Idle State = iota
	// AwaitQ means ^Q was pressed and its second key is awaited.
	AwaitQ
	// AwaitK means ^K was pressed and its second key is awaited.
	AwaitK
)

// String returns the indicator shown for the state: "^Q", "^K" or "".
func (s State) String() string {
	switch s {
	case AwaitQ:
		return "^Q"
	case AwaitK:
		return "^K"
	default:
		return ""
	}
}

// Pending reports whether a second key is awaited.
func (s State) Pending() bool {
	return s == AwaitQ || s == AwaitK
}
