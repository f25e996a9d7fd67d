package textbuf

// maxUndo bounds the undo stack.
const maxUndo = 200

type editKind uint8

const (
	editInsert editKind = iota
	editType
	editDelete
)

type snapshot struct {
	text   []rune
	cursor int
}

// undoStack keeps whole-document snapshots. Consecutive typed runes
// coalesce into one group.
type undoStack struct {
	undos []snapshot
	redos []snapshot
	last  editKind
	open  bool
	// next is the cursor offset at which a typed rune continues the
	// open group.
	next int
}

func (b *Buffer) snapshot() snapshot {
	t := make([]rune, len(b.text))
	copy(t, b.text)
	return snapshot{text: t, cursor: b.cursor}
}

func (b *Buffer) restore(s snapshot) {
	b.text = s.text
	b.selecting = false
	b.modified = true
	b.setCursor(s.cursor)
}

func (u *undoStack) push(s snapshot, kind editKind) {
	u.redos = u.redos[:0]
	if kind == editType && u.open && u.last == editType && s.cursor == u.next {
		u.next++
		return
	}
	u.undos = append(u.undos, s)
	if len(u.undos) > maxUndo {
		u.undos = u.undos[len(u.undos)-maxUndo:]
	}
	u.last = kind
	u.open = true
	u.next = s.cursor + 1
}

func (u *undoStack) undo(current snapshot) (snapshot, bool) {
	if len(u.undos) == 0 {
		return snapshot{}, false
	}
	s := u.undos[len(u.undos)-1]
	u.undos = u.undos[:len(u.undos)-1]
	u.redos = append(u.redos, current)
	u.open = false
	return s, true
}

func (u *undoStack) redo(current snapshot) (snapshot, bool) {
	if len(u.redos) == 0 {
		return snapshot{}, false
	}
	s := u.redos[len(u.redos)-1]
	u.redos = u.redos[:len(u.redos)-1]
	u.undos = append(u.undos, current)
	u.open = false
	return s, true
}

func (u *undoStack) clear() {
	u.undos = nil
	u.redos = nil
	u.open = false
}
