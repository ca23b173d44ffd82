package textbuf

// undoRecord is the single undoable edit: inserted bytes end at at, and
// deleted holds the bytes that were at at-inserted before the edit.
type undoRecord struct {
	at       int
	inserted int
	deleted  []byte
}

func (u *undoRecord) empty() bool {
	return u.inserted == 0 && len(u.deleted) == 0
}

// EditTracker remembers which of several buffers was edited last. Buffers
// only report to a tracker they were given with SetEditTracker.
type EditTracker struct {
	last *Buffer
}

func NewEditTracker() *EditTracker {
	return &EditTracker{}
}

// LastEdited returns the most recently changed buffer, or nil.
func (t *EditTracker) LastEdited() *Buffer {
	return t.last
}

func (b *Buffer) SetEditTracker(t *EditTracker) {
	b.tracker = t
}

// CanUndo enables or disables undo. Disabling drops the current record.
func (b *Buffer) CanUndo(enabled bool) {
	b.canUndo = enabled
	if !enabled {
		b.undo = undoRecord{}
	}
}

func (b *Buffer) CanUndoEnabled() bool {
	return b.canUndo
}

// Undo reverts the recorded edit and records its inverse, so a second Undo
// re-applies it. It returns the cursor position after the change.
func (b *Buffer) Undo() (int, bool) {
	if !b.canUndo || b.undo.empty() {
		return b.cursorPosHint, false
	}
	rec := b.undo
	deleted := string(rec.deleted)
	start := rec.at - rec.inserted

	switch {
	case rec.inserted > 0 && deleted != "":
		b.Replace(start, rec.at, deleted)
	case rec.inserted > 0:
		b.Remove(start, rec.at)
	default:
		b.Insert(rec.at, deleted)
		// a re-insert is a plain insert, not a replace of what was cut
		b.undo.deleted = nil
	}
	return b.cursorPosHint, true
}

func (b *Buffer) recordInsert(pos, n int) {
	if !b.canUndo {
		return
	}
	u := &b.undo
	switch {
	case u.at == pos && u.inserted > 0:
		u.inserted += n
	case u.at == pos && len(u.deleted) > 0:
		// typing over a cut: undo restores the cut text
		u.inserted = n
	default:
		u.inserted = n
		u.deleted = nil
	}
	u.at = pos + n
}

func (b *Buffer) recordRemove(start, end int) {
	if !b.canUndo {
		return
	}
	removed := b.rangeBytes(start, end)
	u := &b.undo
	cutRun := u.inserted == 0 && len(u.deleted) > 0
	switch {
	case cutRun && u.at == end:
		// backspace
		u.deleted = append(removed, u.deleted...)
	case cutRun && u.at == start:
		// forward delete
		u.deleted = append(u.deleted, removed...)
	default:
		u.deleted = removed
	}
	u.inserted = 0
	u.at = start
}
