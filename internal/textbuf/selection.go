package textbuf

// Selection is a range over logical positions. An inactive selection is
// empty whatever its stored bounds.
type Selection struct {
	start    int
	end      int
	selected bool
}

func (s *Selection) Set(start, end int) {
	if start > end {
		start, end = end, start
	}
	s.start = start
	s.end = end
	s.selected = start != end
}

// Position returns the bounds and whether the selection is active.
func (s Selection) Position() (start, end int, ok bool) {
	if !s.selected {
		return 0, 0, false
	}
	return s.start, s.end, true
}

func (s Selection) Selected() bool {
	return s.selected
}

func (s Selection) Start() int {
	return s.start
}

func (s Selection) End() int {
	return s.end
}

// Includes reports whether the character at pos is inside the selection.
func (s Selection) Includes(pos int) bool {
	return s.selected && s.start <= pos && pos < s.end
}

// update moves the selection across an edit at pos.
func (s *Selection) update(pos, nDeleted, nInserted int) {
	if !s.selected || pos > s.end {
		return
	}
	delEnd := pos + nDeleted
	switch {
	case delEnd <= s.start:
		// entirely after the edit
		s.start += nInserted - nDeleted
		s.end += nInserted - nDeleted
	case pos <= s.start && delEnd >= s.end:
		// swallowed by the deletion
		s.start = pos
		s.end = pos
		s.selected = false
	case pos <= s.start && delEnd < s.end:
		// deletion cuts the front of the selection
		s.start = pos
		s.end = nInserted + s.end - nDeleted
	case delEnd < s.end:
		// edit inside the selection
		s.end += nInserted - nDeleted
	default:
		// deletion cuts the tail of the selection
		s.end = pos
	}
}

// selectionKind picks one of the three buffer selections.
type selectionKind int

const (
	primarySel selectionKind = iota
	secondarySel
	highlightSel
)

func (b *Buffer) sel(k selectionKind) *Selection {
	switch k {
	case secondarySel:
		return &b.secondary
	case highlightSel:
		return &b.highlight
	default:
		return &b.primary
	}
}

func (b *Buffer) setSelection(k selectionKind, start, end int) {
	s := b.sel(k)
	old := *s
	start = b.Align(clampInt(start, 0, b.length))
	end = b.Align(clampInt(end, 0, b.length))
	s.Set(start, end)
	b.redisplaySelection(old, *s)
}

func (b *Buffer) unsetSelection(k selectionKind) {
	s := b.sel(k)
	old := *s
	s.selected = false
	b.redisplaySelection(old, *s)
}

func (b *Buffer) selectionText(k selectionKind) string {
	start, end, ok := b.sel(k).Position()
	if !ok {
		return ""
	}
	return b.TextRange(start, end)
}

func (b *Buffer) removeSelection(k selectionKind) {
	start, end, ok := b.sel(k).Position()
	if !ok {
		return
	}
	b.Remove(start, end)
}

func (b *Buffer) replaceSelection(k selectionKind, text string) {
	s := b.sel(k)
	start, end, ok := s.Position()
	if !ok {
		return
	}
	old := *s
	// the replaced range is no longer selected
	s.selected = false
	b.Replace(start, end, text)
	b.redisplaySelection(old, *s)
}

// redisplaySelection sends restyle notifications for only the part of the
// buffer whose selection state changed.
func (b *Buffer) redisplaySelection(old, cur Selection) {
	oldStart, oldEnd := old.start, old.end
	curStart, curEnd := cur.start, cur.end
	if !old.selected {
		oldStart, oldEnd = 0, 0
	}
	if !cur.selected {
		curStart, curEnd = 0, 0
	}

	if !old.selected && !cur.selected {
		return
	}
	if !old.selected {
		b.callRestyle(curStart, curEnd)
		return
	}
	if !cur.selected {
		b.callRestyle(oldStart, oldEnd)
		return
	}

	if oldEnd < curStart || curEnd < oldStart {
		b.callRestyle(oldStart, oldEnd)
		b.callRestyle(curStart, curEnd)
		return
	}

	if oldStart != curStart {
		b.callRestyle(min(oldStart, curStart), max(oldStart, curStart))
	}
	if oldEnd != curEnd {
		b.callRestyle(min(oldEnd, curEnd), max(oldEnd, curEnd))
	}
}

func (b *Buffer) callRestyle(start, end int) {
	if end <= start {
		return
	}
	b.callModify(Modification{Pos: start, Restyled: end - start})
}

func (b *Buffer) Select(start, end int) {
	b.setSelection(primarySel, start, end)
}

func (b *Buffer) Unselect() {
	b.unsetSelection(primarySel)
}

func (b *Buffer) Selected() bool {
	return b.primary.selected
}

// Selection returns a copy of the primary selection.
func (b *Buffer) Selection() Selection {
	return b.primary
}

func (b *Buffer) SelectionPosition() (int, int, bool) {
	return b.primary.Position()
}

func (b *Buffer) SelectionText() string {
	return b.selectionText(primarySel)
}

func (b *Buffer) RemoveSelection() {
	b.removeSelection(primarySel)
}

func (b *Buffer) ReplaceSelection(text string) {
	b.replaceSelection(primarySel, text)
}

func (b *Buffer) SecondarySelect(start, end int) {
	b.setSelection(secondarySel, start, end)
}

func (b *Buffer) SecondaryUnselect() {
	b.unsetSelection(secondarySel)
}

func (b *Buffer) SecondarySelected() bool {
	return b.secondary.selected
}

func (b *Buffer) SecondarySelection() Selection {
	return b.secondary
}

func (b *Buffer) SecondarySelectionPosition() (int, int, bool) {
	return b.secondary.Position()
}

func (b *Buffer) SecondarySelectionText() string {
	return b.selectionText(secondarySel)
}

func (b *Buffer) RemoveSecondarySelection() {
	b.removeSelection(secondarySel)
}

func (b *Buffer) ReplaceSecondarySelection(text string) {
	b.replaceSelection(secondarySel, text)
}

func (b *Buffer) Highlight(start, end int) {
	b.setSelection(highlightSel, start, end)
}

func (b *Buffer) Unhighlight() {
	b.unsetSelection(highlightSel)
}

func (b *Buffer) Highlighted() bool {
	return b.highlight.selected
}

func (b *Buffer) HighlightSelection() Selection {
	return b.highlight
}

func (b *Buffer) HighlightPosition() (int, int, bool) {
	return b.highlight.Position()
}

func (b *Buffer) HighlightText() string {
	return b.selectionText(highlightSel)
}
