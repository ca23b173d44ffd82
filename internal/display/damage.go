package display

// Damage is the pending redraw level. Levels combine by maximum.
type Damage int

const (
	DamageNone Damage = iota
	// DamageExpose repaints damaged character ranges and the cursor.
	DamageExpose
	// DamageScroll additionally moves rows and repaints the margin.
	DamageScroll
	// DamageFull repaints everything.
	DamageFull
)

func (d Damage) String() string {
	switch d {
	case DamageExpose:
		return "expose"
	case DamageScroll:
		return "scroll"
	case DamageFull:
		return "full"
	default:
		return "none"
	}
}

type posRange struct {
	start int
	end   int
}

// rowShift moves screen rows [from, to) by `by` rows.
type rowShift struct {
	from int
	to   int
	by   int
}

type damageState struct {
	level   Damage
	ranges  [2]posRange
	nRanges int
	rows    []bool
	allRows bool
	shift   *rowShift
}

func (s *damageState) raise(level Damage) {
	if level > s.level {
		s.level = level
	}
}

// addRange keeps at most two ranges, merging into the first when they
// overlap and into the second otherwise.
func (s *damageState) addRange(start, end int) {
	if end < start {
		start, end = end, start
	}
	switch {
	case s.nRanges == 0:
		s.ranges[0] = posRange{start, end}
		s.nRanges = 1
	case overlaps(s.ranges[0], start, end):
		s.ranges[0].start = min(s.ranges[0].start, start)
		s.ranges[0].end = max(s.ranges[0].end, end)
	case s.nRanges == 1:
		s.ranges[1] = posRange{start, end}
		s.nRanges = 2
	default:
		s.ranges[1].start = min(s.ranges[1].start, start)
		s.ranges[1].end = max(s.ranges[1].end, end)
	}
}

func overlaps(r posRange, start, end int) bool {
	return start >= r.start && start <= r.end ||
		end >= r.start && end <= r.end ||
		start <= r.start && end >= r.end
}

func (s *damageState) markRows(from, to int) {
	if s.allRows {
		return
	}
	from = max(from, 0)
	to = min(to, len(s.rows))
	for i := from; i < to; i++ {
		s.rows[i] = true
	}
}

func (s *damageState) anyRows() bool {
	if s.allRows {
		return true
	}
	for _, dirty := range s.rows {
		if dirty {
			return true
		}
	}
	return false
}

// addShift records a row move. Only one move can be replayed per frame,
// and dirty rows and ranges are in post-move coordinates, so a second move
// or earlier damage collapses into repainting every row.
func (s *damageState) addShift(sh rowShift) {
	if s.allRows {
		return
	}
	if s.shift != nil || s.nRanges > 0 || s.anyRows() {
		s.shift = nil
		s.allRows = true
		return
	}
	s.shift = &sh
}

func (s *damageState) reset(nRows int) {
	s.level = DamageNone
	s.nRanges = 0
	s.allRows = false
	s.shift = nil
	if cap(s.rows) >= nRows {
		s.rows = s.rows[:nRows]
		for i := range s.rows {
			s.rows[i] = false
		}
	} else {
		s.rows = make([]bool, nRows)
	}
}
