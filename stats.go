package deepdiff

// Stats aggregates a diff's change counts by kind
type Stats struct {
	Added      int `json:"added"`
	Deleted    int `json:"deleted"`
	Edited     int `json:"edited"`
	ArraySlots int `json:"arraySlots"`
}

// Total is the number of leaf records: additions, deletions and edits.
// Array-slot wrappers are bookkeeping, not edits, so they don't count.
func (s *Stats) Total() int {
	return s.Added + s.Deleted + s.Edited
}

// Stats tallies the sequence by kind. An array-slot record counts once as a
// slot and once as whatever leaf record it carries.
func (cs Changes) Stats() *Stats {
	s := &Stats{}
	for _, c := range cs {
		tally(c, s)
	}
	return s
}

func tally(c *Change, s *Stats) {
	switch c.Kind {
	case ChangeNew:
		s.Added++
	case ChangeDeleted:
		s.Deleted++
	case ChangeEdited:
		s.Edited++
	case ChangeArray:
		s.ArraySlots++
		if c.Item != nil {
			tally(c.Item, s)
		}
	}
}
