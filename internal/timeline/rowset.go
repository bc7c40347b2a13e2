package timeline

import (
	"sort"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/store"
)

// DayRows is the ordered, mutable row collection handed to one per-day widget
// instance. Rows are replaced wholesale on update, so a redraw never observes
// a half-applied row.
type DayRows struct {
	day  model.Day
	rows []rows.Row
}

func (d *DayRows) Day() model.Day { return d.day }

// Rows exposes the live collection. Callers render from it; they never
// mutate it directly.
func (d *DayRows) Rows() []rows.Row { return d.rows }

func (d *DayRows) Len() int { return len(d.rows) }

func (d *DayRows) ByID(id model.LocalID) (rows.Row, bool) {
	for _, r := range d.rows {
		if r.ID == id {
			return r, true
		}
	}
	return rows.Row{}, false
}

func (d *DayRows) Append(r rows.Row) {
	d.rows = append(d.rows, r)
}

// Update replaces the row with the same identity in a single assignment.
func (d *DayRows) Update(r rows.Row) bool {
	for i := range d.rows {
		if d.rows[i].ID == r.ID {
			d.rows[i] = r
			return true
		}
	}
	return false
}

func (d *DayRows) Remove(id model.LocalID) bool {
	for i := range d.rows {
		if d.rows[i].ID == id {
			d.rows = append(d.rows[:i], d.rows[i+1:]...)
			return true
		}
	}
	return false
}

// RowSet holds one DayRows per calendar day, kept in chronological order.
type RowSet struct {
	days  []*DayRows
	byDay map[model.Day]*DayRows
}

func NewRowSet() *RowSet {
	return &RowSet{byDay: map[model.Day]*DayRows{}}
}

// BuildRows projects the store's current collections into per-day row sets.
// Days come from the session groups; entries and commits join in by day
// equality, each kind in load order.
func BuildRows(st *store.Store, p rows.Projector) *RowSet {
	rs := NewRowSet()
	for _, d := range st.Days() {
		dr := rs.Ensure(d)
		m := st.MembersOf(d)
		for _, sn := range m.Sessions {
			dr.Append(p.Session(sn))
		}
		for _, e := range m.Entries {
			dr.Append(p.Entry(e))
		}
		for _, c := range m.Commits {
			dr.Append(p.Commit(c))
		}
	}
	return rs
}

func (rs *RowSet) Days() []*DayRows { return rs.days }

func (rs *RowSet) Day(d model.Day) (*DayRows, bool) {
	dr, ok := rs.byDay[d]
	return dr, ok
}

// Ensure returns the day's collection, creating an empty one in
// chronological position when the day is new (a split can land its second
// entry on a day that had no session group).
func (rs *RowSet) Ensure(d model.Day) *DayRows {
	if dr, ok := rs.byDay[d]; ok {
		return dr
	}
	dr := &DayRows{day: d}
	rs.byDay[d] = dr
	i := sort.Search(len(rs.days), func(i int) bool { return rs.days[i].day >= d })
	rs.days = append(rs.days, nil)
	copy(rs.days[i+1:], rs.days[i:])
	rs.days[i] = dr
	return dr
}

// Find locates a row and its owning day across all days.
func (rs *RowSet) Find(id model.LocalID) (*DayRows, rows.Row, bool) {
	for _, dr := range rs.days {
		if r, ok := dr.ByID(id); ok {
			return dr, r, true
		}
	}
	return nil, rows.Row{}, false
}
