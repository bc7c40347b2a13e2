package timeline

import (
	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/store"
	"timeclerk-cli/internal/syncapi"
)

// Reconciler folds successful remote responses into the store and the live
// row collections without a full reload. It runs on the event loop only, and
// every apply is keyed by remote/local id, so late completions land on the
// right entity no matter what is selected by then. Failed requests never
// reach it: no entity is dropped or changed on failure.
type Reconciler struct {
	Store *store.Store
	Rows  *RowSet
	Proj  rows.Projector
}

// ApplyCreate lands a created entry: the store assigns its local identity,
// the exporting session (if any) gets its exported reference, and exactly one
// new row is appended to the entry's day. The day collection is created when
// the entry lands on a day without one.
func (r Reconciler) ApplyCreate(created *model.TimeEntry, exportedFrom model.LocalID) *model.TimeEntry {
	e := r.Store.UpsertEntry(created)
	if exportedFrom != 0 && e.RemoteID != nil {
		r.Store.SetSessionExported(exportedFrom, *e.RemoteID)
	}
	row := r.Proj.Entry(e)
	dr := r.Rows.Ensure(e.Day)
	if !dr.Update(row) {
		dr.Append(row)
	}
	return e
}

// ApplyUpdate lands an in-place update (export-with-id, move): the matching
// local entity's span, description and project are overwritten, its local
// identity and day preserved, and its row replaced in place. An update for an
// entry that is no longer present is a no-op.
func (r Reconciler) ApplyUpdate(updated *model.TimeEntry) (*model.TimeEntry, bool) {
	if updated.RemoteID == nil {
		return nil, false
	}
	cur, ok := r.Store.EntryByRemote(*updated.RemoteID)
	if !ok {
		return nil, false
	}
	r.Store.UpsertEntry(updated)
	if dr, found := r.Rows.Day(cur.Day); found {
		dr.Update(r.Proj.Entry(cur))
	}
	return cur, true
}

// ApplySplit lands the response pair: the first representation updates the
// original entry in place (its end becomes the split point), the second is a
// creation whose day follows the split point.
func (r Reconciler) ApplySplit(res *syncapi.SplitResult) {
	r.ApplyUpdate(res.First)
	r.ApplyCreate(res.Second, 0)
}

// ApplyDelete removes the entry and its row after a confirmed delete.
func (r Reconciler) ApplyDelete(id model.LocalID) bool {
	e, ok := r.Store.EntryByLocal(id)
	if !ok {
		return false
	}
	if dr, found := r.Rows.Day(e.Day); found {
		dr.Remove(id)
	}
	return r.Store.RemoveEntry(id)
}
