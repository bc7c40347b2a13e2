package tui

import (
	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/syncapi"
)

// Remote-call completions. Each message carries the ids needed to reconcile
// by identity rather than "whatever is selected now", so out-of-order
// completions still land on the right entity.

type loadDoneMsg struct {
	res *syncapi.LoadResult
	err error
}

type exportDoneMsg struct {
	// sessionLocal is the exporting session, zero for entry re-exports,
	// moves and updates.
	sessionLocal model.LocalID
	update       bool
	entry        *model.TimeEntry
	err          error
}

type splitDoneMsg struct {
	res *syncapi.SplitResult
	err error
}

type moveDoneMsg struct {
	entry *model.TimeEntry
	err   error
}

type deleteDoneMsg struct {
	local model.LocalID
	err   error
}

type flashDoneMsg struct{ seq int }
