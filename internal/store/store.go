package store

import (
	"timeclerk-cli/internal/model"
)

// Store is the authoritative local mirror of everything loaded from the
// remote service. It owns local-identity assignment: ids are handed out
// exactly once, in insertion order, and are never reused, even across loads.
//
// All mutation goes through Load, UpsertEntry, SetSessionExported and
// RemoveEntry; nothing else writes to the collections. The store is not
// goroutine-safe: the TUI event loop is the only writer.
type Store struct {
	nextID model.LocalID

	Sessions []*model.Session
	Entries  []*model.TimeEntry
	Commits  []*model.Commit
	Projects []*model.Project
	Issues   []*model.Issue

	sessionByLocal  map[model.LocalID]*model.Session
	sessionByRemote map[int64]*model.Session
	entryByLocal    map[model.LocalID]*model.TimeEntry
	entryByRemote   map[int64]*model.TimeEntry
	commitByLocal   map[model.LocalID]*model.Commit
	projectByRemote map[int64]*model.Project
	issueByKey      map[string]*model.Issue
}

func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.Sessions = nil
	s.Entries = nil
	s.Commits = nil
	s.Projects = nil
	s.Issues = nil
	s.sessionByLocal = map[model.LocalID]*model.Session{}
	s.sessionByRemote = map[int64]*model.Session{}
	s.entryByLocal = map[model.LocalID]*model.TimeEntry{}
	s.entryByRemote = map[int64]*model.TimeEntry{}
	s.commitByLocal = map[model.LocalID]*model.Commit{}
	s.projectByRemote = map[int64]*model.Project{}
	s.issueByKey = map[string]*model.Issue{}
}

func (s *Store) assign() model.LocalID {
	s.nextID++
	return s.nextID
}

// Load replaces all entity collections atomically and assigns a fresh local
// identity to every item, in load order (sessions, then entries, commits,
// projects, issues). The identity counter is NOT reset, so ids from a
// previous load are never reused.
func (s *Store) Load(sessions []*model.Session, entries []*model.TimeEntry, commits []*model.Commit, projects []*model.Project, issues []*model.Issue) {
	s.reset()
	for _, sn := range sessions {
		s.addSession(sn)
	}
	for _, e := range entries {
		s.addEntry(e)
	}
	for _, c := range commits {
		c.LocalID = s.assign()
		if c.Day == "" {
			c.Day = model.DayOf(c.Time)
		}
		s.Commits = append(s.Commits, c)
		s.commitByLocal[c.LocalID] = c
	}
	for _, p := range projects {
		p.LocalID = s.assign()
		s.Projects = append(s.Projects, p)
		s.projectByRemote[p.RemoteID] = p
	}
	for _, is := range issues {
		is.LocalID = s.assign()
		s.Issues = append(s.Issues, is)
		s.issueByKey[is.Key] = is
	}
}

func (s *Store) addSession(sn *model.Session) {
	sn.LocalID = s.assign()
	if sn.Day == "" {
		sn.Day = model.DayOf(sn.Start)
	}
	s.Sessions = append(s.Sessions, sn)
	s.sessionByLocal[sn.LocalID] = sn
	if sn.RemoteID != nil {
		s.sessionByRemote[*sn.RemoteID] = sn
	}
}

func (s *Store) addEntry(e *model.TimeEntry) {
	e.LocalID = s.assign()
	if e.Day == "" {
		e.Day = model.DayOf(e.Start)
	}
	s.Entries = append(s.Entries, e)
	s.entryByLocal[e.LocalID] = e
	if e.RemoteID != nil {
		s.entryByRemote[*e.RemoteID] = e
	}
}

// UpsertEntry folds a remote entry representation into the store. When an
// entry with the same remote id already exists, its mutable fields are
// overwritten in place and its local identity (and day) are preserved;
// otherwise the entry is inserted with a fresh local identity and its day
// computed from its start time. The stored entry is returned.
func (s *Store) UpsertEntry(e *model.TimeEntry) *model.TimeEntry {
	if e.RemoteID != nil {
		if cur, ok := s.entryByRemote[*e.RemoteID]; ok {
			cur.Start = e.Start
			cur.End = e.End
			cur.Description = e.Description
			cur.Project = e.Project
			return cur
		}
	}
	s.addEntry(e)
	return e
}

// SetSessionExported records which remote entry a session was exported to.
// Called only from a successful export reconciliation.
func (s *Store) SetSessionExported(id model.LocalID, remoteEntryID int64) bool {
	sn, ok := s.sessionByLocal[id]
	if !ok {
		return false
	}
	sn.ExportedID = &remoteEntryID
	return true
}

// RemoveEntry deletes an entry after a confirmed remote delete. It reports
// whether the entry was present.
func (s *Store) RemoveEntry(id model.LocalID) bool {
	e, ok := s.entryByLocal[id]
	if !ok {
		return false
	}
	delete(s.entryByLocal, id)
	if e.RemoteID != nil {
		delete(s.entryByRemote, *e.RemoteID)
	}
	for i, cur := range s.Entries {
		if cur.LocalID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) SessionByLocal(id model.LocalID) (*model.Session, bool) {
	sn, ok := s.sessionByLocal[id]
	return sn, ok
}

func (s *Store) SessionByRemote(id int64) (*model.Session, bool) {
	sn, ok := s.sessionByRemote[id]
	return sn, ok
}

func (s *Store) EntryByLocal(id model.LocalID) (*model.TimeEntry, bool) {
	e, ok := s.entryByLocal[id]
	return e, ok
}

func (s *Store) EntryByRemote(id int64) (*model.TimeEntry, bool) {
	e, ok := s.entryByRemote[id]
	return e, ok
}

func (s *Store) CommitByLocal(id model.LocalID) (*model.Commit, bool) {
	c, ok := s.commitByLocal[id]
	return c, ok
}

func (s *Store) ProjectByRemote(id int64) (*model.Project, bool) {
	p, ok := s.projectByRemote[id]
	return p, ok
}

func (s *Store) IssueByKey(key string) (*model.Issue, bool) {
	is, ok := s.issueByKey[key]
	return is, ok
}
