package store

import (
	"testing"

	"timeclerk-cli/internal/model"
)

func TestDays_SessionsDefineGroupsInLoadOrder(t *testing.T) {
	s := New()
	s.Load(
		[]*model.Session{
			{Start: at("2024-03-12", "09:00:00"), End: at("2024-03-12", "10:00:00")},
			{Start: at("2024-03-11", "09:00:00"), End: at("2024-03-11", "10:00:00")},
			{Start: at("2024-03-12", "14:00:00"), End: at("2024-03-12", "15:00:00")},
		},
		nil, nil, nil, nil,
	)

	days := s.Days()
	if len(days) != 2 {
		t.Fatalf("expected 2 distinct days, got %v", days)
	}
	if days[0] != model.Day("2024-03-12") || days[1] != model.Day("2024-03-11") {
		t.Fatalf("days must keep first-appearance order, got %v", days)
	}
}

func TestMembersOf_JoinsByDayEqualityAcrossKinds(t *testing.T) {
	s := New()
	s.Load(
		[]*model.Session{
			{Start: at("2024-03-11", "08:00:00"), End: at("2024-03-11", "09:00:00")},
		},
		[]*model.TimeEntry{
			{RemoteID: i64Ptr(1), Start: at("2024-03-11", "08:00:00"), End: at("2024-03-11", "08:30:00")},
			{RemoteID: i64Ptr(2), Start: at("2024-03-12", "08:00:00"), End: at("2024-03-12", "08:30:00")},
		},
		[]*model.Commit{
			{Time: at("2024-03-11", "17:00:00"), Message: "a"},
			{Time: at("2024-03-13", "17:00:00"), Message: "b"},
		},
		nil, nil,
	)

	m := s.MembersOf(model.Day("2024-03-11"))
	if len(m.Sessions) != 1 || len(m.Entries) != 1 || len(m.Commits) != 1 {
		t.Fatalf("unexpected membership: %d sessions, %d entries, %d commits",
			len(m.Sessions), len(m.Entries), len(m.Commits))
	}
	if m.Entries[0].RemoteID == nil || *m.Entries[0].RemoteID != 1 {
		t.Fatalf("wrong entry joined into day")
	}
}

func TestMembersOf_UnionCoversAllLoadedEntitiesExactlyOnce(t *testing.T) {
	s := New()
	s.Load(
		[]*model.Session{
			{Start: at("2024-03-11", "08:00:00"), End: at("2024-03-11", "09:00:00")},
			{Start: at("2024-03-12", "08:00:00"), End: at("2024-03-12", "09:00:00")},
		},
		[]*model.TimeEntry{
			{RemoteID: i64Ptr(1), Start: at("2024-03-11", "08:00:00"), End: at("2024-03-11", "08:30:00")},
			{RemoteID: i64Ptr(2), Start: at("2024-03-12", "11:00:00"), End: at("2024-03-12", "11:30:00")},
		},
		[]*model.Commit{
			{Time: at("2024-03-12", "16:00:00"), Message: "m"},
		},
		nil, nil,
	)

	counts := map[model.LocalID]int{}
	for _, d := range s.Days() {
		m := s.MembersOf(d)
		for _, sn := range m.Sessions {
			counts[sn.LocalID]++
		}
		for _, e := range m.Entries {
			counts[e.LocalID]++
		}
		for _, c := range m.Commits {
			counts[c.LocalID]++
		}
	}

	want := len(s.Sessions) + len(s.Entries) + len(s.Commits)
	if len(counts) != want {
		t.Fatalf("union covers %d entities, want %d", len(counts), want)
	}
	for id, n := range counts {
		if n != 1 {
			t.Fatalf("entity %d appears %d times across groups", id, n)
		}
	}
}
