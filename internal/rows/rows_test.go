package rows

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"timeclerk-cli/internal/model"
)

func i64Ptr(v int64) *int64 { return &v }

func testSession() *model.Session {
	return &model.Session{
		LocalID:  3,
		Start:    time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC),
		Day:      model.Day("2024-03-11"),
		Category: "coding",
		Windows: []model.WindowSample{
			{Name: "editor", Seconds: 1200},
			{Name: "terminal", Seconds: 2400},
			{Name: "browser", Seconds: 600},
		},
	}
}

func TestProject_IsPure(t *testing.T) {
	p := Projector{}
	sn := testSession()

	a := p.Session(sn)
	b := p.Session(sn)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("projection not stable:\n%+v\n%+v", a, b)
	}
}

func TestSessionRow_TitleSortsWindowsByDescendingDuration(t *testing.T) {
	p := Projector{}
	r := p.Session(testSession())

	want := "2400s - terminal\n1200s - editor\n600s - browser"
	if r.Title != want {
		t.Fatalf("title = %q, want %q", r.Title, want)
	}
	if r.Class != "session-coding" {
		t.Fatalf("class = %q", r.Class)
	}
	if r.Editable != (Editable{}) {
		t.Fatalf("session rows must be read-only, got %+v", r.Editable)
	}
	if r.End == nil {
		t.Fatalf("session rows carry an end time")
	}
}

func TestSessionRow_TitleTruncatesToTenWindows(t *testing.T) {
	sn := testSession()
	sn.Windows = nil
	for i := 0; i < 14; i++ {
		sn.Windows = append(sn.Windows, model.WindowSample{
			Name:    fmt.Sprintf("win-%d", i),
			Seconds: int64(100 + i),
		})
	}
	r := Projector{}.Session(sn)

	lines := strings.Split(r.Title, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 title lines, got %d", len(lines))
	}
	if lines[0] != "113s - win-13" {
		t.Fatalf("largest sample must come first, got %q", lines[0])
	}
}

func TestEntryRow_EditableWithAllCapabilities(t *testing.T) {
	e := &model.TimeEntry{
		LocalID:     5,
		RemoteID:    i64Ptr(501),
		Start:       time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
		Description: "pairing on CORE-12",
	}
	r := Projector{}.Entry(e)

	if r.Group != GroupEntry {
		t.Fatalf("group = %q", r.Group)
	}
	if r.Content != e.Description || r.Title != e.Description {
		t.Fatalf("content/title must both equal the description")
	}
	want := Editable{TimeDrag: true, Remove: true, Override: true}
	if r.Editable != want {
		t.Fatalf("editable = %+v", r.Editable)
	}
}

func TestCommitRow_PointMarkerWithIssueSuffix(t *testing.T) {
	issue := &model.Issue{Key: "CORE-12", Summary: "Retry storm", Project: 7}
	lookup := func(key string) (*model.Issue, bool) {
		if key == issue.Key {
			return issue, true
		}
		return nil, false
	}
	c := &model.Commit{
		LocalID:  9,
		Time:     time.Date(2024, 3, 11, 17, 0, 0, 0, time.UTC),
		Message:  "fix flaky retry",
		IssueKey: "CORE-12",
	}

	r := Projector{Issues: lookup}.Commit(c)
	if r.End != nil {
		t.Fatalf("commit rows are zero-duration points")
	}
	if r.Title != "fix flaky retry\nCORE-12 Retry storm" {
		t.Fatalf("title = %q", r.Title)
	}
	if r.Editable != (Editable{}) {
		t.Fatalf("commit rows must be read-only")
	}

	c.IssueKey = ""
	r = Projector{Issues: lookup}.Commit(c)
	if r.Title != "fix flaky retry" {
		t.Fatalf("unlinked commit title = %q", r.Title)
	}
}

func TestProject_RejectsUnrecognizedKind(t *testing.T) {
	p := Projector{}
	if _, err := p.Project(model.Kind("worklog"), testSession()); err == nil {
		t.Fatalf("unknown kind must be rejected")
	}
	if _, err := p.Project(model.KindEntry, testSession()); err == nil {
		t.Fatalf("mismatched entity type must be rejected")
	}
	if _, err := p.Project(model.KindSession, testSession()); err != nil {
		t.Fatalf("valid projection failed: %v", err)
	}
}
