// Package syncapi talks to the remote time-tracking aggregation service:
// one load query plus the four mutations (export/update, split, delete; move
// reuses export with an id). Decoding localizes every wire timestamp into the
// client's location before entities are built, so calendar days are derived
// consistently across kinds.
package syncapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/syncapi/wire"
)

// Client issues the remote calls. It performs no local reconciliation; the
// timeline package folds responses into the store on the event loop.
type Client struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
	days       int
}

type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLocation sets the location wire timestamps are localized into.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// WithDays asks the service for the last n days instead of its default
// window.
func WithDays(n int) Option {
	return func(c *Client) { c.days = n }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPError is a completed request the service rejected.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		buf, _ := io.ReadAll(resp.Body)
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(buf))}
	}
	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// LoadResult carries freshly decoded entities, ready for Store.Load. Local
// identities are not assigned yet; the store owns that.
type LoadResult struct {
	Sessions []*model.Session
	Entries  []*model.TimeEntry
	Commits  []*model.Commit
	Projects []*model.Project
	Issues   []*model.Issue
}

// Load fetches everything the timeline renders: sessions, time entries, the
// commit log, and project/issue reference data.
func (c *Client) Load(ctx context.Context) (*LoadResult, error) {
	path := "/sessions"
	if c.days > 0 {
		path = fmt.Sprintf("/sessions?days=%d", c.days)
	}
	var payload wire.LoadPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	res := &LoadResult{}
	for _, ws := range payload.Sessions {
		sn := &model.Session{
			RemoteID:   ws.ID,
			Start:      ws.StartTime.Time(c.loc),
			End:        ws.EndTime.Time(c.loc),
			Category:   ws.Category,
			ExportedID: ws.ExportedID,
		}
		for _, w := range ws.Windows {
			sn.Windows = append(sn.Windows, model.WindowSample{Name: w.Name, Seconds: w.Seconds})
		}
		sn.Day = model.DayOf(sn.Start)
		res.Sessions = append(res.Sessions, sn)
	}
	for _, we := range payload.TimeEntries {
		res.Entries = append(res.Entries, c.decodeEntry(we))
	}
	for _, wc := range payload.Log {
		cm := &model.Commit{
			Time:     wc.Time.Time(c.loc),
			Message:  wc.Message,
			IssueKey: wc.Issue,
		}
		cm.Day = model.DayOf(cm.Time)
		res.Commits = append(res.Commits, cm)
	}
	for _, wp := range payload.Projects {
		res.Projects = append(res.Projects, &model.Project{
			RemoteID: wp.ID,
			Name:     wp.Name,
			Client:   wp.Client,
		})
	}
	for _, wi := range payload.Issues {
		res.Issues = append(res.Issues, &model.Issue{
			Key:     wi.Key,
			Summary: wi.Summary,
			Project: wi.Project,
		})
	}
	return res, nil
}

func (c *Client) decodeEntry(we wire.Entry) *model.TimeEntry {
	e := &model.TimeEntry{
		RemoteID:    we.ID,
		Start:       we.StartTime.Time(c.loc),
		End:         we.EndTime.Time(c.loc),
		Description: we.Name,
		Project:     we.Project,
	}
	if we.CreatedAt != 0 {
		e.CreatedAt = we.CreatedAt.Time(c.loc)
	}
	e.Day = model.DayOf(e.Start)
	return e
}

// ExportRequest describes an export (RemoteID nil: create a new entry) or an
// update/move (RemoteID set).
type ExportRequest struct {
	RemoteID    *int64
	Start       time.Time
	End         time.Time
	Description string
	Project     *int64
}

// Export posts the request and returns the service's entry representation.
func (c *Client) Export(ctx context.Context, req ExportRequest) (*model.TimeEntry, error) {
	body := wire.ExportRequest{
		ID:        req.RemoteID,
		StartTime: wire.At(req.Start),
		EndTime:   wire.At(req.End),
		Name:      req.Description,
		Project:   req.Project,
	}
	var resp wire.Entry
	if err := c.do(ctx, http.MethodPost, "/export", body, &resp); err != nil {
		return nil, fmt.Errorf("export entry: %w", err)
	}
	return c.decodeEntry(resp), nil
}

// SplitRequest cuts the entry's span at SplitAt.
type SplitRequest struct {
	RemoteID    int64
	Start       time.Time
	End         time.Time
	SplitAt     time.Time
	Description string
	Project     *int64
}

// SplitResult is the pair the service returns: the original entry rewritten
// to end at the split point, and the newly created remainder.
type SplitResult struct {
	First  *model.TimeEntry
	Second *model.TimeEntry
}

func (c *Client) Split(ctx context.Context, req SplitRequest) (*SplitResult, error) {
	body := wire.SplitRequest{
		ID:        req.RemoteID,
		StartTime: wire.At(req.Start),
		EndTime:   wire.At(req.End),
		SplitTime: wire.At(req.SplitAt),
		Name:      req.Description,
		Project:   req.Project,
	}
	var resp wire.SplitResponse
	if err := c.do(ctx, http.MethodPost, "/split", body, &resp); err != nil {
		return nil, fmt.Errorf("split entry: %w", err)
	}
	return &SplitResult{
		First:  c.decodeEntry(resp.Entry1),
		Second: c.decodeEntry(resp.Entry2),
	}, nil
}

// Delete removes the entry with the given remote id. The response carries no
// contract beyond acknowledgment.
func (c *Client) Delete(ctx context.Context, remoteID int64) error {
	if err := c.do(ctx, http.MethodPost, "/delete", wire.DeleteRequest{ID: remoteID}, nil); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
