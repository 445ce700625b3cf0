// Package backend is the HTTP client for the ticketing service. It speaks the
// service's REST endpoints and returns fetched lists as grid records.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ticketdesk/internal/grid"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/model"
)

const DefaultServer = "http://localhost:8080"

type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		cp := *c.http
		cp.Timeout = d
		c.http = &cp
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(server string, opts ...Option) (*Client, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		server = DefaultServer
	}
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url must be http(s): %s", server)
	}
	c := &Client{base: u, http: &http.Client{}}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) Server() string { return c.base.String() }

func (c *Client) logger(ctx context.Context) *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return logging.FromContext(ctx)
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, q), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger(ctx).Debug("backend request failed", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	c.logger(ctx).Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(b),
		"duration", time.Since(start),
	)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: errorBody(b)}
	}
	return b, nil
}

var listPaths = map[model.Collection]string{
	model.CollectionTickets: "/get_tickets",
	model.CollectionPersons: "/get_persons",
	model.CollectionEvents:  "/get_events",
	model.CollectionVenues:  "/get_venues",
}

// List fetches a whole collection. On error the returned list is empty.
func (c *Client) List(ctx context.Context, coll model.Collection) ([]grid.Record, error) {
	path, ok := listPaths[coll]
	if !ok {
		return []grid.Record{}, fmt.Errorf("unknown collection: %s", coll)
	}
	b, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return []grid.Record{}, err
	}
	return DecodeList(b, string(coll)), nil
}

// DecodeList accepts a bare JSON array or an object wrapping the array under
// wrapKey. Anything else, including malformed JSON, is an empty list.
// Non-object elements are dropped.
func DecodeList(b []byte, wrapKey string) []grid.Record {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return []grid.Record{}
	}
	var arr []any
	switch t := raw.(type) {
	case []any:
		arr = t
	case map[string]any:
		inner, ok := t[wrapKey].([]any)
		if !ok {
			return []grid.Record{}
		}
		arr = inner
	default:
		return []grid.Record{}
	}
	out := make([]grid.Record, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func decodeRecord(b []byte, wrapKey string) (grid.Record, error) {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotFound
	}
	if wrapKey != "" {
		if inner, ok := m[wrapKey].(map[string]any); ok {
			return inner, nil
		}
	}
	return m, nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) Ticket(ctx context.Context, id int64) (grid.Record, error) {
	b, err := c.do(ctx, http.MethodGet, idPath("/get_ticket", id), nil, nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 || string(bytes.TrimSpace(b)) == "null" {
		return nil, ErrNotFound
	}
	return decodeRecord(b, "ticket")
}

func (c *Client) create(ctx context.Context, path string, payload any) (grid.Record, error) {
	b, err := c.do(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return grid.Record{}, nil
	}
	rec, err := decodeRecord(b, "")
	if err != nil {
		// Some endpoints answer with a plain-text confirmation.
		return grid.Record{"message": strings.TrimSpace(string(b))}, nil
	}
	return rec, nil
}

func (c *Client) CreateTicket(ctx context.Context, t model.Ticket) (grid.Record, error) {
	return c.create(ctx, "/add_ticket", t)
}

func (c *Client) UpdateTicket(ctx context.Context, id int64, t model.Ticket) (grid.Record, error) {
	t.ID = nil
	return c.create(ctx, idPath("/update_ticket", id), t)
}

func (c *Client) CreatePerson(ctx context.Context, p model.Person) (grid.Record, error) {
	return c.create(ctx, "/add_person", p)
}

func (c *Client) CreateEvent(ctx context.Context, e model.Event) (grid.Record, error) {
	return c.create(ctx, "/add_event", e)
}

func (c *Client) CreateVenue(ctx context.Context, v model.Venue) (grid.Record, error) {
	return c.create(ctx, "/add_venue", v)
}

func (c *Client) DeleteTicket(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/delete_ticket", id), nil, nil)
	return err
}

// DeleteByComment removes every ticket whose comment equals comment.
func (c *Client) DeleteByComment(ctx context.Context, comment string) error {
	_, err := c.do(ctx, http.MethodDelete, "/delete_by_comment", url.Values{"commentEq": {comment}}, nil)
	return err
}

// MinEventTicket returns the ticket whose event is minimal.
func (c *Client) MinEventTicket(ctx context.Context) (grid.Record, error) {
	b, err := c.do(ctx, http.MethodGet, "/min_event_ticket", nil, nil)
	if err != nil {
		return nil, err
	}
	if t := bytes.TrimSpace(b); len(t) == 0 || string(t) == "null" {
		return nil, ErrNotFound
	}
	return decodeRecord(b, "ticket")
}

// CountCommentLess counts tickets whose comment sorts below comment.
func (c *Client) CountCommentLess(ctx context.Context, comment string) (int64, error) {
	b, err := c.do(ctx, http.MethodGet, "/count_comment_less", url.Values{"comment": {comment}}, nil)
	if err != nil {
		return 0, err
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return 0, fmt.Errorf("decode count: %w", err)
	}
	if m, ok := raw.(map[string]any); ok {
		raw = m["count"]
	}
	f, ok := grid.NumberFrom(raw).Float()
	if !ok {
		return 0, fmt.Errorf("decode count: unexpected payload %s", strings.TrimSpace(string(b)))
	}
	return int64(f), nil
}

func (c *Client) SellTicket(ctx context.Context, req model.SellRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/sell_ticket", nil, req)
	return err
}

// CloneVIP copies a ticket as a VIP ticket and returns the copy.
func (c *Client) CloneVIP(ctx context.Context, ticketID int64) (grid.Record, error) {
	return c.create(ctx, "/clone_vip", model.CloneRequest{TicketID: ticketID})
}
