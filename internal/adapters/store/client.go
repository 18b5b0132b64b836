// Package store is the HTTP client of the remote award record store.
//
// The store exposes one collection per program under {base}/api/{kind}.
// Listing filters are advisory: callers must not rely on the store having
// applied them, nor on any ordering of the rows it returns.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/pkg/logger"
	"github.com/redstonehub/laurel/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Client calls the record store.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     logger.Logger
}

// New creates a Client for the store rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: defaultTimeout,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the store root the client talks to.
func (c *Client) BaseURL() string { return c.base }

// ListHof fetches Hall of Fame records.
func (c *Client) ListHof(ctx context.Context, f model.Filters) ([]model.HofRecord, error) {
	var out []model.HofRecord
	err := c.do(ctx, call{
		op: "list_hof", method: http.MethodGet, path: collection(model.KindHof),
		query: filterQuery(f), fallback: "Failed to fetch HoF entries",
	}, nil, &out)
	return out, err
}

// ListWbc fetches Weekly Best Content records.
func (c *Client) ListWbc(ctx context.Context, f model.Filters) ([]model.WbcRecord, error) {
	var out []model.WbcRecord
	err := c.do(ctx, call{
		op: "list_wbc", method: http.MethodGet, path: collection(model.KindWbc),
		query: filterQuery(f), fallback: "Failed to fetch WBC entries",
	}, nil, &out)
	return out, err
}

// CreateHof stores a new Hall of Fame record.
func (c *Client) CreateHof(ctx context.Context, p model.HofPayload) (model.HofRecord, error) {
	var out model.HofRecord
	err := c.do(ctx, call{
		op: "create_hof", method: http.MethodPost, path: collection(model.KindHof),
		fallback: "Failed to create HoF entry",
	}, p, &out)
	return out, err
}

// CreateWbc stores a new Weekly Best Content record.
func (c *Client) CreateWbc(ctx context.Context, p model.WbcPayload) (model.WbcRecord, error) {
	var out model.WbcRecord
	err := c.do(ctx, call{
		op: "create_wbc", method: http.MethodPost, path: collection(model.KindWbc),
		fallback: "Failed to create WBC entry",
	}, p, &out)
	return out, err
}

// UpdateHof replaces a Hall of Fame record.
func (c *Client) UpdateHof(ctx context.Context, id model.RecordID, p model.HofPayload) (model.HofRecord, error) {
	var out model.HofRecord
	err := c.do(ctx, call{
		op: "update_hof", method: http.MethodPut, path: member(model.KindHof, id),
		fallback: "Failed to update HoF entry",
	}, p, &out)
	return out, err
}

// UpdateWbc replaces a Weekly Best Content record.
func (c *Client) UpdateWbc(ctx context.Context, id model.RecordID, p model.WbcPayload) (model.WbcRecord, error) {
	var out model.WbcRecord
	err := c.do(ctx, call{
		op: "update_wbc", method: http.MethodPut, path: member(model.KindWbc, id),
		fallback: "Failed to update WBC entry",
	}, p, &out)
	return out, err
}

type placementBody struct {
	Placement *int `json:"placement"`
}

// UpdatePlacement sets or clears the placement of a Hall of Fame record.
func (c *Client) UpdatePlacement(ctx context.Context, id model.RecordID, placement *int) (model.HofRecord, error) {
	var out model.HofRecord
	err := c.do(ctx, call{
		op: "update_placement", method: http.MethodPatch, path: member(model.KindHof, id) + "/placement",
		fallback: "Failed to update placement",
	}, placementBody{Placement: placement}, &out)
	return out, err
}

// Delete removes a record of either program.
func (c *Client) Delete(ctx context.Context, kind model.Kind, id model.RecordID) error {
	return c.do(ctx, call{
		op: "delete_" + string(kind), method: http.MethodDelete, path: member(kind, id),
		fallback: "Failed to delete " + kind.Label() + " entry",
	}, nil, nil)
}

// LookupProfile fetches pre-fill data for a Discord handle. A handle the
// store does not know yields nil and no error.
func (c *Client) LookupProfile(ctx context.Context, kind model.Kind, discord string) (*model.Profile, error) {
	var out model.Profile
	err := c.do(ctx, call{
		op: "profile_" + string(kind), method: http.MethodGet, path: collection(kind) + "/profile",
		query: url.Values{"discord": {discord}}, fallback: "Failed to fetch creator profile",
		notFoundOK: true,
	}, nil, &out)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

var errNotFound = errors.New("not found")

type call struct {
	op         string
	method     string
	path       string
	query      url.Values
	fallback   string
	notFoundOK bool
}

func collection(kind model.Kind) string { return "/api/" + string(kind) }

func member(kind model.Kind, id model.RecordID) string {
	return collection(kind) + "/" + url.PathEscape(id.String())
}

func filterQuery(f model.Filters) url.Values {
	q := url.Values{}
	if f.Month != "" {
		q.Set("month", f.Month)
	}
	if f.Year != 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	return q
}

func (c *Client) do(ctx context.Context, cl call, body, out any) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency(cl.op, float64(time.Since(start).Milliseconds()))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.base + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordStoreError(cl.op, "transport")
		c.log.Warn(ctx, "record store unreachable", logger.String("op", cl.op), logger.Error(err))
		return &TransportError{Op: cl.op, Message: cl.fallback, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if cl.notFoundOK && resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = cl.fallback
		}
		metrics.RecordStoreError(cl.op, strconv.Itoa(resp.StatusCode))
		c.log.Warn(ctx, "record store call failed",
			logger.String("op", cl.op),
			logger.Int("status", resp.StatusCode),
			logger.String("message", msg),
		)
		return &TransportError{Op: cl.op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordStoreError(cl.op, "decode")
		return fmt.Errorf("%w: %s: %w", ErrDecode, cl.op, err)
	}
	return nil
}
