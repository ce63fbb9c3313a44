// Package restapi is the HTTP adapter for the remote employee collection
// served under {base}/employees.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/csg33k/employee-manager/internal/domain"
)

// maxErrorBody caps how much of a failed response is read for detail.
const maxErrorBody = 4 << 10

type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("restapi: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("restapi: base url %q must be absolute", baseURL)
	}
	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: http.DefaultClient,
		log:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ── Operations ────────────────────────────────────────────────────────────────

func (c *Client) List(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, "list employees", http.MethodGet, c.collectionURL(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Employee{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, d domain.Draft) (domain.Employee, error) {
	var e domain.Employee
	err := c.do(ctx, "create employee", http.MethodPost, c.collectionURL(), d, &e)
	return e, err
}

func (c *Client) Update(ctx context.Context, id domain.ID, d domain.Draft) (domain.Employee, error) {
	var e domain.Employee
	err := c.do(ctx, "update employee", http.MethodPut, c.memberURL(id), d, &e)
	return e, err
}

func (c *Client) Delete(ctx context.Context, id domain.ID) error {
	return c.do(ctx, "delete employee", http.MethodDelete, c.memberURL(id), nil, nil)
}

// ── Transport ─────────────────────────────────────────────────────────────────

func (c *Client) collectionURL() string {
	return c.base + "/employees"
}

func (c *Client) memberURL(id domain.ID) string {
	return c.base + "/employees/" + url.PathEscape(id.String())
}

// do performs one request. A nil in sends no body; a nil out discards
// the response body.
func (c *Client) do(ctx context.Context, op, method, target string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("employee service unreachable", "op", op, "request_id", reqID, "err", err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &domain.StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
		c.log.Warn("employee service rejected request",
			"op", op, "request_id", reqID, "status", resp.StatusCode, "detail", serr.Detail)
		return serr
	}

	c.log.Debug("employee service request completed",
		"op", op, "request_id", reqID, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("%s: decode response: %w: %w", op, domain.ErrNetwork, err)
	}
	return nil
}

// readDetail extracts a human-readable message from an error body. JSON
// bodies carrying "error" or "message" win; otherwise the trimmed text is
// used.
func readDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
		return ""
	}
	return string(b)
}
