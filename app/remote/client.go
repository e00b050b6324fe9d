// Package remote is the HTTP client of the download server. It submits jobs and queue items,
// polls queue status, fetches finished files and opens server-sent event streams of job logs.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/yourtube/app/queue"
	"github.com/umputun/yourtube/app/status"
	"github.com/umputun/yourtube/app/stream"
)

const maxResponseSize = 4 * 1024 * 1024

// ErrSubmissionRejected reports a job or queue submission the server did not accept
var ErrSubmissionRejected = errors.New("submission rejected")

// Client talks to the download server
type Client struct {
	baseURL    string // server address with path prefix, no trailing slash
	http       *http.Client
	streamHTTP *http.Client // no overall timeout, used for event streams and file downloads
	retryDelay time.Duration
	maxRetries int
}

// Params configures Client
type Params struct {
	Server     string        // server address, e.g. http://localhost:5000
	Prefix     string        // path prefix the server is mounted on, e.g. /yourtube
	Timeout    time.Duration // timeout for json calls, 30s by default
	RetryDelay time.Duration // delay between event stream reconnects, 3s by default
	MaxRetries int           // event stream reconnects before the connection is reported lost, 3 by default
}

// StatusError is a non-2xx response of a json call
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// New makes a Client for the server
func New(p Params) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(p.Server))
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", p.Server, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid server address %q, http(s)://host expected", p.Server)
	}

	res := &Client{
		baseURL:    strings.TrimSuffix(u.Scheme+"://"+u.Host+u.Path, "/") + NormalizePrefix(p.Prefix),
		http:       &http.Client{Timeout: p.Timeout},
		streamHTTP: &http.Client{},
		retryDelay: p.RetryDelay,
		maxRetries: p.MaxRetries,
	}
	if p.Timeout <= 0 {
		res.http.Timeout = 30 * time.Second
	}
	if res.retryDelay <= 0 {
		res.retryDelay = 3 * time.Second
	}
	if res.maxRetries <= 0 {
		res.maxRetries = 3
	}
	return res, nil
}

// NormalizePrefix returns the prefix with a leading slash and without a trailing one, empty for root
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// SubmitJob starts a download job and returns its handle for the event stream
func (c *Client) SubmitJob(ctx context.Context, req stream.JobRequest) (stream.JobHandle, error) {
	var resp struct {
		Success bool       `json:"success"`
		PID     flexString `json:"pid"`
		Subdir  string     `json:"subdir"`
		Error   string     `json:"error"`
	}
	form := url.Values{"url": {req.URL}, "directory": {req.Directory}}
	if err := c.call(ctx, http.MethodPost, "/save", form, &resp); err != nil {
		return stream.JobHandle{}, fmt.Errorf("%w: %w", ErrSubmissionRejected, err)
	}
	if !resp.Success || resp.PID == "" {
		return stream.JobHandle{}, fmt.Errorf("%w: %s", ErrSubmissionRejected, orDefault(resp.Error, "no job id returned"))
	}
	return stream.JobHandle{ID: string(resp.PID), Token: resp.Subdir}, nil
}

// SubmitQueue adds a download to the server queue
func (c *Client) SubmitQueue(ctx context.Context, req queue.Request) (queue.Item, error) {
	var resp wireItem
	form := url.Values{"url": {req.URL}, "quality": {orDefault(req.Quality, "best")}}
	if err := c.call(ctx, http.MethodPost, "/queue-download", form, &resp); err != nil {
		return queue.Item{}, fmt.Errorf("%w: %w", ErrSubmissionRejected, err)
	}
	if (resp.Success != nil && !*resp.Success) || (resp.Error != "" && resp.id() == "") {
		return queue.Item{}, fmt.Errorf("%w: %s", ErrSubmissionRejected, orDefault(resp.Error, "queue refused the item"))
	}
	item, err := resp.item()
	if err != nil {
		return queue.Item{}, fmt.Errorf("%w: %w", ErrSubmissionRejected, err)
	}
	return item, nil
}

// QueueStatus returns the current state of a queued item
func (c *Client) QueueStatus(ctx context.Context, id string) (queue.Item, error) {
	var resp wireItem
	if err := c.call(ctx, http.MethodGet, "/queue-status/"+url.PathEscape(id), nil, &resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return queue.Item{}, fmt.Errorf("queue item %s not found", id)
		}
		return queue.Item{}, fmt.Errorf("queue status of %s: %w", id, err)
	}
	if resp.id() == "" {
		resp.ID = flexString(id)
	}
	return resp.item()
}

// QueueList returns all items known to the server queue
func (c *Client) QueueList(ctx context.Context) ([]queue.Item, error) {
	var resp struct {
		Items []wireItem `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, "/queue-list", nil, &resp); err != nil {
		return nil, fmt.Errorf("queue list: %w", err)
	}
	res := make([]queue.Item, 0, len(resp.Items))
	for _, w := range resp.Items {
		item, err := w.item()
		if err != nil {
			log.Printf("[WARN] skip queue item %s: %v", w.id(), err)
			continue
		}
		res = append(res, item)
	}
	return res, nil
}

// DownloadFile fetches the file of a completed queue item into dir and returns its path
func (c *Client) DownloadFile(ctx context.Context, id, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/queue-download-file/"+url.PathEscape(id), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("make download request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	resp, err := c.streamHTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return "", fmt.Errorf("download %s: %w", id, &StatusError{Code: resp.StatusCode, Message: errorMessage(data)})
	}

	name := id
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." {
		name = id
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("make download dir %s: %w", dir, err)
	}
	dest := filepath.Join(dir, name)
	tmp := dest + ".part"
	fh, err := os.Create(tmp) //nolint:gosec // the name is reduced to its base
	if err != nil {
		return "", fmt.Errorf("create %s: %w", tmp, err)
	}
	if _, err := io.Copy(fh, resp.Body); err != nil {
		_ = fh.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", fmt.Errorf("rename %s: %w", tmp, err)
	}
	return dest, nil
}

// call makes a json request, form values are sent url-encoded
func (c *Client) call(ctx context.Context, method, path string, form url.Values, dst any) error {
	var body io.Reader = http.NoBody
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("make request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(data)}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// wireItem is a queue item as the server encodes it. Submission responses carry queue_id, status
// and listing responses carry id.
type wireItem struct {
	Success   *bool      `json:"success"`
	ID        flexString `json:"id"`
	QueueID   flexString `json:"queue_id"`
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Quality   string     `json:"quality"`
	Status    string     `json:"status"`
	Progress  float64    `json:"progress"`
	CreatedAt flexTime   `json:"created_at"`
	Error     string     `json:"error"`
}

func (w wireItem) id() string {
	if w.QueueID != "" {
		return string(w.QueueID)
	}
	return string(w.ID)
}

func (w wireItem) item() (queue.Item, error) {
	if w.id() == "" {
		return queue.Item{}, errors.New("queue item without id")
	}
	st := "queued"
	if w.Status != "" {
		st = w.Status
	}
	qs, err := status.ParseQueue(st)
	if err != nil {
		return queue.Item{}, err
	}
	return queue.Item{
		ID:        w.id(),
		URL:       w.URL,
		Title:     w.Title,
		Quality:   w.Quality,
		Status:    qs,
		Progress:  status.ClampProgress(w.Progress),
		CreatedAt: time.Time(w.CreatedAt),
		Error:     w.Error,
	}, nil
}

// flexString accepts json strings and numbers
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// flexTime accepts RFC3339 and zone-less iso timestamps, zone-less ones are taken as local time
type flexTime time.Time

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"}

func (f *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if string(data) == "null" {
		*f = flexTime{}
		return nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*f = flexTime{}
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*f = flexTime(t)
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// errorMessage extracts the error field of a json error body, falls back to the trimmed body
func errorMessage(data []byte) string {
	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &resp); err == nil {
		return orDefault(resp.Error, resp.Message)
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
