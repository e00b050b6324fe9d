package remote

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"

	"github.com/umputun/yourtube/app/stream"
)

// errStreamRejected is returned by a connect attempt the server refused, it stops retries
var errStreamRejected = errors.New("event stream rejected")

// Open connects to the server-sent event stream of the job. Network errors and streams closed by the
// server are retried with a fixed delay and reported as transient, a refused stream or exhausted retries
// are reported as lost. Listener callbacks come from a single goroutine. A stream.Resumable listener
// continues from its stored position, skipping lines the server replays.
func (c *Client) Open(ctx context.Context, h stream.JobHandle, l stream.Listener) (stream.Conn, error) {
	if h.ID == "" {
		return nil, errors.New("job id is empty")
	}
	streamURL := c.baseURL + "/stream/" + url.PathEscape(h.ID)
	if h.Token != "" {
		streamURL += "?" + url.Values{"subdir": {h.Token}}.Encode()
	}

	pos := &stream.Position{}
	if r, ok := l.(stream.Resumable); ok {
		pos = r.Position()
	}

	ctx, cancel := context.WithCancel(ctx)
	es := &eventStream{client: c, url: streamURL, listener: l, pos: pos, cancel: cancel, done: make(chan struct{})}
	go es.run(ctx)
	return es, nil
}

// eventStream is one logical push connection, possibly spanning several http requests
type eventStream struct {
	client   *Client
	url      string
	listener stream.Listener
	cancel   context.CancelFunc
	done     chan struct{}
	closed   atomic.Bool

	pos    *stream.Position // last event id and replayable lines delivered, resumes the stream on retry
	reason string           // why the server refused the stream
}

// Close aborts the in-flight request without waiting for the reading goroutine.
// A callback already in progress may still complete, later ones are suppressed.
func (e *eventStream) Close() error {
	e.closed.Store(true)
	e.cancel()
	return nil
}

func (e *eventStream) run(ctx context.Context) {
	defer close(e.done)
	attempts := e.client.maxRetries + 1
	attempt := 0

	rptr := repeater.New(&strategy.FixedDelay{Repeats: attempts, Delay: e.client.retryDelay})
	err := rptr.Do(ctx, func() error {
		attempt++
		err := e.connect(ctx)
		if ctx.Err() != nil {
			return nil // closed by the owner
		}
		if errors.Is(err, errStreamRejected) {
			return errStreamRejected
		}
		if attempt < attempts {
			e.emit(func() { e.listener.OnError(fmt.Errorf("%w: %w", stream.ErrTransportTransient, err)) })
		}
		return err
	}, errStreamRejected)

	if ctx.Err() != nil {
		return
	}
	if errors.Is(err, errStreamRejected) {
		err = fmt.Errorf("%w: %s", errStreamRejected, e.reason)
	}
	log.Printf("[DEBUG] event stream %s finished after %d attempts: %v", e.url, attempt, err)
	e.emit(func() { e.listener.OnError(fmt.Errorf("%w: %w", stream.ErrTransportLost, err)) })
}

// connect makes one streaming request and reads it until the server closes it or the context is done
func (e *eventStream) connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, http.NoBody)
	if err != nil {
		e.reason = err.Error()
		return errStreamRejected
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	lastID, delivered := e.pos.Load()
	if lastID != "" {
		req.Header.Set("Last-Event-ID", lastID)
	}

	resp, err := e.client.streamHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		e.reason = (&StatusError{Code: resp.StatusCode, Message: errorMessage(data)}).Error()
		return errStreamRejected
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		e.reason = fmt.Sprintf("unexpected content type %q", ct)
		return errStreamRejected
	}
	e.emit(e.listener.OnOpen)

	skip := 0
	if lastID == "" {
		skip = delivered // the server replays the log file for a stream without ids
	}
	seen := 0
	err = readEvents(resp.Body, func(ev event) {
		if e.closed.Load() {
			return
		}
		if ev.hasID {
			lastID = ev.id
		}
		if ev.dispatch && replayable(ev.data) {
			seen++
			if seen <= skip {
				return
			}
			delivered++
		}
		e.pos.Store(lastID, delivered)
		if ev.dispatch {
			e.emit(func() { e.listener.OnMessage(ev.data) })
		}
	})
	if err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return errors.New("stream closed by server")
}

// replayable reports whether the server sends the line again when the stream is reopened.
// Heartbeats and nohup notices are never part of the replay.
func replayable(data string) bool {
	return data != "" && !strings.Contains(data, "nohup:")
}

// emit runs a listener callback unless the stream was closed
func (e *eventStream) emit(fn func()) {
	if e.closed.Load() {
		return
	}
	fn()
}

// event is a parsed server-sent event
type event struct {
	data     string
	id       string
	hasID    bool
	dispatch bool // message event with a data field
}

// readEvents parses a text/event-stream body and calls fn at every event boundary
func readEvents(r io.Reader, fn func(ev event)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var data []string
	var ev event
	evType := ""
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			ev.dispatch = data != nil && (evType == "" || evType == "message")
			ev.data = strings.Join(data, "\n")
			fn(ev)
			data, ev, evType = nil, event{}, ""
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue // comment
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "data":
			data = append(data, value)
		case "event":
			evType = value
		case "id":
			if !strings.Contains(value, "\x00") {
				ev.id, ev.hasID = value, true
			}
		case "retry":
			// reconnect delay is fixed on the client side
		}
	}
	return scanner.Err()
}
