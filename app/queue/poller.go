// Package queue implements the polled download queue. Every queued item gets its own repeating
// status poll, registered by queue id and cancelled when the item reaches a terminal status.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/request"
	"github.com/umputun/yourtube/app/status"
)

//go:generate moq -out mocks/api.go -pkg mocks -skip-ensure -fmt goimports . API
//go:generate moq -out mocks/sink.go -pkg mocks -skip-ensure -fmt goimports . Sink
//go:generate moq -out mocks/event_handler.go -pkg mocks -skip-ensure -fmt goimports . EventHandler

const defaultInterval = 2 * time.Second

// ErrPollFetchFailed reports a failed status fetch, polling for the item stops
var ErrPollFetchFailed = errors.New("poll fetch failed")

// Item is a queued download as shown to the user
type Item struct {
	ID        string            `json:"id"`
	URL       string            `json:"url,omitempty"`
	Title     string            `json:"title"`
	Quality   string            `json:"quality"`
	Status    enums.QueueStatus `json:"status"`
	Progress  float64           `json:"progress"`
	CreatedAt time.Time         `json:"created_at"`
	Error     string            `json:"error,omitempty"`
}

// Request is a queue submission
type Request struct {
	URL     string `yaml:"url" json:"url" jsonschema:"required,description=video URL"`
	Quality string `yaml:"quality,omitempty" json:"quality,omitempty" jsonschema:"description=requested quality,example=best,example=720p"`
}

// API is the remote queue service
type API interface {
	SubmitQueue(ctx context.Context, req Request) (Item, error)
	QueueStatus(ctx context.Context, id string) (Item, error)
	QueueList(ctx context.Context) ([]Item, error)
}

// Sink receives display notifications. Called with the poller lock held, must not call back into the poller.
type Sink interface {
	OnQueueItemUpdate(item Item)
	OnQueueSnapshot(items []Item)
	OnError(msg string)
}

// EventHandler is notified once when polling of an item ends on a terminal status
type EventHandler interface {
	OnQueueFinished(req request.OnQueueFinished)
}

// Poller drives status polls for queued items and keeps the displayed collection
type Poller struct {
	api      API
	sink     Sink
	interval time.Duration
	handlers []EventHandler
	registry *Registry
	dispatch sync.WaitGroup // finish handlers in flight

	mu    sync.Mutex
	items []Item // newest first
}

// Params configures Poller
type Params struct {
	API      API
	Sink     Sink
	Interval time.Duration // poll interval, 2s by default
	Handlers []EventHandler
}

// NewPoller makes a Poller with defaults applied
func NewPoller(p Params) *Poller {
	res := &Poller{api: p.API, sink: p.Sink, interval: p.Interval, handlers: p.Handlers, registry: NewRegistry()}
	if res.interval <= 0 {
		res.interval = defaultInterval
	}
	return res
}

// Enqueue submits the request and starts polling the new item.
// Rejections are reported to the sink and returned, nothing is inserted in that case.
func (p *Poller) Enqueue(ctx context.Context, req Request) (Item, error) {
	item, err := p.api.SubmitQueue(ctx, req)
	if err != nil {
		p.mu.Lock()
		p.sink.OnError(fmt.Sprintf("failed to queue %s: %v", req.URL, err))
		p.mu.Unlock()
		return Item{}, fmt.Errorf("queue %s: %w", req.URL, err)
	}

	item.Status = enums.QueueStatusQueued
	item.Progress = 0
	if item.Quality == "" {
		item.Quality = req.Quality
	}
	if item.URL == "" {
		item.URL = req.URL
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.remove(item.ID)
	p.items = append([]Item{item}, p.items...)
	p.sink.OnQueueItemUpdate(item)
	p.registry.Start(ctx, item.ID, func(ctx context.Context) { p.pollLoop(ctx, item.ID) })
	log.Printf("[INFO] queued %s as %s (%q)", req.URL, item.ID, item.Title)
	return item, nil
}

// Poll fetches the item status once and applies it. Used by the poll loop and for manual refresh of one item.
func (p *Poller) Poll(ctx context.Context, id string) (Item, error) {
	return p.poll(ctx, id, false)
}

// RefreshAll replaces the displayed collection with the full server listing. Active polls are left alone.
func (p *Poller) RefreshAll(ctx context.Context) ([]Item, error) {
	items, err := p.api.QueueList(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.sink.OnError(fmt.Sprintf("failed to refresh queue: %v", err))
		return nil, fmt.Errorf("refresh queue: %w", err)
	}
	for i := range items {
		items[i].Progress = status.ClampProgress(items[i].Progress)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	p.items = items
	p.sink.OnQueueSnapshot(p.snapshot())
	log.Printf("[DEBUG] queue refreshed, %d items", len(items))
	return p.snapshot(), nil
}

// Items returns the displayed collection, newest first
func (p *Poller) Items() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// Active returns ids with an active poll
func (p *Poller) Active() []string {
	return p.registry.IDs()
}

// Wait blocks until no poll is active and finish handlers of ended polls returned
func (p *Poller) Wait(ctx context.Context) error {
	for {
		done := p.registry.anyDone()
		if done == nil {
			break
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	dispatched := make(chan struct{})
	go func() {
		p.dispatch.Wait()
		close(dispatched)
	}()
	select {
	case <-dispatched:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels all active polls. Safe to call multiple times.
func (p *Poller) Close() {
	p.registry.CancelAll()
}

func (p *Poller) pollLoop(ctx context.Context, id string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if _, err := p.poll(ctx, id, true); err != nil {
				log.Printf("[DEBUG] polling of %s ended: %v", id, err)
			}
		}
	}
}

// poll fetches and applies one status. For scheduled polls the result is dropped when the task
// was cancelled while the fetch was in flight.
func (p *Poller) poll(ctx context.Context, id string, scheduled bool) (Item, error) {
	fetched, err := p.api.QueueStatus(ctx, id)

	p.mu.Lock()
	if scheduled && ctx.Err() != nil {
		p.mu.Unlock()
		return Item{}, ctx.Err()
	}
	if err != nil && ctx.Err() != nil {
		p.mu.Unlock()
		return Item{}, fmt.Errorf("status check for %s interrupted: %w", id, ctx.Err()) // caller gave up, polling goes on
	}
	if err != nil {
		p.sink.OnError(fmt.Sprintf("failed to check status of %s: %v", id, err))
		p.registry.Cancel(id)
		p.mu.Unlock()
		log.Printf("[WARN] status check for %s failed: %v", id, err)
		return Item{}, fmt.Errorf("%w: %s: %w", ErrPollFetchFailed, id, err)
	}

	item, found := p.apply(id, fetched)
	if found {
		p.sink.OnQueueItemUpdate(item)
	}
	finished := false
	if status.IsTerminal(item.Status) {
		p.dispatch.Add(1)
		if finished = p.registry.Cancel(id); !finished {
			p.dispatch.Done()
		}
	}
	p.mu.Unlock()

	if finished {
		log.Printf("[INFO] %s (%q) %s", id, item.Title, item.Status)
		evt := request.OnQueueFinished{QueueID: item.ID, URL: item.URL, Title: item.Title, Quality: item.Quality,
			Status: item.Status, Progress: item.Progress, Error: item.Error, CreatedAt: item.CreatedAt, FinishedAt: time.Now()}
		for _, h := range p.handlers {
			h.OnQueueFinished(evt)
		}
		p.dispatch.Done()
	}
	return item, nil
}

// apply overwrites the mutable fields of the displayed item in place. Title, quality and creation time
// stay as first displayed. Items missing from the collection are not re-added.
func (p *Poller) apply(id string, fetched Item) (Item, bool) {
	for i := range p.items {
		if p.items[i].ID != id {
			continue
		}
		p.items[i].Status = fetched.Status
		p.items[i].Progress = status.ClampProgress(fetched.Progress)
		p.items[i].Error = fetched.Error
		return p.items[i], true
	}
	fetched.ID = id
	fetched.Progress = status.ClampProgress(fetched.Progress)
	return fetched, false
}

func (p *Poller) remove(id string) {
	for i := range p.items {
		if p.items[i].ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return
		}
	}
}

func (p *Poller) snapshot() []Item {
	return append([]Item(nil), p.items...)
}
