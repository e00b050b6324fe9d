// Package fetch downloads files of completed queue items to a local directory.
// Fetcher is a queue event handler, every completed item is fetched in background once
// the resource conditions allow it.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/go-pkgz/syncs"

	"github.com/umputun/yourtube/app/conditions"
	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/request"
)

//go:generate moq -out mocks/downloader.go -pkg mocks -skip-ensure -fmt goimports . Downloader
//go:generate moq -out mocks/checker.go -pkg mocks -skip-ensure -fmt goimports . Checker

// ErrConditionsNotMet reports a fetch skipped because resource conditions stayed unsatisfied
var ErrConditionsNotMet = errors.New("conditions not met")

// Downloader fetches the file of a completed queue item into dir
type Downloader interface {
	DownloadFile(ctx context.Context, id, dir string) (string, error)
}

// Checker verifies resource conditions
type Checker interface {
	Check(cond conditions.Config) (bool, string)
}

// ErrorReporter receives fetch failures for display
type ErrorReporter interface {
	OnError(msg string)
}

// Result is the outcome of one fetch
type Result struct {
	QueueID string
	Title   string
	Path    string
	Err     error
}

// Params configures Fetcher
type Params struct {
	Downloader  Downloader
	Dir         string
	Conditions  conditions.Config
	Checker     Checker       // conditions.NewChecker(0) by default
	CheckDelay  time.Duration // delay between condition checks, 30s by default
	CheckTries  int           // condition checks before giving up, 10 by default
	Concurrency int           // parallel downloads, 2 by default
	Reporter    ErrorReporter // optional
}

// Fetcher downloads completed queue items in background
type Fetcher struct {
	Params
	ctx    context.Context
	cancel context.CancelFunc
	group  *syncs.SizedGroup

	mu      sync.Mutex
	results []Result
	seen    map[string]bool
}

// New makes a Fetcher, all fetches are cancelled with ctx
func New(ctx context.Context, p Params) *Fetcher {
	if p.Checker == nil {
		p.Checker = conditions.NewChecker(0)
	}
	if p.CheckDelay <= 0 {
		p.CheckDelay = 30 * time.Second
	}
	if p.CheckTries <= 0 {
		p.CheckTries = 10
	}
	if p.Concurrency <= 0 {
		p.Concurrency = 2
	}
	res := &Fetcher{Params: p, group: syncs.NewSizedGroup(p.Concurrency), seen: map[string]bool{}}
	res.ctx, res.cancel = context.WithCancel(ctx)
	return res
}

// OnQueueFinished implements queue.EventHandler, schedules a fetch for completed items.
// Each queue id is fetched once.
func (f *Fetcher) OnQueueFinished(req request.OnQueueFinished) {
	if req.Status != enums.QueueStatusCompleted {
		return
	}
	f.mu.Lock()
	if f.seen[req.QueueID] {
		f.mu.Unlock()
		return
	}
	f.seen[req.QueueID] = true
	f.mu.Unlock()

	f.group.Go(func(context.Context) {
		res := Result{QueueID: req.QueueID, Title: req.Title}
		res.Path, res.Err = f.fetch(f.ctx, req.QueueID)
		f.mu.Lock()
		f.results = append(f.results, res)
		f.mu.Unlock()
		if res.Err != nil {
			log.Printf("[WARN] fetch of %s (%q) failed: %v", req.QueueID, req.Title, res.Err)
			if f.Reporter != nil {
				f.Reporter.OnError(fmt.Sprintf("failed to fetch %s: %v", displayName(req), res.Err))
			}
			return
		}
		log.Printf("[INFO] fetched %s (%q) to %s", req.QueueID, req.Title, res.Path)
	})
}

// Results returns outcomes of finished fetches in completion order
func (f *Fetcher) Results() []Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Result(nil), f.results...)
}

// Wait for all scheduled fetches
func (f *Fetcher) Wait() {
	f.group.Wait()
}

// Close cancels running fetches and waits for them
func (f *Fetcher) Close() {
	f.cancel()
	f.group.Wait()
}

func (f *Fetcher) fetch(ctx context.Context, id string) (string, error) {
	if !f.Conditions.IsEmpty() {
		cond := f.Conditions
		if cond.DiskFreePath == "" {
			cond.DiskFreePath = f.Dir
		}
		attempt := 0
		rptr := repeater.New(&strategy.FixedDelay{Repeats: f.CheckTries, Delay: f.CheckDelay})
		err := rptr.Do(ctx, func() error {
			attempt++
			ok, reason := f.Checker.Check(cond)
			if !ok {
				log.Printf("[DEBUG] fetch of %s postponed, attempt %d: %s", id, attempt, reason)
				return fmt.Errorf("%w: %s", ErrConditionsNotMet, reason)
			}
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", err
		}
	}
	return f.Downloader.DownloadFile(ctx, id, f.Dir)
}

func displayName(req request.OnQueueFinished) string {
	if req.Title != "" {
		return req.Title
	}
	if req.URL != "" {
		return req.URL
	}
	return req.QueueID
}
