// Package stream implements the live job-progress tracker. A Tracker owns at most one Session,
// follows the job's log over a push connection, detects completion from the log text and
// recovers from lost connections by reconnecting with the same job handle.
package stream

import (
	"context"
	"errors"
	"sync"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/request"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/conn.go -pkg mocks -skip-ensure -fmt goimports . Conn
//go:generate moq -out mocks/sink.go -pkg mocks -skip-ensure -fmt goimports . Sink
//go:generate moq -out mocks/submitter.go -pkg mocks -skip-ensure -fmt goimports . Submitter
//go:generate moq -out mocks/event_handler.go -pkg mocks -skip-ensure -fmt goimports . EventHandler

var (
	// ErrTransportLost reports a definitively closed push connection
	ErrTransportLost = errors.New("connection lost")
	// ErrTransportTransient reports a push connection being re-established by the transport itself
	ErrTransportTransient = errors.New("connection interrupted")
)

// JobHandle identifies a submitted job on the push event source
type JobHandle struct {
	ID    string `json:"id"`    // server job id
	Token string `json:"token"` // auxiliary token, the job's output subdirectory
}

// JobRequest is a download job submission
type JobRequest struct {
	URL       string
	Directory string
}

// Source opens push connections delivering a job's log lines.
// Listener callbacks for one connection are delivered sequentially, in arrival order,
// from a goroutine other than the caller of Open.
type Source interface {
	Open(ctx context.Context, h JobHandle, l Listener) (Conn, error)
}

// Conn is an open push connection
type Conn interface {
	Close() error
}

// Listener receives push connection events
type Listener interface {
	OnOpen()
	OnMessage(data string)
	OnError(err error) // err wraps ErrTransportLost or ErrTransportTransient
}

// Resumable is implemented by listeners continuing a session that may have received lines already.
// The transport resumes from the returned position instead of delivering replayed lines again.
type Resumable interface {
	Position() *Position
}

// Position is the read position of a session, shared by all its connections
type Position struct {
	mu        sync.Mutex
	lastID    string
	delivered int
}

// Load returns the last event id and the number of replayable lines delivered
func (p *Position) Load() (lastID string, delivered int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastID, p.delivered
}

// Store saves the read position
func (p *Position) Store(lastID string, delivered int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastID, p.delivered = lastID, delivered
}

// Sink receives display notifications. Called with the tracker lock held, must not call back into the tracker.
type Sink interface {
	OnStatusChange(kind enums.StatusKind, text string)
	OnLogLine(line string)
	OnError(msg string)
}

// Submitter submits download jobs
type Submitter interface {
	SubmitJob(ctx context.Context, req JobRequest) (JobHandle, error)
}

// EventHandler is notified about session lifecycle. Called with the tracker lock held.
type EventHandler interface {
	OnStreamStart(req request.OnStreamStart)
	OnStreamComplete(req request.OnStreamComplete)
}
