package stream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/request"
	"github.com/umputun/yourtube/app/status"
)

const (
	defaultCompletionGrace = 5 * time.Second
	defaultReconnectDelay  = 5 * time.Second
	defaultMaxLogLines     = 1000
)

// Tracker follows the live output of one job at a time
type Tracker struct {
	source        Source
	sink          Sink
	submitter     Submitter
	handlers      []EventHandler
	grace         time.Duration
	reconnect     time.Duration
	maxReconnects int
	maxLogLines   int

	mu      sync.Mutex
	session *Session
	last    *Session // most recent session, kept after retirement for Wait
}

// Params configures Tracker
type Params struct {
	Source          Source
	Sink            Sink
	Submitter       Submitter      // optional, needed by Submit only
	Handlers        []EventHandler // optional lifecycle handlers
	CompletionGrace time.Duration  // delay between completion and teardown, 5s by default
	ReconnectDelay  time.Duration  // delay before reconnecting a lost connection, 5s by default
	MaxReconnects   int            // reconnect attempts per session, 0 for unlimited
	MaxLogLines     int            // log lines kept in the session snapshot, 1000 by default
}

// Session is the live state of the tracked job. All fields are guarded by the owning Tracker.
type Session struct {
	handle      JobHandle
	ctx         context.Context
	state       enums.ConnState
	terminal    bool
	completed   bool
	startedAt   time.Time
	lastEventAt time.Time
	lines       []string
	lineCount   int
	status      string
	reconnects  int
	gen         uint64 // connection generation, callbacks from older generations are stale
	teardownSeq uint64
	conn        Conn
	pos         *Position // shared by the session's connections, a reconnect skips lines already logged
	retired     bool
	done        chan struct{}

	reconnectTimer *time.Timer
	teardownTimer  *time.Timer
}

// SessionInfo is a snapshot of the tracked session
type SessionInfo struct {
	Handle      JobHandle       `json:"handle"`
	State       enums.ConnState `json:"state"`
	Terminal    bool            `json:"terminal"`
	StartedAt   time.Time       `json:"started_at"`
	LastEventAt time.Time       `json:"last_event_at,omitzero"`
	Status      string          `json:"status"`
	Lines       int             `json:"lines"`
	Reconnects  int             `json:"reconnects"`
	Log         []string        `json:"log,omitempty"`
}

// NewTracker makes a Tracker with defaults applied
func NewTracker(p Params) *Tracker {
	res := &Tracker{
		source:        p.Source,
		sink:          p.Sink,
		submitter:     p.Submitter,
		handlers:      p.Handlers,
		grace:         p.CompletionGrace,
		reconnect:     p.ReconnectDelay,
		maxReconnects: p.MaxReconnects,
		maxLogLines:   p.MaxLogLines,
	}
	if res.grace <= 0 {
		res.grace = defaultCompletionGrace
	}
	if res.reconnect <= 0 {
		res.reconnect = defaultReconnectDelay
	}
	if res.maxLogLines <= 0 {
		res.maxLogLines = defaultMaxLogLines
	}
	return res
}

// Submit sends the job to the submitter and starts tracking the returned handle.
// A rejected submission is reported to the sink and returned, it is never retried.
func (t *Tracker) Submit(ctx context.Context, req JobRequest) (JobHandle, error) {
	if t.submitter == nil {
		return JobHandle{}, errors.New("job submitter is not configured")
	}
	h, err := t.submitter.SubmitJob(ctx, req)
	if err != nil {
		t.mu.Lock()
		t.sink.OnStatusChange(enums.StatusKindError, "Error")
		t.sink.OnError(err.Error())
		t.mu.Unlock()
		return JobHandle{}, fmt.Errorf("submit job for %s: %w", req.URL, err)
	}
	log.Printf("[INFO] job %s accepted, output in %q", h.ID, h.Token)
	t.Start(ctx, h)
	return h, nil
}

// Start begins tracking the job. A session for another job is retired first. For the same job
// the previous connection is closed before the new one is opened and the collected log is kept.
// Connection failures are reported through the sink, not returned.
func (t *Tracker) Start(ctx context.Context, h JobHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start(ctx, h, false)
}

// Stop closes the connection, cancels pending timers and forgets the job. Safe to call repeatedly.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return
	}
	log.Printf("[DEBUG] stop tracking job %s", t.session.handle.ID)
	t.retire(t.session)
}

// Wait blocks until the current or most recent session is retired and reports whether completion was observed
func (t *Tracker) Wait(ctx context.Context) (bool, error) {
	t.mu.Lock()
	s := t.session
	if s == nil {
		s = t.last
	}
	t.mu.Unlock()
	if s == nil {
		return false, nil
	}
	select {
	case <-s.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return s.completed, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Session returns a snapshot of the tracked session, false if nothing is tracked
func (t *Tracker) Session() (SessionInfo, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session
	if s == nil {
		return SessionInfo{}, false
	}
	return SessionInfo{
		Handle:      s.handle,
		State:       s.state,
		Terminal:    s.terminal,
		StartedAt:   s.startedAt,
		LastEventAt: s.lastEventAt,
		Status:      s.status,
		Lines:       s.lineCount,
		Reconnects:  s.reconnects,
		Log:         append([]string(nil), s.lines...),
	}, true
}

// start opens a connection for the job. A reconnect resumes the read position of the session,
// any other start of the same job reads its log from the beginning again.
func (t *Tracker) start(ctx context.Context, h JobHandle, resume bool) {
	s := t.session
	switch {
	case s != nil && s.handle.ID == h.ID:
		s.closeConn()
		s.stopTimers()
		s.handle = h
		s.terminal, s.completed = false, false
		if !resume {
			s.pos = &Position{}
		}
	default:
		if s != nil {
			log.Printf("[INFO] job %s superseded by %s", s.handle.ID, h.ID)
			t.retire(s)
		}
		s = &Session{handle: h, startedAt: time.Now(), state: enums.ConnStateIdle, pos: &Position{},
			done: make(chan struct{})}
		t.session, t.last = s, s
		for _, eh := range t.handlers {
			eh.OnStreamStart(request.OnStreamStart{JobID: h.ID, Token: h.Token, StartTime: s.startedAt})
		}
	}

	s.ctx = ctx
	s.gen++
	s.state = enums.ConnStateConnecting
	conn, err := t.source.Open(ctx, h, &listener{t: t, s: s, gen: s.gen})
	if err != nil {
		log.Printf("[WARN] can't open stream for job %s: %v", h.ID, err)
		t.lost(s, err)
		return
	}
	s.conn = conn
	log.Printf("[DEBUG] stream for job %s opening, generation %d", h.ID, s.gen)
}

// current reports whether a callback of the given connection generation still belongs to the live session
func (t *Tracker) current(s *Session, gen uint64) bool {
	return t.session == s && !s.retired && s.gen == gen
}

func (t *Tracker) onOpen(s *Session, gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.current(s, gen) {
		return
	}
	s.state = enums.ConnStateOpen
	t.sink.OnStatusChange(enums.StatusKindConnected, "Connected")
}

func (t *Tracker) onMessage(s *Session, gen uint64, line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.current(s, gen) {
		return
	}

	s.lastEventAt = time.Now()
	s.appendLine(line, t.maxLogLines)
	t.sink.OnLogLine(line)

	class := status.Classify(line)
	if txt, ok := status.DisplayText(line, class); ok {
		s.status = txt
		t.sink.OnStatusChange(enums.StatusKindProgress, txt)
	}
	if class != enums.LineClassCompleted || s.terminal {
		return
	}

	s.terminal, s.completed = true, true
	s.status = "Complete"
	t.sink.OnStatusChange(enums.StatusKindComplete, "Complete")
	log.Printf("[INFO] job %s complete, closing stream in %v", s.handle.ID, t.grace)
	s.teardownSeq++
	seq := s.teardownSeq
	s.teardownTimer = time.AfterFunc(t.grace, func() { t.teardown(s, seq) })
}

func (t *Tracker) onError(s *Session, gen uint64, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.current(s, gen) {
		return
	}
	if errors.Is(err, ErrTransportTransient) {
		log.Printf("[DEBUG] stream for job %s interrupted: %v", s.handle.ID, err)
		s.state = enums.ConnStateConnecting
		t.sink.OnStatusChange(enums.StatusKindConnecting, "Connecting...")
		return
	}
	log.Printf("[WARN] stream for job %s lost: %v", s.handle.ID, err)
	t.lost(s, err)
}

// lost handles a definitively closed connection and schedules a single reconnect for unfinished jobs
func (t *Tracker) lost(s *Session, err error) {
	s.closeConn()
	s.gen++ // anything still arriving from the dead connection is stale
	s.state = enums.ConnStateClosed
	t.sink.OnStatusChange(enums.StatusKindLost, "Connection Lost")

	if s.terminal || s.ctx.Err() != nil {
		return
	}
	if t.maxReconnects > 0 && s.reconnects >= t.maxReconnects {
		t.sink.OnError(fmt.Sprintf("giving up on job %s after %d reconnects: %v", s.handle.ID, s.reconnects, err))
		t.retire(s)
		return
	}

	if s.reconnectTimer != nil {
		s.reconnectTimer.Stop()
	}
	gen := s.gen
	s.reconnectTimer = time.AfterFunc(t.reconnect, func() { t.reconnectFired(s, gen) })
}

func (t *Tracker) reconnectFired(s *Session, gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.current(s, gen) {
		return
	}
	s.reconnectTimer = nil
	s.reconnects++
	s.state = enums.ConnStateReconnecting
	t.sink.OnStatusChange(enums.StatusKindConnecting, "Reconnecting...")
	log.Printf("[INFO] reconnecting to job %s, attempt %d", s.handle.ID, s.reconnects)
	t.start(s.ctx, s.handle, true)
}

func (t *Tracker) teardown(s *Session, seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != s || s.retired || s.teardownSeq != seq {
		return
	}
	log.Printf("[DEBUG] teardown of completed job %s", s.handle.ID)
	t.retire(s)
}

// retire closes everything the session holds and releases the job handle, runs once per session
func (t *Tracker) retire(s *Session) {
	if s.retired {
		return
	}
	s.closeConn()
	s.stopTimers()
	s.retired = true
	s.state = enums.ConnStateClosed
	if t.session == s {
		t.session = nil
	}
	close(s.done)

	for _, eh := range t.handlers {
		eh.OnStreamComplete(request.OnStreamComplete{
			JobID:      s.handle.ID,
			Token:      s.handle.Token,
			StartTime:  s.startedAt,
			EndTime:    time.Now(),
			Completed:  s.completed,
			Lines:      s.lineCount,
			LastStatus: s.status,
			Reconnects: s.reconnects,
		})
	}
}

func (s *Session) appendLine(line string, limit int) {
	s.lineCount++
	s.lines = append(s.lines, line)
	if len(s.lines) > limit {
		s.lines = append(s.lines[:0], s.lines[len(s.lines)-limit:]...)
	}
}

func (s *Session) closeConn() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil {
		log.Printf("[DEBUG] close stream for job %s: %v", s.handle.ID, err)
	}
	s.conn = nil
}

func (s *Session) stopTimers() {
	if s.reconnectTimer != nil {
		s.reconnectTimer.Stop()
		s.reconnectTimer = nil
	}
	if s.teardownTimer != nil {
		s.teardownTimer.Stop()
		s.teardownTimer = nil
	}
	s.teardownSeq++
}

// listener binds connection callbacks to the session and generation that opened the connection
type listener struct {
	t   *Tracker
	s   *Session
	gen uint64
}

func (l *listener) OnOpen()               { l.t.onOpen(l.s, l.gen) }
func (l *listener) OnMessage(data string) { l.t.onMessage(l.s, l.gen, data) }
func (l *listener) OnError(err error)     { l.t.onError(l.s, l.gen, err) }

// Position returns the read position of the session, kept across reconnects
func (l *listener) Position() *Position { return l.s.pos }
