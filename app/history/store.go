// Package history keeps a local record of finished stream sessions and queue items in SQLite.
// Store implements stream and queue event handlers, so it can be plugged in next to notifications.
package history

import (
	"context"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/request"
)

const writeTimeout = 5 * time.Second

// StreamRecord is a finished stream session
type StreamRecord struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	Token      string    `json:"token,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	Completed  bool      `json:"completed"`
	Lines      int       `json:"lines"`
	LastStatus string    `json:"last_status"`
	Reconnects int       `json:"reconnects"`
}

// QueueRecord is a queue item which reached terminal status
type QueueRecord struct {
	ID         string            `json:"id"`
	QueueID    string            `json:"queue_id"`
	URL        string            `json:"url"`
	Title      string            `json:"title"`
	Quality    string            `json:"quality"`
	Status     enums.QueueStatus `json:"status"`
	Progress   float64           `json:"progress"`
	Error      string            `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Store implements history persistence using SQLite
type Store struct {
	db *sqlx.DB
}

// NewStore opens or creates the database and its schema
func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// enable WAL mode for concurrent readers
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	res := &Store{db: db}
	if err := res.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return res, nil
}

func (s *Store) initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS streams (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL,
			token TEXT,
			started_at INTEGER,
			ended_at INTEGER,
			completed BOOLEAN DEFAULT 0,
			lines INTEGER DEFAULT 0,
			last_status TEXT,
			reconnects INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS queue_items (
			id TEXT PRIMARY KEY,
			queue_id TEXT NOT NULL,
			url TEXT,
			title TEXT,
			quality TEXT,
			status TEXT,
			progress REAL,
			error TEXT,
			created_at INTEGER,
			finished_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_streams_ended_at ON streams(ended_at)`,
		`CREATE INDEX IF NOT EXISTS idx_queue_items_finished_at ON queue_items(finished_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// RecordStream stores a retired stream session
func (s *Store) RecordStream(ctx context.Context, req request.OnStreamComplete) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO streams (id, job_id, token, started_at, ended_at, completed, lines, last_status, reconnects)
		VALUES (:id, :job_id, :token, :started_at, :ended_at, :completed, :lines, :last_status, :reconnects)`,
		streamRow{
			ID:         uuid.NewString(),
			JobID:      req.JobID,
			Token:      req.Token,
			StartedAt:  unixMilli(req.StartTime),
			EndedAt:    unixMilli(req.EndTime),
			Completed:  req.Completed,
			Lines:      req.Lines,
			LastStatus: req.LastStatus,
			Reconnects: req.Reconnects,
		})
	if err != nil {
		return fmt.Errorf("failed to record stream %s: %w", req.JobID, err)
	}
	return nil
}

// RecordQueue stores a finished queue item
func (s *Store) RecordQueue(ctx context.Context, req request.OnQueueFinished) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO queue_items (id, queue_id, url, title, quality, status, progress, error, created_at, finished_at)
		VALUES (:id, :queue_id, :url, :title, :quality, :status, :progress, :error, :created_at, :finished_at)`,
		queueRow{
			ID:         uuid.NewString(),
			QueueID:    req.QueueID,
			URL:        req.URL,
			Title:      req.Title,
			Quality:    req.Quality,
			Status:     req.Status,
			Progress:   req.Progress,
			Error:      req.Error,
			CreatedAt:  unixMilli(req.CreatedAt),
			FinishedAt: unixMilli(req.FinishedAt),
		})
	if err != nil {
		return fmt.Errorf("failed to record queue item %s: %w", req.QueueID, err)
	}
	return nil
}

// Streams returns up to limit stream records, most recently ended first. Non-positive limit means no limit.
func (s *Store) Streams(ctx context.Context, limit int) ([]StreamRecord, error) {
	rows := []streamRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM streams ORDER BY ended_at DESC, rowid DESC LIMIT ?`,
		sqlLimit(limit)); err != nil {
		return nil, fmt.Errorf("failed to query streams: %w", err)
	}
	res := make([]StreamRecord, 0, len(rows))
	for _, r := range rows {
		res = append(res, StreamRecord{ID: r.ID, JobID: r.JobID, Token: r.Token, StartedAt: fromUnixMilli(r.StartedAt),
			EndedAt: fromUnixMilli(r.EndedAt), Completed: r.Completed, Lines: r.Lines, LastStatus: r.LastStatus,
			Reconnects: r.Reconnects})
	}
	return res, nil
}

// QueueItems returns up to limit queue records, most recently finished first. Non-positive limit means no limit.
func (s *Store) QueueItems(ctx context.Context, limit int) ([]QueueRecord, error) {
	rows := []queueRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM queue_items ORDER BY finished_at DESC, rowid DESC LIMIT ?`,
		sqlLimit(limit)); err != nil {
		return nil, fmt.Errorf("failed to query queue items: %w", err)
	}
	res := make([]QueueRecord, 0, len(rows))
	for _, r := range rows {
		res = append(res, QueueRecord{ID: r.ID, QueueID: r.QueueID, URL: r.URL, Title: r.Title, Quality: r.Quality,
			Status: r.Status, Progress: r.Progress, Error: r.Error, CreatedAt: fromUnixMilli(r.CreatedAt),
			FinishedAt: fromUnixMilli(r.FinishedAt)})
	}
	return res, nil
}

// OnStreamStart implements stream.EventHandler, only finished sessions are recorded
func (s *Store) OnStreamStart(request.OnStreamStart) {}

// OnStreamComplete implements stream.EventHandler
func (s *Store) OnStreamComplete(req request.OnStreamComplete) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.RecordStream(ctx, req); err != nil {
		log.Printf("[WARN] %v", err)
	}
}

// OnQueueFinished implements queue.EventHandler
func (s *Store) OnQueueFinished(req request.OnQueueFinished) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.RecordQueue(ctx, req); err != nil {
		log.Printf("[WARN] %v", err)
	}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

type streamRow struct {
	ID         string `db:"id"`
	JobID      string `db:"job_id"`
	Token      string `db:"token"`
	StartedAt  int64  `db:"started_at"`
	EndedAt    int64  `db:"ended_at"`
	Completed  bool   `db:"completed"`
	Lines      int    `db:"lines"`
	LastStatus string `db:"last_status"`
	Reconnects int    `db:"reconnects"`
}

type queueRow struct {
	ID         string            `db:"id"`
	QueueID    string            `db:"queue_id"`
	URL        string            `db:"url"`
	Title      string            `db:"title"`
	Quality    string            `db:"quality"`
	Status     enums.QueueStatus `db:"status"`
	Progress   float64           `db:"progress"`
	Error      string            `db:"error"`
	CreatedAt  int64             `db:"created_at"`
	FinishedAt int64             `db:"finished_at"`
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMilli(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v)
}

// sqlLimit maps non-positive limit to sqlite's "no limit"
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
