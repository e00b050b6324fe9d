// Package request contains request types for stream and queue event handlers
package request

import (
	"time"

	"github.com/umputun/yourtube/app/enums"
)

// OnStreamStart contains parameters for the first connection of a stream session
type OnStreamStart struct {
	JobID     string
	Token     string
	StartTime time.Time
}

// OnStreamComplete contains parameters for a retired stream session
type OnStreamComplete struct {
	JobID      string
	Token      string
	StartTime  time.Time
	EndTime    time.Time
	Completed  bool // completion marker observed
	Lines      int
	LastStatus string
	Reconnects int
}

// OnQueueFinished contains parameters for a queued download reaching terminal status
type OnQueueFinished struct {
	QueueID    string
	URL        string
	Title      string
	Quality    string
	Status     enums.QueueStatus
	Progress   float64
	Error      string
	CreatedAt  time.Time
	FinishedAt time.Time
}
