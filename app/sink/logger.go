package sink

import (
	log "github.com/go-pkgz/lgr"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/queue"
)

// Logger writes all notifications to a log
type Logger struct {
	L log.L
}

// NewLogger makes a Logger on top of the default log
func NewLogger() *Logger {
	return &Logger{L: log.Default()}
}

// OnStatusChange implements stream.Sink
func (l *Logger) OnStatusChange(kind enums.StatusKind, text string) {
	level := "[INFO]"
	if kind == enums.StatusKindLost || kind == enums.StatusKindError {
		level = "[WARN]"
	}
	l.L.Logf("%s job status %s: %s", level, kind, text)
}

// OnLogLine implements stream.Sink
func (l *Logger) OnLogLine(line string) {
	l.L.Logf("[DEBUG] job log: %s", line)
}

// OnError implements stream.Sink and queue.Sink
func (l *Logger) OnError(msg string) {
	l.L.Logf("[WARN] %s", msg)
}

// OnQueueItemUpdate implements queue.Sink
func (l *Logger) OnQueueItemUpdate(item queue.Item) {
	l.L.Logf("[INFO] queue item %s %s %.1f%% %q", item.ID, item.Status, item.Progress, displayTitle(item))
}

// OnQueueSnapshot implements queue.Sink
func (l *Logger) OnQueueSnapshot(items []queue.Item) {
	l.L.Logf("[DEBUG] queue snapshot, %d items", len(items))
}
