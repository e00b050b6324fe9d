package sink

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/queue"
	"github.com/umputun/yourtube/app/stream"
)

var (
	_ stream.Sink = (*Console)(nil)
	_ queue.Sink  = (*Console)(nil)
	_ Display     = (*Logger)(nil)
	_ Display     = Multi{}
)

func TestConsole_Stream(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(ConsoleParams{Out: buf})
	c.OnStatusChange(enums.StatusKindConnected, "Connected")
	c.OnLogLine("[download]  10.0% of 5MiB")
	c.OnLogLine("   ")
	c.OnStatusChange(enums.StatusKindComplete, "Complete")
	c.OnError("boom")

	assert.Equal(t, "[connected] Connected\n  [download]  10.0% of 5MiB\n[complete] Complete\nerror: boom\n", buf.String(),
		"no colors for non-terminal writers")
}

func TestConsole_Quiet(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(ConsoleParams{Out: buf, Quiet: true})
	c.OnLogLine("some line")
	c.OnStatusChange(enums.StatusKindProgress, "Status: some line")
	assert.Equal(t, "[progress] Status: some line\n", buf.String())
}

func TestConsole_Queue(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(ConsoleParams{Out: buf})
	c.OnQueueItemUpdate(queue.Item{ID: "q1", Status: enums.QueueStatusProcessing, Progress: 42.5, Title: "video"})
	c.OnQueueItemUpdate(queue.Item{ID: "q2", Status: enums.QueueStatusQueued, URL: "https://example.com/v"})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "q1 processing  42.5% video", lines[0])
	assert.Equal(t, "q2 queued"+strings.Repeat(" ", 7)+"0.0% https://example.com/v", lines[1])
}

func TestRenderQueue(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 20, 30, 0, time.Local)
	out := RenderQueue([]queue.Item{
		{ID: "q1", Status: enums.QueueStatusCompleted, Progress: 100, Title: "first", Quality: "720p", CreatedAt: created},
		{ID: "q2", Status: enums.QueueStatusFailed, Progress: 3, Title: "second", Error: "unsupported"},
	})
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "2025-03-01 10:20:30")
	assert.Contains(t, out, "second (unsupported)")
	assert.Equal(t, 6, strings.Count(out, "\n")+1, "borders, header and two rows")
}

func TestLogger(t *testing.T) {
	var lines []string
	l := &Logger{L: log.Func(func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) })}
	l.OnStatusChange(enums.StatusKindLost, "Connection Lost")
	l.OnStatusChange(enums.StatusKindConnected, "Connected")
	l.OnLogLine("line")
	l.OnError("failed")
	l.OnQueueItemUpdate(queue.Item{ID: "q1", Status: enums.QueueStatusQueued, Title: "t"})
	l.OnQueueSnapshot(make([]queue.Item, 3))

	assert.Equal(t, []string{
		"[WARN] job status lost: Connection Lost",
		"[INFO] job status connected: Connected",
		"[DEBUG] job log: line",
		"[WARN] failed",
		`[INFO] queue item q1 queued 0.0% "t"`,
		"[DEBUG] queue snapshot, 3 items",
	}, lines)
}

func TestMulti(t *testing.T) {
	b1, b2 := &bytes.Buffer{}, &bytes.Buffer{}
	m := Multi{NewConsole(ConsoleParams{Out: b1}), NewConsole(ConsoleParams{Out: b2, Quiet: true})}
	m.OnLogLine("line")
	m.OnError("err")
	m.OnQueueSnapshot(nil)
	m.OnQueueItemUpdate(queue.Item{ID: "x", Status: enums.QueueStatusQueued})
	m.OnStatusChange(enums.StatusKindLost, "Connection Lost")

	assert.True(t, strings.HasPrefix(b1.String(), "  line\nerror: err\n"))
	assert.True(t, strings.HasPrefix(b2.String(), "error: err\n"))
	assert.True(t, strings.HasSuffix(b1.String(), "[lost] Connection Lost\n"))
	assert.True(t, strings.HasSuffix(b2.String(), "[lost] Connection Lost\n"))
}
