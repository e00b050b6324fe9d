// Package sink provides display sinks for the stream tracker and the queue poller.
// Console renders to a terminal, Logger writes to the application log and Multi fans out to several sinks.
package sink

import (
	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/queue"
	"github.com/umputun/yourtube/app/stream"
)

// Display is a sink for both the stream tracker and the queue poller
type Display interface {
	stream.Sink
	queue.Sink
}

// Multi sends every notification to all sinks in order
type Multi []Display

// OnStatusChange implements stream.Sink
func (m Multi) OnStatusChange(kind enums.StatusKind, text string) {
	for _, d := range m {
		d.OnStatusChange(kind, text)
	}
}

// OnLogLine implements stream.Sink
func (m Multi) OnLogLine(line string) {
	for _, d := range m {
		d.OnLogLine(line)
	}
}

// OnError implements stream.Sink and queue.Sink
func (m Multi) OnError(msg string) {
	for _, d := range m {
		d.OnError(msg)
	}
}

// OnQueueItemUpdate implements queue.Sink
func (m Multi) OnQueueItemUpdate(item queue.Item) {
	for _, d := range m {
		d.OnQueueItemUpdate(item)
	}
}

// OnQueueSnapshot implements queue.Sink
func (m Multi) OnQueueSnapshot(items []queue.Item) {
	for _, d := range m {
		d.OnQueueSnapshot(items)
	}
}
