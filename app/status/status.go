// Package status projects raw job output lines and raw queue statuses onto lifecycle classes.
// Both the stream tracker and the queue poller use it, so the rules live in one place.
package status

import (
	"fmt"
	"strings"

	"github.com/umputun/yourtube/app/enums"
)

const (
	completeMarker = "Download Complete"
	endMarker      = "---^-^---"
	alreadyMarker  = "has already been downloaded"
	sleepingMarker = "[download] Sleeping"
)

// Classify maps a single log line to its lifecycle class.
// Exact completion markers win over substring matches, and any completion wins over sleeping.
// Blank lines are keep-alive heartbeats sent every 30s by the server. They are deliberately unclassified
// rather than running, so an idle job keeps its last status instead of showing an empty "Status: ".
func Classify(line string) enums.LineClass {
	switch {
	case line == completeMarker || line == endMarker:
		return enums.LineClassCompleted
	case strings.Contains(line, alreadyMarker):
		return enums.LineClassCompleted
	case strings.Contains(line, sleepingMarker):
		return enums.LineClassSleeping
	case strings.TrimSpace(line) == "":
		return enums.LineClassUnclassified
	default:
		return enums.LineClassRunning
	}
}

// DisplayText returns the status text for a classified line and whether it should replace
// the currently displayed status. Sleeping and unclassified lines keep the previous status.
func DisplayText(line string, class enums.LineClass) (string, bool) {
	switch class {
	case enums.LineClassSleeping, enums.LineClassUnclassified:
		return "", false
	default:
		return "Status: " + line, true
	}
}

// ParseQueue maps a raw server queue status to QueueStatus, ignoring case and surrounding spaces
func ParseQueue(raw string) (enums.QueueStatus, error) {
	st, err := enums.ParseQueueStatus(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return enums.QueueStatus{}, fmt.Errorf("unexpected queue status %q: %w", raw, err)
	}
	return st, nil
}

// IsTerminal reports whether a queue status ends polling for the item
func IsTerminal(st enums.QueueStatus) bool {
	return st == enums.QueueStatusCompleted || st == enums.QueueStatusFailed
}

// ClampProgress bounds a reported progress value to 0..100
func ClampProgress(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
