// Package enums provides type-safe enumeration types shared by the stream tracker,
// the queue poller and the display sinks.
//
// The enum types are defined as unexported integer types in this file and the
// go:generate directives invoke go-pkgz/enum to produce the exported struct types
// (LineClass, ConnState, StatusKind, QueueStatus) with String, Parse, Must,
// text and sql marshaling in the *_enum.go files.
//
// To regenerate the enum types after modifications:
//
//	go generate ./app/enums
package enums

//go:generate go run github.com/go-pkgz/enum@latest -type lineClass -lower
//go:generate go run github.com/go-pkgz/enum@latest -type connState -lower
//go:generate go run github.com/go-pkgz/enum@latest -type statusKind -lower
//go:generate go run github.com/go-pkgz/enum@latest -type queueStatus -lower

// lineClass is the lifecycle class of a single log line.
// Use the exported LineClass type and its constants in actual code.
type lineClass int

const (
	lineClassRunning lineClass = iota
	lineClassSleeping
	lineClassCompleted
	lineClassUnclassified
)

// connState is the state of a push connection session.
// Use the exported ConnState type and its constants in actual code.
type connState int

const (
	connStateIdle connState = iota
	connStateConnecting
	connStateOpen
	connStateReconnecting
	connStateClosed
)

// statusKind is the kind of a display status notification.
// Use the exported StatusKind type and its constants in actual code.
type statusKind int

const (
	statusKindConnected statusKind = iota
	statusKindConnecting
	statusKindLost
	statusKindProgress
	statusKindComplete
	statusKindError
)

// queueStatus is the server-side status of a queued download.
// Use the exported QueueStatus type and its constants in actual code.
type queueStatus int

const (
	queueStatusQueued queueStatus = iota
	queueStatusProcessing
	queueStatusFailed
	queueStatusCompleted
)
