// Package events declares the event payloads published by the execution
// engine over the eventbus.
package events

import "time"

// HTTPStart is emitted when the HTTP handler accepts a request.
type HTTPStart struct {
	Method string
	Path   string
}

// HTTPFinish is emitted when the HTTP handler finishes a request.
type HTTPFinish struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
}

// ExecutionStart is emitted before executing an operation.
type ExecutionStart struct {
	OperationName string
	OperationType string
}

// ExecutionFinish is emitted after executing an operation.
type ExecutionFinish struct {
	OperationName string
	OperationType string
	ErrorCount    int
	Duration      time.Duration
}

// ResolveStart is emitted before a field resolver runs.
type ResolveStart struct {
	TypeName  string
	FieldName string
	Path      string
}

// ResolveFinish is emitted after a field resolver returns. Error carries the
// resolver's error message, empty on success.
type ResolveFinish struct {
	TypeName  string
	FieldName string
	Path      string
	Duration  time.Duration
	Error     string
}
