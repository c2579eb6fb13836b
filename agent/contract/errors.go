package contract

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("entity not found")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("backing store failure")
)

type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindValidation     ErrorKind = "validation"
	KindUpstream       ErrorKind = "upstream"
	KindPartialFailure ErrorKind = "partial_failure"
)

// ErrorInfo is the structured form of a failure as it appears on a
// TaskResult and in a Response errors list.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Action  Action    `json:"action,omitempty"`
	Message string    `json:"message"`
}

// KindOf maps an error onto the taxonomy. Timeouts count as upstream
// failures: the call was well-formed, the collaborator did not answer.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, context.DeadlineExceeded):
		return KindUpstream
	default:
		return KindUpstream
	}
}

// InfoFrom folds an error into its structured form for the given action.
func InfoFrom(action Action, err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{
		Kind:    KindOf(err),
		Action:  action,
		Message: err.Error(),
	}
}
