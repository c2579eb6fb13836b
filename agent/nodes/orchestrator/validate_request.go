// Package orchestratornode holds the graph nodes of one orchestration
// run plus the coordination pattern functions the dispatch node selects
// from. Nodes receive their collaborators as arguments; the orchestrator
// service binds them when compiling the graph.
package orchestratornode

import (
	"errors"
	"strings"
	"time"

	auditx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/audit"
	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	statex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/state"
)

var (
	ErrInvalidQuery   = errors.New("query is empty")
	ErrMissingLog     = errors.New("activity log is missing")
	ErrUnknownPattern = errors.New("no pattern for intent kind")
)

type GraphInput struct {
	Query  string
	Caller contractx.CallerContext
	Log    *auditx.Log
}

type GraphOutput struct {
	Response contractx.Response
}

type GraphState struct {
	Query  string
	Caller contractx.CallerContext
	Now    time.Time

	Log    *auditx.Log
	Run    *statex.RunContext
	Intent contractx.Intent

	Results   []contractx.TaskResult
	Escalated bool

	Text   string
	Errors []contractx.ErrorInfo
}

const actorOrchestrator = "orchestrator"

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	if in.Log == nil {
		return nil, ErrMissingLog
	}

	query := strings.TrimSpace(in.Query)
	if query == "" {
		in.Log.Error(actorOrchestrator, "receive", "empty query")
		return nil, ErrInvalidQuery
	}

	now := nowFn().UTC()
	in.Log.OK(actorOrchestrator, "receive", query)

	return &GraphState{
		Query:  query,
		Caller: in.Caller,
		Now:    now,
		Log:    in.Log,
		Run:    statex.NewRunContext(query, in.Caller, now),
	}, nil
}
