// Package orchestrator drives the run state machine: it classifies a
// query, selects a coordination pattern, sequences specialist calls,
// and always produces a response.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"

	auditx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/audit"
	classifierx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/classifier"
	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	nodex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/nodes/orchestrator"
)

var ErrInvalidQuery = nodex.ErrInvalidQuery

type Option func(*Orchestrator)

// WithNotifier attaches the escalation webhook publisher.
func WithNotifier(n contractx.EscalationNotifier) Option {
	return func(o *Orchestrator) {
		o.deps.Notifier = n
	}
}

// WithSpecialistTimeout bounds each specialist call. Zero disables the
// deadline.
func WithSpecialistTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.deps.Timeout = d
	}
}

// WithClock pins the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

type Orchestrator struct {
	classifier *classifierx.Classifier
	deps       nodex.Deps
	patterns   map[contractx.IntentKind]nodex.PatternFunc

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(cls *classifierx.Classifier, registry contractx.Registry, opts ...Option) (*Orchestrator, error) {
	if cls == nil {
		return nil, errors.New("classifier is required")
	}
	if registry == nil {
		return nil, errors.New("specialist registry is required")
	}

	o := &Orchestrator{
		classifier: cls,
		deps:       nodex.Deps{Registry: registry},
		patterns:   defaultPatterns(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	// A pattern table that does not cover every intent kind is a
	// configuration-shape violation: fatal here, never mid-query.
	for _, kind := range contractx.Kinds() {
		if _, ok := o.patterns[kind]; !ok {
			return nil, fmt.Errorf("pattern table missing intent kind %q", kind)
		}
	}

	graphRunner, err := o.compileHandleQueryGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

func defaultPatterns() map[contractx.IntentKind]nodex.PatternFunc {
	return map[contractx.IntentKind]nodex.PatternFunc{
		contractx.IntentSimpleLookup: nodex.PatternSimpleLookup,
		contractx.IntentNegotiation:  nodex.PatternNegotiation,
		contractx.IntentMultiStep:    nodex.PatternMultiStep,
		contractx.IntentEscalation:   nodex.PatternEscalation,
		contractx.IntentMultiIntent:  nodex.PatternMultiIntent,
		contractx.IntentUnknown:      nodex.PatternUnknown,
	}
}

// HandleQuery runs one query through the graph. It never returns
// without a Response: graph-level failures fold into a degraded one
// carrying the trace collected so far.
func (o *Orchestrator) HandleQuery(ctx context.Context, query string, caller contractx.CallerContext) contractx.Response {
	runLog := auditx.NewLog()

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		Query:  query,
		Caller: caller,
		Log:    runLog,
	})
	if err != nil {
		return degradedResponse(runLog, err)
	}
	return out.Response
}

func degradedResponse(runLog *auditx.Log, err error) contractx.Response {
	kind := contractx.KindUpstream
	text := "We could not process your request. Please try again."
	if errors.Is(err, nodex.ErrInvalidQuery) {
		kind = contractx.KindValidation
		text = "Your request was empty. Please tell us what you need help with."
	}

	return contractx.Response{
		Success:     false,
		Text:        text,
		PatternUsed: contractx.IntentUnknown,
		Trace:       runLog.Entries(),
		Errors: []contractx.ErrorInfo{
			{Kind: kind, Message: err.Error()},
		},
	}
}
