package orchestratornode

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	statex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/state"
)

// Deps are the collaborators a pattern may use. Notifier is optional.
type Deps struct {
	Registry contractx.Registry
	Notifier contractx.EscalationNotifier

	// Timeout bounds each specialist call when positive. A timeout
	// becomes a TaskResult failure, never an aborted run.
	Timeout time.Duration
}

// PatternFunc executes one coordination pattern, appending every
// specialist result to the graph state. Pattern functions do not
// return errors: failures are folded into TaskResults.
type PatternFunc func(ctx context.Context, in *GraphState, deps Deps)

// DispatchPattern selects the pattern for the classified intent and
// runs it. The pattern table is validated at construction, so a missing
// kind here is a wiring bug, not a query-time condition.
func DispatchPattern(
	ctx context.Context,
	in *GraphState,
	deps Deps,
	patterns map[contractx.IntentKind]PatternFunc,
) (*GraphState, error) {
	if in == nil || in.Run == nil {
		return nil, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}

	fn, ok := patterns[in.Intent.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, in.Intent.Kind)
	}

	if err := in.Run.Advance(statex.PhaseDispatching); err != nil {
		return nil, err
	}
	in.Log.OK(actorOrchestrator, "select_pattern", string(in.Intent.Kind))

	fn(ctx, in, deps)
	return in, nil
}

// callSpecialist runs one specialist task under the optional deadline,
// records it in the activity log, and appends the result to the run.
func callSpecialist(
	ctx context.Context,
	in *GraphState,
	deps Deps,
	spec contractx.Specialist,
	task contractx.Task,
) contractx.TaskResult {
	if deps.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deps.Timeout)
		defer cancel()
	}

	in.Log.OK(actorOrchestrator, "dispatch",
		fmt.Sprintf("%s <- %s", spec.Name(), task.Action))

	res := spec.Handle(ctx, task)

	if res.OK {
		in.Log.OK(spec.Name(), string(task.Action), "completed")
	} else {
		in.Log.Error(spec.Name(), string(task.Action), res.Err.Message)
	}

	in.Results = append(in.Results, res)
	in.Run.AddResult(res)
	return res
}

// appendFailure records an orchestrator-level failure (for example a
// missing customer id) without any specialist call.
func appendFailure(in *GraphState, action contractx.Action, err error) contractx.TaskResult {
	res := contractx.Failure(action, err)
	in.Log.Error(actorOrchestrator, string(action), res.Err.Message)
	in.Results = append(in.Results, res)
	in.Run.AddResult(res)
	return res
}
