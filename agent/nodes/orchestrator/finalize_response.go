package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	statex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/state"
)

// FinalizeResponse closes the run. Success means no sub-task failed,
// except for multi-intent runs, which succeed as long as at least one
// sub-task did (partial-failure reporting, not all-or-nothing).
func FinalizeResponse(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Run == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}

	success := len(in.Errors) == 0
	if in.Intent.Kind == contractx.IntentMultiIntent {
		success = len(in.Errors) < len(in.Results)
	}

	phase := statex.PhaseCompleted
	outcome := "completed"
	if !success {
		phase = statex.PhaseFailed
		outcome = "failed"
	}
	if err := in.Run.Advance(phase); err != nil {
		return GraphOutput{}, err
	}
	in.Log.OK(actorOrchestrator, "finalize", outcome)

	return GraphOutput{
		Response: contractx.Response{
			Success:     success,
			Text:        in.Text,
			PatternUsed: in.Intent.Kind,
			Escalated:   in.Escalated,
			Trace:       in.Log.Entries(),
			Errors:      in.Errors,
		},
	}, nil
}
