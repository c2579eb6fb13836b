package orchestratornode

import (
	"fmt"

	classifierx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/classifier"
	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	statex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/state"
)

// ClassifyIntent produces the run's single Intent. The intent is
// immutable from here on.
func ClassifyIntent(in *GraphState, cls *classifierx.Classifier) (*GraphState, error) {
	if in == nil || in.Run == nil {
		return nil, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}

	in.Intent = cls.Classify(in.Query, in.Caller)
	in.Run.RaiseUrgency(in.Intent.Slots.Urgency)

	if err := in.Run.Advance(statex.PhaseClassified); err != nil {
		return nil, err
	}
	in.Log.OK(actorOrchestrator, "classify",
		fmt.Sprintf("intent=%s rule=%s", in.Intent.Kind, in.Intent.Rule))

	return in, nil
}
