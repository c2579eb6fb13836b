// Package specialist provides the two agent variants and their
// registry. Each agent owns one domain's tool registry calls; the
// orchestrator only ever sees the contract interfaces.
package specialist

import (
	"errors"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
)

type registryImpl struct {
	data    contractx.Specialist
	support contractx.Specialist
}

func (r *registryImpl) Data() contractx.Specialist {
	return r.data
}

func (r *registryImpl) Support() contractx.Specialist {
	return r.support
}

func NewRegistry(tools contractx.ToolRegistry) (contractx.Registry, error) {
	if tools == nil {
		return nil, errors.New("tool registry is required")
	}
	return &registryImpl{
		data:    &dataAgent{tools: tools},
		support: &supportAgent{tools: tools},
	}, nil
}
