package tool

import (
	"fmt"
	"regexp"
	"strings"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

var emailShape = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.\w+$`)

// validatePatch rejects a partial update before anything is applied, so
// an update either lands whole or not at all.
func validatePatch(patch storex.CustomerPatch) error {
	if patch.Empty() {
		return fmt.Errorf("%w: no fields to update", contractx.ErrValidation)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", contractx.ErrValidation)
	}
	if patch.Email != nil && !emailShape.MatchString(*patch.Email) {
		return fmt.Errorf("%w: malformed email %q", contractx.ErrValidation, *patch.Email)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", contractx.ErrValidation, *patch.Status)
	}
	return nil
}
