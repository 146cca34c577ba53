package orchestrator

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when a run is started without query text.
	ErrEmptyQuery = errors.New("orchestrator: query must not be empty")

	// ErrInvalidTransition is returned when an executor leaves the state in a
	// shape the router does not accept.
	ErrInvalidTransition = errors.New("orchestrator: invalid stage transition")
)

// Capabilities a stage can fail in.
const (
	CapabilityRetrieve = "retrieve"
	CapabilityGenerate = "generate"
)

// GenerationFailure reports that an external capability call made by a stage
// failed or returned an unusable response.
type GenerationFailure struct {
	Stage      Stage
	Capability string
	Err        error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("%s stage: %s failed: %v", e.Stage, e.Capability, e.Err)
}

func (e *GenerationFailure) Unwrap() error { return e.Err }

// PreconditionFailure reports that a stage was handed a state that violates
// its input contract. It indicates a driver bug rather than a runtime
// condition.
type PreconditionFailure struct {
	Stage  Stage
	Reason string
}

func (e *PreconditionFailure) Error() string {
	return fmt.Sprintf("%s stage: precondition failed: %s", e.Stage, e.Reason)
}
