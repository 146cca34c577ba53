package agent

import (
	"context"
	"strings"

	"github.com/dusk-indust/briefing/internal/llm"
	"github.com/dusk-indust/briefing/internal/orchestrator"
)

// Compile-time interface check.
var _ Agent = (*BaseAgent)(nil)

// ProcessFunc is the function that stage agents implement. It receives a
// private copy of the state, already checked to be at the agent's stage, and
// returns the updated state.
type ProcessFunc func(ctx context.Context, st orchestrator.State) (orchestrator.State, error)

// BaseAgent provides shared boilerplate for stage agents: stage checking,
// state copying and generation error mapping. Stage agents embed BaseAgent and
// provide a ProcessFunc.
type BaseAgent struct {
	stage   orchestrator.Stage
	gen     llm.Generator
	process ProcessFunc
}

// NewBaseAgent creates a BaseAgent for stage with the given generator and
// process function.
func NewBaseAgent(stage orchestrator.Stage, gen llm.Generator, process ProcessFunc) *BaseAgent {
	return &BaseAgent{
		stage:   stage,
		gen:     gen,
		process: process,
	}
}

// Stage returns the pipeline stage the agent handles.
func (b *BaseAgent) Stage() orchestrator.Stage {
	return b.stage
}

// Execute checks that st is at the agent's stage and runs the process
// function on a copy of it. On failure the caller's state is left as it was.
func (b *BaseAgent) Execute(ctx context.Context, st orchestrator.State) (orchestrator.State, error) {
	if st.Stage != b.stage {
		return st, b.precondition("state is at stage " + st.Stage.String())
	}
	next, err := b.process(ctx, st.Clone())
	if err != nil {
		return st, err
	}
	return next, nil
}

// generate runs the generator and maps failures, including blank output, to
// a GenerationFailure for this stage. Non-blank text is returned verbatim.
func (b *BaseAgent) generate(ctx context.Context, prompt string) (string, error) {
	text, err := b.gen.Generate(ctx, prompt)
	if err != nil {
		return "", &orchestrator.GenerationFailure{
			Stage:      b.stage,
			Capability: orchestrator.CapabilityGenerate,
			Err:        err,
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", &orchestrator.GenerationFailure{
			Stage:      b.stage,
			Capability: orchestrator.CapabilityGenerate,
			Err:        llm.ErrEmptyResponse,
		}
	}
	return text, nil
}

func (b *BaseAgent) precondition(reason string) error {
	return &orchestrator.PreconditionFailure{Stage: b.stage, Reason: reason}
}
