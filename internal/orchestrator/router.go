package orchestrator

import (
	"context"
	"fmt"
)

// Next returns the stage that follows s. StageDone is its own successor.
func (s Stage) Next() Stage {
	switch s {
	case StageResearch:
		return StageAnalysis
	case StageAnalysis:
		return StageReport
	case StageReport:
		return StageDone
	case StageDone:
		return StageDone
	default:
		return StageDone
	}
}

// Router maps pipeline stages to their registered executors and checks every
// transition an executor makes.
type Router struct {
	executors map[Stage]StageExecutor
}

// NewRouter creates a Router with an empty executor registry.
func NewRouter() *Router {
	return &Router{
		executors: make(map[Stage]StageExecutor),
	}
}

// RegisterExecutor associates an executor with a pipeline stage.
func (r *Router) RegisterExecutor(stage Stage, exec StageExecutor) {
	r.executors[stage] = exec
}

// Route runs the executor registered for st.Stage and returns the state it
// produced. A terminal state is returned unchanged. Executor errors are
// returned as-is alongside the input state.
func (r *Router) Route(ctx context.Context, st State) (State, error) {
	if st.Terminal() {
		return st, nil
	}

	exec, ok := r.executors[st.Stage]
	if !ok {
		return st, fmt.Errorf("router: no executor registered for stage %d (%s)", st.Stage, st.Stage)
	}

	next, err := exec.Execute(ctx, st)
	if err != nil {
		return st, err
	}

	if err := checkTransition(st, next); err != nil {
		return st, fmt.Errorf("router: stage %s: %w", st.Stage, err)
	}
	return next, nil
}

// RouteAll routes st stage by stage until it reaches StageDone, stopping at
// the first failure.
func (r *Router) RouteAll(ctx context.Context, st State) (State, error) {
	for !st.Terminal() {
		next, err := r.Route(ctx, st)
		if err != nil {
			return st, err
		}
		st = next
	}
	return st, nil
}

// checkTransition enforces the state invariants between two consecutive
// states.
func checkTransition(prev, next State) error {
	if want := prev.Stage.Next(); next.Stage != want {
		return fmt.Errorf("%w: moved to %s, want %s", ErrInvalidTransition, next.Stage, want)
	}
	if len(next.History) != len(prev.History)+1 {
		return fmt.Errorf("%w: history grew by %d entries, want 1",
			ErrInvalidTransition, len(next.History)-len(prev.History))
	}
	if prev.Findings != nil && !prev.Findings.Equal(next.Findings) {
		return fmt.Errorf("%w: findings changed after research", ErrInvalidTransition)
	}
	if next.Findings == nil && next.Stage != StageResearch {
		return fmt.Errorf("%w: no findings after research", ErrInvalidTransition)
	}
	if prev.AnalysisComplete && !next.AnalysisComplete {
		return fmt.Errorf("%w: analysis completion reverted", ErrInvalidTransition)
	}
	if (next.FinalReport != "") != next.Terminal() {
		return fmt.Errorf("%w: final report must be set exactly when done", ErrInvalidTransition)
	}
	return nil
}
