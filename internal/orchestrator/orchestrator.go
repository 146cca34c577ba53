package orchestrator

import "context"

// Stage identifies a pipeline stage. Stages advance in a fixed order:
// research, analysis, report, done.
type Stage int

const (
	StageResearch Stage = iota
	StageAnalysis
	StageReport
	StageDone
)

func (s Stage) String() string {
	names := [...]string{
		"research",
		"analysis",
		"report",
		"done",
	}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{StageResearch, StageAnalysis, StageReport, StageDone}
}

// StageExecutor runs one pipeline stage. It receives the current state and
// returns a new state reflecting its updates; the input is never modified.
type StageExecutor interface {
	Execute(ctx context.Context, st State) (State, error)
}

// ExecutorFunc adapts a plain function to StageExecutor.
type ExecutorFunc func(ctx context.Context, st State) (State, error)

// Execute calls f(ctx, st).
func (f ExecutorFunc) Execute(ctx context.Context, st State) (State, error) {
	return f(ctx, st)
}

// ProgressEvent is emitted at each stage boundary during a run.
type ProgressEvent struct {
	RunID   string
	Stage   Stage
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a stage within a run.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// Orchestrator runs the briefing pipeline.
type Orchestrator interface {
	// Run executes every stage for query and returns the terminal state.
	Run(ctx context.Context, query string) (State, error)

	// Progress returns a channel that emits progress events.
	Progress() <-chan ProgressEvent
}
