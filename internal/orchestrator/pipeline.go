package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time interface check.
var _ Orchestrator = (*Pipeline)(nil)

// Pipeline drives a run from the initial query to the terminal state. Stage
// dispatch goes through a Router; boundaries are reported to a
// ProgressReporter and the global zap logger. A Pipeline keeps no per-run
// state and may be shared across concurrent runs.
type Pipeline struct {
	cfg      Config
	router   *Router
	progress *ProgressReporter
}

// NewPipeline creates a Pipeline with the three stage executors registered on
// a fresh Router.
func NewPipeline(cfg Config, ex Executors) *Pipeline {
	if cfg.Name == "" {
		cfg.Name = "briefing"
	}

	router := NewRouter()
	router.RegisterExecutor(StageResearch, ex.Research)
	router.RegisterExecutor(StageAnalysis, ex.Analysis)
	router.RegisterExecutor(StageReport, ex.Report)

	return &Pipeline{
		cfg:      cfg,
		router:   router,
		progress: NewProgressReporter(),
	}
}

// Run executes research, analysis and report for query and returns the
// terminal state. Any stage failure aborts the run; the zero State is returned
// together with the originating error.
func (p *Pipeline) Run(ctx context.Context, query string) (State, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("pipeline", p.cfg.Name), zap.String("run_id", runID))

	st, err := NewState(query)
	if err != nil {
		return State{}, err
	}
	log.Info("pipeline: starting run", zap.String("query", query))

	for _, stage := range Stages() {
		if stage != StageDone {
			p.progress.Emit(ProgressEvent{RunID: runID, Stage: stage, Status: ProgressPending})
		}
	}

	for !st.Terminal() {
		stage := st.Stage
		p.progress.Emit(ProgressEvent{RunID: runID, Stage: stage, Status: ProgressWorking})

		start := time.Now()
		next, err := p.router.Route(ctx, st)
		duration := time.Since(start).Milliseconds()

		if err != nil {
			p.progress.Emit(ProgressEvent{
				RunID:   runID,
				Stage:   stage,
				Status:  ProgressFailed,
				Message: err.Error(),
			})
			log.Error("pipeline: stage failed",
				zap.Stringer("stage", stage),
				zap.Int64("duration_ms", duration),
				zap.Error(err),
			)
			return State{}, err
		}

		p.progress.Emit(ProgressEvent{RunID: runID, Stage: stage, Status: ProgressComplete})
		log.Info("pipeline: stage complete",
			zap.Stringer("stage", stage),
			zap.Stringer("next", next.Stage),
			zap.Int64("duration_ms", duration),
		)
		if p.cfg.Verbose {
			log.Debug("pipeline: stage output",
				zap.Stringer("stage", stage),
				zap.String("text", next.History[len(next.History)-1].Text),
			)
		}
		st = next
	}

	log.Info("pipeline: run complete", zap.Int("history", len(st.History)))
	return st, nil
}

// Progress returns a channel that emits progress events. Nothing is emitted
// until the first call, so a pipeline served to concurrent callers that never
// read progress does not fill the buffer.
func (p *Pipeline) Progress() <-chan ProgressEvent {
	return p.progress.Subscribe()
}

// Close shuts down the progress reporter. Callers should invoke this when the
// pipeline is no longer needed.
func (p *Pipeline) Close() {
	p.progress.Close()
}
