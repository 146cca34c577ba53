package agent

import (
	"github.com/dusk-indust/briefing/internal/orchestrator"
)

// Agent is the interface that all stage agents implement.
type Agent interface {
	orchestrator.StageExecutor

	// Stage returns the pipeline stage the agent handles.
	Stage() orchestrator.Stage
}
