package agent

import (
	"context"
	"strings"

	"github.com/dusk-indust/briefing/internal/llm"
	"github.com/dusk-indust/briefing/internal/orchestrator"
)

// ReportAgent synthesizes the final report from the findings and the
// analysis insight.
type ReportAgent struct {
	*BaseAgent
}

// NewReportAgent creates a ReportAgent backed by gen.
func NewReportAgent(gen llm.Generator) *ReportAgent {
	ra := &ReportAgent{}
	ra.BaseAgent = NewBaseAgent(orchestrator.StageReport, gen, ra.process)
	return ra
}

func (ra *ReportAgent) process(ctx context.Context, st orchestrator.State) (orchestrator.State, error) {
	switch {
	case !st.AnalysisComplete:
		return st, ra.precondition("analysis has not completed")
	case strings.TrimSpace(st.AnalysisInsight) == "":
		return st, ra.precondition("no analysis insight recorded")
	case st.Findings == nil:
		return st, ra.precondition("findings are absent")
	}

	report, err := ra.generate(ctx, reportPrompt(st.Findings.Topic, st.Findings.Summary, st.AnalysisInsight))
	if err != nil {
		return st, err
	}

	next := st.Append(orchestrator.Entry{Role: orchestrator.RoleReport, Text: report})
	next.FinalReport = report
	next.Stage = st.Stage.Next()
	return next, nil
}
