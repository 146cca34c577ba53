package agent

import (
	"context"

	"github.com/dusk-indust/briefing/internal/llm"
	"github.com/dusk-indust/briefing/internal/orchestrator"
)

// AnalysisAgent derives insights from the research findings.
type AnalysisAgent struct {
	*BaseAgent
}

// NewAnalysisAgent creates an AnalysisAgent backed by gen.
func NewAnalysisAgent(gen llm.Generator) *AnalysisAgent {
	aa := &AnalysisAgent{}
	aa.BaseAgent = NewBaseAgent(orchestrator.StageAnalysis, gen, aa.process)
	return aa
}

func (aa *AnalysisAgent) process(ctx context.Context, st orchestrator.State) (orchestrator.State, error) {
	if st.Findings == nil {
		return st, aa.precondition("findings are absent")
	}

	insight, err := aa.generate(ctx, analysisPrompt(st.Findings.Topic, st.Findings.Summary))
	if err != nil {
		return st, err
	}

	next := st.Append(orchestrator.Entry{Role: orchestrator.RoleAnalysis, Text: insight})
	next.AnalysisComplete = true
	next.AnalysisInsight = insight
	next.Stage = st.Stage.Next()
	return next, nil
}
