package agent

import (
	"context"
	"strings"
	"time"

	"github.com/dusk-indust/briefing/internal/llm"
	"github.com/dusk-indust/briefing/internal/orchestrator"
	"github.com/dusk-indust/briefing/internal/search"
)

// Provenance recorded on findings unless overridden.
var (
	DefaultSourceTags = []string{"web-search", "llm-synthesis"}
	DefaultConfidence = 0.85
)

// ResearchAgent turns the user's query into Findings: it retrieves search
// context, asks the generator for a summary, and stamps the result with fixed
// provenance metadata.
type ResearchAgent struct {
	*BaseAgent
	retriever  search.Retriever
	sources    []string
	confidence float64
	now        func() time.Time
}

// ResearchOption configures a ResearchAgent.
type ResearchOption func(*ResearchAgent)

// WithSourceTags sets the source tags recorded on findings.
func WithSourceTags(tags ...string) ResearchOption {
	return func(ra *ResearchAgent) { ra.sources = orchestrator.NormalizeSources(tags) }
}

// WithConfidence sets the confidence score, clamped to [0, 1].
func WithConfidence(c float64) ResearchOption {
	return func(ra *ResearchAgent) { ra.confidence = min(max(c, 0), 1) }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) ResearchOption {
	return func(ra *ResearchAgent) { ra.now = now }
}

// NewResearchAgent creates a ResearchAgent backed by gen and retriever.
func NewResearchAgent(gen llm.Generator, retriever search.Retriever, opts ...ResearchOption) *ResearchAgent {
	ra := &ResearchAgent{
		retriever:  retriever,
		sources:    orchestrator.NormalizeSources(DefaultSourceTags),
		confidence: DefaultConfidence,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ra)
	}
	ra.BaseAgent = NewBaseAgent(orchestrator.StageResearch, gen, ra.process)
	return ra
}

func (ra *ResearchAgent) process(ctx context.Context, st orchestrator.State) (orchestrator.State, error) {
	query, ok := st.LatestQuery()
	if !ok || strings.TrimSpace(query) == "" {
		return st, ra.precondition("history has no user query")
	}

	searchContext, err := ra.retriever.Retrieve(ctx, query)
	if err != nil {
		return st, &orchestrator.GenerationFailure{
			Stage:      orchestrator.StageResearch,
			Capability: orchestrator.CapabilityRetrieve,
			Err:        err,
		}
	}

	summary, err := ra.generate(ctx, researchPrompt(query, searchContext))
	if err != nil {
		return st, err
	}

	next := st.Append(orchestrator.Entry{Role: orchestrator.RoleResearch, Text: summary})
	next.Findings = &orchestrator.Findings{
		Topic:      query,
		Summary:    summary,
		Sources:    append([]string(nil), ra.sources...),
		Confidence: ra.confidence,
		Timestamp:  ra.now().UTC(),
	}
	next.AnalysisComplete = false
	next.AnalysisInsight = ""
	next.FinalReport = ""
	next.Stage = st.Stage.Next()
	return next, nil
}
