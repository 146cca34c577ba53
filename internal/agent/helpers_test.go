package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dusk-indust/briefing/internal/llm"
	"github.com/dusk-indust/briefing/internal/orchestrator"
	"github.com/dusk-indust/briefing/internal/search"
)

var fixedTime = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

// scriptedGenerator returns canned responses in order and records prompts.
type scriptedGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", errors.New("scriptedGenerator: no response left")
}

// failingGenerator always returns err.
func failingGenerator(err error) llm.Generator {
	return llm.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}

// failingRetriever always returns err.
func failingRetriever(err error) search.Retriever {
	return search.RetrieverFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}

func queryState(t *testing.T, query string) orchestrator.State {
	t.Helper()
	st, err := orchestrator.NewState(query)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return st
}

// researchedState returns a state as the research stage leaves it.
func researchedState() orchestrator.State {
	return orchestrator.State{
		History: []orchestrator.Entry{
			{Role: orchestrator.RoleUser, Text: "quantum networking"},
			{Role: orchestrator.RoleResearch, Text: "Entanglement distribution is maturing."},
		},
		Stage: orchestrator.StageAnalysis,
		Findings: &orchestrator.Findings{
			Topic:      "quantum networking",
			Summary:    "Entanglement distribution is maturing.",
			Sources:    []string{"llm-synthesis", "web-search"},
			Confidence: 0.85,
			Timestamp:  fixedTime,
		},
	}
}

// analyzedState returns a state as the analysis stage leaves it.
func analyzedState() orchestrator.State {
	st := researchedState()
	st.History = append(st.History, orchestrator.Entry{Role: orchestrator.RoleAnalysis, Text: "Repeaters are the bottleneck."})
	st.Stage = orchestrator.StageReport
	st.AnalysisComplete = true
	st.AnalysisInsight = "Repeaters are the bottleneck."
	return st
}
