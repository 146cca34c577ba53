package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/dusk-indust/briefing/internal/orchestrator"
)

// BriefingService handles MCP tool calls for the briefing server mode. It
// wraps an Orchestrator and bounds how many runs execute at once.
type BriefingService struct {
	pipeline orchestrator.Orchestrator
	sem      *semaphore.Weighted
}

// NewBriefingService creates a BriefingService allowing at most maxRuns
// concurrent pipeline runs.
func NewBriefingService(pipeline orchestrator.Orchestrator, maxRuns int) *BriefingService {
	if maxRuns <= 0 {
		maxRuns = 1
	}
	return &BriefingService{
		pipeline: pipeline,
		sem:      semaphore.NewWeighted(int64(maxRuns)),
	}
}

// RunBriefing runs the full pipeline for the query. Pipeline failures are
// reported in the output with status "failed"; only invalid input and
// cancellation while waiting for a run slot are returned as errors.
func (s *BriefingService) RunBriefing(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunBriefingInput,
) (*mcp.CallToolResult, RunBriefingOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, RunBriefingOutput{}, fmt.Errorf("invalid query: %w", orchestrator.ErrEmptyQuery)
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, RunBriefingOutput{}, fmt.Errorf("waiting for a run slot: %w", err)
	}
	defer s.sem.Release(1)

	st, err := s.pipeline.Run(ctx, query)
	if err != nil {
		zap.L().Warn("mcp: briefing failed", zap.String("query", query), zap.Error(err))
		return nil, RunBriefingOutput{
			Status:      "failed",
			Message:     err.Error(),
			FailedStage: failedStage(err),
		}, nil
	}

	out := RunBriefingOutput{
		Status:        "completed",
		Stage:         st.Stage.String(),
		FinalReport:   st.FinalReport,
		Analysis:      st.AnalysisInsight,
		HistoryLength: len(st.History),
	}
	if st.Findings != nil {
		out.Topic = st.Findings.Topic
		out.Sources = st.Findings.Sources
		out.Confidence = st.Findings.Confidence
	}
	return nil, out, nil
}

// DescribeStages returns the router's stage table.
func (s *BriefingService) DescribeStages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ DescribeStagesInput,
) (*mcp.CallToolResult, DescribeStagesOutput, error) {
	var out DescribeStagesOutput
	for _, stage := range orchestrator.Stages() {
		out.Stages = append(out.Stages, StageInfo{
			Index:    int(stage),
			Name:     stage.String(),
			Next:     stage.Next().String(),
			Terminal: stage == orchestrator.StageDone,
		})
	}
	return nil, out, nil
}

// failedStage names the stage an error is attributed to, if any.
func failedStage(err error) string {
	var genErr *orchestrator.GenerationFailure
	if errors.As(err, &genErr) {
		return genErr.Stage.String()
	}
	var preErr *orchestrator.PreconditionFailure
	if errors.As(err, &preErr) {
		return preErr.Stage.String()
	}
	return ""
}
