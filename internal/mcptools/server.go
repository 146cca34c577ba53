package mcptools

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/briefing/internal/orchestrator"
)

// NewBriefingMCPServer creates an MCP server with the briefing tools
// registered: run_briefing and describe_stages. version is reported to
// clients in the server's implementation info.
func NewBriefingMCPServer(pipeline orchestrator.Orchestrator, maxRuns int, version string) *mcp.Server {
	svc := NewBriefingService(pipeline, maxRuns)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "briefing",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_briefing",
		Description: "Research a topic, analyze the findings and return a written report. Runs the research, analysis and report stages in order.",
	}, svc.RunBriefing)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_stages",
		Description: "List the pipeline stages in execution order together with each stage's successor.",
	}, svc.DescribeStages)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the MCP server over streamable HTTP on addr until ctx is
// cancelled.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
