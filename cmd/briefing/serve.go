package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/dusk-indust/briefing/internal/mcptools"
)

// serveMCP serves the pipeline as an MCP server on stdio, or on addr over
// streamable HTTP when addr is set, until ctx is cancelled.
func serveMCP(ctx context.Context, addr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer zap.ReplaceGlobals(logger)()

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	server := mcptools.NewBriefingMCPServer(pipeline, cfg.MaxConcurrentRuns, version)
	if addr != "" {
		logger.Info("mcp: serving over HTTP", zap.String("addr", addr))
		return mcptools.RunHTTP(ctx, server, addr)
	}
	return mcptools.RunStdio(ctx, server)
}
