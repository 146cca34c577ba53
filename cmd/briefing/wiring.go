package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dusk-indust/briefing/internal/agent"
	"github.com/dusk-indust/briefing/internal/config"
	"github.com/dusk-indust/briefing/internal/llm"
	"github.com/dusk-indust/briefing/internal/orchestrator"
	"github.com/dusk-indust/briefing/internal/search"
)

// loadConfig reads configuration from the working directory and validates it.
func loadConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a console logger on stderr. Only warnings and errors are
// shown unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	zcfg.DisableStacktrace = true
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zcfg.DisableStacktrace = false
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// buildPipeline wires the generation client, the retriever and the three
// stage agents into a Pipeline.
func buildPipeline(cfg *config.Config) (*orchestrator.Pipeline, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	retriever, err := newRetriever(cfg)
	if err != nil {
		return nil, err
	}

	return orchestrator.NewPipeline(
		orchestrator.Config{Name: "briefing", Verbose: cfg.Verbose},
		orchestrator.Executors{
			Research: agent.NewResearchAgent(gen, retriever),
			Analysis: agent.NewAnalysisAgent(gen),
			Report:   agent.NewReportAgent(gen),
		},
	), nil
}

func newGenerator(cfg *config.Config) (*llm.Client, error) {
	opts := []llm.ClientOption{
		llm.WithModel(cfg.Model),
		llm.WithMaxTokens(cfg.MaxCompletionTokens),
		llm.WithTemperature(cfg.Temperature),
		llm.WithMaxRetries(uint(cfg.MaxRetries)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, llm.WithTimeout(cfg.Timeout))
	}
	return llm.NewClient(cfg.APIKey, opts...)
}

func newRetriever(cfg *config.Config) (search.Retriever, error) {
	switch cfg.Search.Provider {
	case config.ProviderTavily:
		tc, err := search.NewTavilyClient(cfg.SearchAPIKey,
			search.WithMaxResults(cfg.Search.MaxResults),
			search.WithSearchDepth(cfg.Search.Depth),
		)
		if err != nil {
			return nil, err
		}
		return tc, nil
	case config.ProviderStub, "":
		return search.StubRetriever{}, nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.Search.Provider)
	}
}
