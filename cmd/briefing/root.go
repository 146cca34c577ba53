package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/briefing/internal/orchestrator"
)

// newRootCmd builds the briefing command. It has no subcommands so that any
// single word, including "help" or "version", is taken as a query; the other
// modes are selected with flags.
func newRootCmd() *cobra.Command {
	var (
		serve    bool
		httpAddr string
	)

	root := &cobra.Command{
		Use:   "briefing <query>",
		Short: "Research a topic and write a briefing report",
		Long: `briefing runs a three-stage pipeline over a free-text query:

  research   retrieve search context and summarize it
  analysis   derive insights from the research summary
  report     synthesize the final report

The report is printed to stdout; progress and logs go to stderr.
GROQ_API_KEY must be set (a .env file in the working directory is honoured).
Optional settings are read from briefing.yml.

With --serve-mcp the pipeline is served as an MCP server instead, over stdio
or, with --http, over streamable HTTP.`,
		Version: version,
		Args: func(cmd *cobra.Command, args []string) error {
			if serve {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if serve {
				return serveMCP(cmd.Context(), httpAddr)
			}
			if httpAddr != "" {
				return errors.New("--http requires --serve-mcp")
			}
			return runQuery(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}

	root.SetVersionTemplate("briefing version {{.Version}}\n")
	root.Flags().BoolVar(&serve, "serve-mcp", false, "serve the pipeline as an MCP server")
	root.Flags().StringVar(&httpAddr, "http", "", "listen address for streamable HTTP with --serve-mcp (default: stdio)")
	return root
}

// runQuery executes one pipeline run and prints the final report.
func runQuery(ctx context.Context, stdout, stderr io.Writer, query string) error {
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

	events := pipeline.Progress()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			fmt.Fprintln(stderr, formatEvent(ev))
		}
	}()

	st, err := pipeline.Run(ctx, query)
	pipeline.Close()
	<-done
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, st.FinalReport)
	return nil
}

func formatEvent(ev orchestrator.ProgressEvent) string {
	if ev.Status == orchestrator.ProgressWorking {
		return orchestrator.FormatStageHeader(shortID(ev.RunID), ev.Stage)
	}
	return orchestrator.FormatProgress(ev)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
