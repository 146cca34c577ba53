package orchestrator

// Config holds runtime configuration for a pipeline.
type Config struct {
	// Name labels the pipeline in logs (e.g. "briefing").
	Name string

	// Verbose logs each stage's output text at debug level.
	Verbose bool
}

// Executors bundles the three stage implementations wired into a Pipeline.
type Executors struct {
	Research StageExecutor
	Analysis StageExecutor
	Report   StageExecutor
}
