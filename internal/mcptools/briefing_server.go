package mcptools

// --- MCP Tool Types for the briefing server mode (serve-mcp) ---
// These tools are exposed when the binary runs as an MCP server so that an
// assistant can request briefings as structured tool calls.

// RunBriefingInput is the input for the run_briefing MCP tool.
type RunBriefingInput struct {
	Query string `json:"query" jsonschema:"free-text topic to research and report on"`
}

// RunBriefingOutput is the result of the run_briefing MCP tool.
type RunBriefingOutput struct {
	Status        string   `json:"status"` // "completed" or "failed"
	Message       string   `json:"message,omitempty"`
	Stage         string   `json:"stage,omitempty"`
	FailedStage   string   `json:"failedStage,omitempty"`
	FinalReport   string   `json:"finalReport,omitempty"`
	Topic         string   `json:"topic,omitempty"`
	Sources       []string `json:"sources,omitempty"`
	Confidence    float64  `json:"confidence,omitempty"`
	Analysis      string   `json:"analysis,omitempty"`
	HistoryLength int      `json:"historyLength"`
}

// DescribeStagesInput is the input for the describe_stages MCP tool.
type DescribeStagesInput struct{}

// DescribeStagesOutput lists the pipeline stages in order.
type DescribeStagesOutput struct {
	Stages []StageInfo `json:"stages"`
}

// StageInfo describes one stage and its successor.
type StageInfo struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Next     string `json:"next"`
	Terminal bool   `json:"terminal"`
}
