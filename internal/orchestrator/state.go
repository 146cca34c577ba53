package orchestrator

import (
	"slices"
	"strings"
	"time"
)

// Role tags the author of a history entry.
type Role string

const (
	RoleUser     Role = "user"
	RoleResearch Role = "research"
	RoleAnalysis Role = "analysis"
	RoleReport   Role = "report"
)

// Entry is one exchange in the run history.
type Entry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Findings is the structured output of the research stage. Downstream stages
// treat it as read-only.
type Findings struct {
	Topic      string    `json:"topic"`
	Summary    string    `json:"summary"`
	Sources    []string  `json:"sources"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Clone returns a deep copy of f. A nil receiver yields nil.
func (f *Findings) Clone() *Findings {
	if f == nil {
		return nil
	}
	c := *f
	c.Sources = slices.Clone(f.Sources)
	return &c
}

// Equal reports whether f and other hold the same values.
func (f *Findings) Equal(other *Findings) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Topic == other.Topic &&
		f.Summary == other.Summary &&
		slices.Equal(f.Sources, other.Sources) &&
		f.Confidence == other.Confidence &&
		f.Timestamp.Equal(other.Timestamp)
}

// NormalizeSources deduplicates and sorts source tags, dropping blanks.
func NormalizeSources(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// State is the single record that flows through every stage of a run.
type State struct {
	History          []Entry   `json:"history"`
	Stage            Stage     `json:"stage"`
	Findings         *Findings `json:"findings,omitempty"`
	AnalysisComplete bool      `json:"analysisComplete"`
	AnalysisInsight  string    `json:"analysisInsight,omitempty"`
	FinalReport      string    `json:"finalReport,omitempty"`
}

// NewState returns the initial state for query: stage research with the query
// recorded as the first user entry.
func NewState(query string) (State, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return State{}, ErrEmptyQuery
	}
	return State{
		History: []Entry{{Role: RoleUser, Text: query}},
		Stage:   StageResearch,
	}, nil
}

// Clone returns a deep copy of s so that stages can build their result
// without touching the caller's value.
func (s State) Clone() State {
	c := s
	c.History = slices.Clone(s.History)
	c.Findings = s.Findings.Clone()
	return c
}

// Append returns a copy of s with e added to the history.
func (s State) Append(e Entry) State {
	c := s.Clone()
	c.History = append(c.History, e)
	return c
}

// LatestQuery returns the text of the most recent user entry.
func (s State) LatestQuery() (string, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleUser {
			return s.History[i].Text, true
		}
	}
	return "", false
}

// Terminal reports whether the run has finished.
func (s State) Terminal() bool {
	return s.Stage == StageDone
}
