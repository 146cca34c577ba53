package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Initial(t *testing.T) {
	st, err := NewState("  sustainable technology trends ")
	require.NoError(t, err)

	assert.Equal(t, StageResearch, st.Stage)
	require.Len(t, st.History, 1)
	assert.Equal(t, Entry{Role: RoleUser, Text: "sustainable technology trends"}, st.History[0])
	assert.Nil(t, st.Findings)
	assert.False(t, st.AnalysisComplete)
	assert.Empty(t, st.AnalysisInsight)
	assert.Empty(t, st.FinalReport)
	assert.False(t, st.Terminal())
}

func TestNewState_EmptyQuery(t *testing.T) {
	_, err := NewState("   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestState_CloneIsIndependent(t *testing.T) {
	st := State{
		History:  []Entry{{Role: RoleUser, Text: "q"}},
		Stage:    StageAnalysis,
		Findings: testFindings(),
	}

	c := st.Clone()
	c.History[0].Text = "changed"
	c.Findings.Summary = "changed"
	c.Findings.Sources[0] = "changed"

	assert.Equal(t, "q", st.History[0].Text)
	assert.Equal(t, "summary", st.Findings.Summary)
	assert.Equal(t, "llm-synthesis", st.Findings.Sources[0])
}

func TestState_AppendDoesNotAliasCaller(t *testing.T) {
	history := make([]Entry, 1, 8)
	history[0] = Entry{Role: RoleUser, Text: "q"}
	st := State{History: history}

	a := st.Append(Entry{Role: RoleResearch, Text: "a"})
	b := st.Append(Entry{Role: RoleResearch, Text: "b"})

	assert.Len(t, st.History, 1)
	assert.Equal(t, "a", a.History[1].Text)
	assert.Equal(t, "b", b.History[1].Text)
}

func TestState_LatestQuery(t *testing.T) {
	st := State{History: []Entry{
		{Role: RoleUser, Text: "first"},
		{Role: RoleResearch, Text: "r"},
		{Role: RoleUser, Text: "second"},
		{Role: RoleAnalysis, Text: "a"},
	}}

	q, ok := st.LatestQuery()
	require.True(t, ok)
	assert.Equal(t, "second", q)

	_, ok = State{History: []Entry{{Role: RoleResearch, Text: "r"}}}.LatestQuery()
	assert.False(t, ok)
}

func TestFindings_Equal(t *testing.T) {
	a := testFindings()
	b := testFindings()
	assert.True(t, a.Equal(b))

	b.Confidence = 0.5
	assert.False(t, a.Equal(b))

	var nilF *Findings
	assert.True(t, nilF.Equal(nil))
	assert.False(t, nilF.Equal(a))
	assert.False(t, a.Equal(nil))
}

func TestNormalizeSources(t *testing.T) {
	got := NormalizeSources([]string{"web-search", " llm ", "", "web-search", "api"})
	assert.Equal(t, []string{"api", "llm", "web-search"}, got)
	assert.Empty(t, NormalizeSources(nil))
}

func TestErrors_Messages(t *testing.T) {
	gen := &GenerationFailure{Stage: StageAnalysis, Capability: CapabilityGenerate, Err: assert.AnError}
	assert.Contains(t, gen.Error(), "analysis stage")
	assert.ErrorIs(t, gen, assert.AnError)

	pre := &PreconditionFailure{Stage: StageReport, Reason: "analysis has not completed"}
	assert.Equal(t, "report stage: precondition failed: analysis has not completed", pre.Error())
}
