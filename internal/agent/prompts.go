package agent

import "fmt"

func researchPrompt(query, searchContext string) string {
	return fmt.Sprintf(`You are a research specialist. Using the search context below, write a concise
summary of the current state of the topic: the main developments, the key
players and the open questions.

Topic: %s

Search context:
%s`, query, searchContext)
}

func analysisPrompt(topic, summary string) string {
	return fmt.Sprintf(`You are an analyst. Read the research summary below and derive the three to
five most important insights: trends, risks and opportunities. Be specific.

Topic: %s

Research summary:
%s`, topic, summary)
}

func reportPrompt(topic, summary, insight string) string {
	return fmt.Sprintf(`You are a report writer. Combine the research summary and the analysis below
into a short, well-structured report with an overview, key findings and a
conclusion.

Topic: %s

Research summary:
%s

Analysis:
%s`, topic, summary, insight)
}
