package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultTavilyURL is the Tavily search endpoint.
const DefaultTavilyURL = "https://api.tavily.com/search"

// Compile-time interface check.
var _ Retriever = (*TavilyClient)(nil)

// TavilyClient retrieves web search context from the Tavily API.
type TavilyClient struct {
	http       *http.Client
	endpoint   string
	apiKey     string
	maxResults int
	depth      string
}

// TavilyOption configures a TavilyClient.
type TavilyOption func(*TavilyClient)

// WithEndpoint overrides the search endpoint URL.
func WithEndpoint(u string) TavilyOption {
	return func(c *TavilyClient) { c.endpoint = u }
}

// WithMaxResults caps the number of results per query.
func WithMaxResults(n int) TavilyOption {
	return func(c *TavilyClient) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithSearchDepth selects "basic" or "advanced" search.
func WithSearchDepth(d string) TavilyOption {
	return func(c *TavilyClient) {
		if d != "" {
			c.depth = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) TavilyOption {
	return func(c *TavilyClient) { c.http = hc }
}

// NewTavilyClient creates a Tavily client authenticated with apiKey.
func NewTavilyClient(apiKey string, opts ...TavilyOption) (*TavilyClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, eris.New("search: missing Tavily API key")
	}
	c := &TavilyClient{
		http:       &http.Client{Timeout: 30 * time.Second},
		endpoint:   DefaultTavilyURL,
		apiKey:     apiKey,
		maxResults: 5,
		depth:      "basic",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type tavilyRequest struct {
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer"`
	Results []tavilyResult `json:"results"`
}

// Retrieve runs a web search for query and flattens the answer and results
// into one context string.
func (c *TavilyClient) Retrieve(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", eris.New("search: empty query")
	}

	body, err := json.Marshal(tavilyRequest{
		Query:         query,
		MaxResults:    c.maxResults,
		SearchDepth:   c.depth,
		IncludeAnswer: true,
	})
	if err != nil {
		return "", eris.Wrap(err, "search: encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "search: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "search: send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", eris.Errorf("search: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", eris.Wrap(err, "search: decode response")
	}
	return formatResults(query, tr), nil
}

func formatResults(query string, tr tavilyResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search results for '%s':\n", query)
	if tr.Answer != "" {
		fmt.Fprintf(&b, "\nSummary: %s\n", strings.TrimSpace(tr.Answer))
	}
	if len(tr.Results) == 0 {
		b.WriteString("\nNo results found.\n")
		return b.String()
	}
	b.WriteString("\n")
	for i, r := range tr.Results {
		fmt.Fprintf(&b, "%d. %s (%s)\n   %s\n", i+1, r.Title, r.URL, strings.TrimSpace(r.Content))
	}
	return b.String()
}
