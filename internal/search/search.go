// Package search provides the context-retrieval capability consulted by the
// research stage.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Retriever returns raw supporting text for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (string, error)
}

// RetrieverFunc adapts a plain function to Retriever.
type RetrieverFunc func(ctx context.Context, query string) (string, error)

// Retrieve calls f(ctx, query).
func (f RetrieverFunc) Retrieve(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// StubRetriever is a deterministic Retriever that answers every query with a
// templated summary. It stands in for a search backend in offline runs and
// tests.
type StubRetriever struct{}

// Retrieve returns the templated context for query.
func (StubRetriever) Retrieve(_ context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", eris.New("search: empty query")
	}
	return fmt.Sprintf("Search results for '%s': Recent developments, key players, "+
		"market trends, and expert opinions on %s.", query, query), nil
}
