// Package enrich retrieves related curriculum topics for a generation
// request from a local vector store.
package enrich

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/dkrish/quizforge/internal/embeddings"
)

// Retriever finds curriculum snippets related to a query text.
type Retriever interface {
	Related(ctx context.Context, text string, k int) ([]string, error)
}

// Snippet is one curriculum entry held in the store.
type Snippet struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// ChromemRetriever is a Retriever backed by an embedded chromem-go
// collection. The store is in-process; no external service is involved.
type ChromemRetriever struct {
	collection *chromem.Collection
}

// NewChromemRetriever creates a retriever with its own in-memory store.
// Pass a non-empty path to persist the store between runs.
func NewChromemRetriever(path, collectionName string, embedder embeddings.Embedder) (*ChromemRetriever, error) {
	var db *chromem.DB
	var err error
	if path != "" {
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("open vector store: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("create collection %s: %w", collectionName, err)
	}

	return &ChromemRetriever{collection: collection}, nil
}

// Index adds curriculum snippets to the store. Snippets with duplicate IDs
// overwrite earlier entries.
func (r *ChromemRetriever) Index(ctx context.Context, snippets []Snippet) error {
	if len(snippets) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(snippets))
	for i, s := range snippets {
		docs[i] = chromem.Document{
			ID:       s.ID,
			Content:  s.Text,
			Metadata: s.Metadata,
		}
	}

	if err := r.collection.AddDocuments(ctx, docs, 2); err != nil {
		return fmt.Errorf("index snippets: %w", err)
	}
	return nil
}

// Related returns up to k snippet texts nearest to the query, best first.
// An empty store yields no results rather than an error.
func (r *ChromemRetriever) Related(ctx context.Context, text string, k int) ([]string, error) {
	if n := r.collection.Count(); n < k {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := r.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query vector store: %w", err)
	}

	topics := make([]string, len(results))
	for i, res := range results {
		topics[i] = res.Content
	}
	return topics, nil
}
