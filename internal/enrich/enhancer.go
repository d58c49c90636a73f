package enrich

import (
	"context"
	"fmt"

	"github.com/dkrish/quizforge/internal/pipeline"
)

// Enhancer is the pipeline stage that attaches related curriculum topics
// to the request context. Retrieval problems degrade to warnings: the
// batch is still usable without enrichment.
type Enhancer struct {
	retriever Retriever
	topK      int
}

// NewEnhancer creates an Enhancer returning up to topK related topics.
func NewEnhancer(retriever Retriever, topK int) *Enhancer {
	if topK <= 0 {
		topK = 3
	}
	return &Enhancer{retriever: retriever, topK: topK}
}

// Name implements pipeline.Agent.
func (e *Enhancer) Name() string { return "context-enhancer" }

// Description implements pipeline.Agent.
func (e *Enhancer) Description() string {
	return "Attaches related curriculum topics from the vector store"
}

// Process looks up topics near the request's subject and writes them to
// RelatedTopics.
func (e *Enhancer) Process(ctx context.Context, wc *pipeline.Context) *pipeline.Context {
	query := fmt.Sprintf("grade %d %s", wc.Grade, wc.QuestionType)

	topics, err := e.retriever.Related(ctx, query, e.topK)
	if err != nil {
		wc.AddWarning(fmt.Sprintf("%s: topic retrieval failed: %v", e.Name(), err))
		return wc
	}

	wc.RelatedTopics = topics
	return wc
}
