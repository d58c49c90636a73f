package embeddings

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// MockEmbedder is a deterministic, offline Embedder for tests. It hashes
// each word into a fixed-dimension bag-of-words vector, so texts sharing
// vocabulary land close together under cosine similarity.
type MockEmbedder struct {
	Dim int
}

// NewMockEmbedder creates a MockEmbedder with a small fixed dimension.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{Dim: 64}
}

// EmbedDocuments implements Embedder.
func (m *MockEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = m.embed(text)
	}
	return vectors, nil
}

// EmbedQuery implements Embedder.
func (m *MockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return m.embed(text), nil
}

func (m *MockEmbedder) embed(text string) []float32 {
	v := make([]float32, m.Dim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		v[h.Sum32()%uint32(m.Dim)]++
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		v[0] = 1
		return v
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range v {
		v[i] *= scale
	}
	return v
}
