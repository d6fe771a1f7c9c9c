// Package index builds and queries the similarity index over course-note passages.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

var (
	// ErrDecode indicates the uploaded document could not be parsed
	ErrDecode = errors.New("document could not be decoded")

	// ErrEmptyDocument indicates the document yielded no text passages
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrEmbeddingUnavailable indicates the embedding capability failed
	ErrEmbeddingUnavailable = errors.New("embedding capability unavailable")
)

// Embedder generates embedding vectors for passages and queries
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Passage is a retrievable slice of the source document with position provenance
type Passage struct {
	Position int    // zero-based order within the document
	Page     int    // one-based source page
	Text     string
}

// Index provides nearest-neighbor retrieval over passage embeddings.
// It is read-only after construction; one Index belongs to exactly one session.
type Index struct {
	passages   []Passage
	collection *chromem.Collection
	embedder   Embedder
}

// Len returns the number of indexed passages
func (idx *Index) Len() int {
	return len(idx.passages)
}

// Passages returns a copy of the indexed passages in document order
func (idx *Index) Passages() []Passage {
	out := make([]Passage, len(idx.passages))
	copy(out, idx.passages)
	return out
}

// Search returns at most k passages ordered by decreasing similarity to the
// query. Ordering is deterministic: ties are broken by original passage
// position, so a fixed index and query always yield the same result.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]Passage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("search limit must be positive, got %d", k)
	}

	vector, err := idx.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	// chromem rejects result counts above the collection size
	if k > len(idx.passages) {
		k = len(idx.passages)
	}

	results, err := idx.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	type ranked struct {
		passage    Passage
		similarity float32
	}

	hits := make([]ranked, 0, len(results))
	for _, res := range results {
		pos, err := strconv.Atoi(res.ID)
		if err != nil || pos < 0 || pos >= len(idx.passages) {
			return nil, fmt.Errorf("unexpected passage id %q in collection", res.ID)
		}
		hits = append(hits, ranked{passage: idx.passages[pos], similarity: res.Similarity})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].similarity != hits[j].similarity {
			return hits[i].similarity > hits[j].similarity
		}
		return hits[i].passage.Position < hits[j].passage.Position
	})

	passages := make([]Passage, len(hits))
	for i, h := range hits {
		passages[i] = h.passage
	}

	return passages, nil
}
