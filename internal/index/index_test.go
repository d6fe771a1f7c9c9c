package index

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns fixed vectors per text so retrieval order is known
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			return nil, errors.New("unexpected text: " + text)
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func testPassages() []Passage {
	return []Passage{
		{Position: 0, Page: 1, Text: "La derivada mide la tasa de cambio."},
		{Position: 1, Page: 2, Text: "La integral acumula el área bajo la curva."},
		{Position: 2, Page: 3, Text: "Los límites describen el comportamiento en la frontera."},
	}
}

func testEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{
		"La derivada mide la tasa de cambio.":                      {1, 0, 0},
		"La integral acumula el área bajo la curva.":               {0.9, 0.1, 0},
		"Los límites describen el comportamiento en la frontera.":  {0, 0, 1},
		"la derivada es la pendiente":                              {1, 0, 0},
		"algo sin relación":                                        {0, 1, 0},
	}}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("builds an index over all passages", func(t *testing.T) {
		idx, err := New(ctx, testPassages(), testEmbedder())
		require.NoError(t, err)
		assert.Equal(t, 3, idx.Len())
		assert.Equal(t, testPassages(), idx.Passages())
	})

	t.Run("no passages", func(t *testing.T) {
		idx, err := New(ctx, nil, testEmbedder())
		assert.ErrorIs(t, err, ErrEmptyDocument)
		assert.Nil(t, idx)
	})

	t.Run("embedding failure leaves no index behind", func(t *testing.T) {
		embedder := testEmbedder()
		embedder.err = errors.New("quota exceeded")

		idx, err := New(ctx, testPassages(), embedder)
		assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
		assert.Nil(t, idx)
	})
}

func TestIndexSearch(t *testing.T) {
	ctx := context.Background()

	newTestIndex := func(t *testing.T, passages []Passage) *Index {
		t.Helper()
		idx, err := New(ctx, passages, testEmbedder())
		require.NoError(t, err)
		return idx
	}

	t.Run("returns most similar passages first", func(t *testing.T) {
		idx := newTestIndex(t, testPassages())

		results, err := idx.Search(ctx, "la derivada es la pendiente", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "La derivada mide la tasa de cambio.", results[0].Text)
		assert.Equal(t, "La integral acumula el área bajo la curva.", results[1].Text)
	})

	t.Run("results come only from the indexed passages", func(t *testing.T) {
		passages := testPassages()
		idx := newTestIndex(t, passages)

		results, err := idx.Search(ctx, "algo sin relación", 3)
		require.NoError(t, err)

		original := make(map[string]bool)
		for _, p := range passages {
			original[p.Text] = true
		}
		for _, r := range results {
			assert.True(t, original[r.Text], "passage %q not in original document", r.Text)
		}
	})

	t.Run("clamps k to the passage count", func(t *testing.T) {
		idx := newTestIndex(t, testPassages())

		results, err := idx.Search(ctx, "la derivada es la pendiente", 10)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("rejects non-positive k", func(t *testing.T) {
		idx := newTestIndex(t, testPassages())

		_, err := idx.Search(ctx, "la derivada es la pendiente", 0)
		assert.Error(t, err)
	})

	t.Run("equal similarity ties break by document order", func(t *testing.T) {
		embedder := &fakeEmbedder{vectors: map[string][]float32{
			"gemelo segundo": {1, 0, 0},
			"gemelo primero": {1, 0, 0},
			"consulta":       {1, 0, 0},
		}}
		passages := []Passage{
			{Position: 0, Page: 1, Text: "gemelo segundo"},
			{Position: 1, Page: 2, Text: "gemelo primero"},
		}

		idx, err := New(ctx, passages, embedder)
		require.NoError(t, err)

		results, err := idx.Search(ctx, "consulta", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 0, results[0].Position)
		assert.Equal(t, 1, results[1].Position)
	})

	t.Run("deterministic for a fixed index and query", func(t *testing.T) {
		idx := newTestIndex(t, testPassages())

		first, err := idx.Search(ctx, "la derivada es la pendiente", 3)
		require.NoError(t, err)

		for range 5 {
			again, err := idx.Search(ctx, "la derivada es la pendiente", 3)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("embedding failure at query time", func(t *testing.T) {
		embedder := testEmbedder()
		idx, err := New(ctx, testPassages(), embedder)
		require.NoError(t, err)

		embedder.err = errors.New("network down")
		_, err = idx.Search(ctx, "la derivada es la pendiente", 3)
		assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
	})
}
