package index

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	chromem "github.com/philippgille/chromem-go"
)

// Builder constructs a DocumentIndex from an uploaded PDF
type Builder struct {
	embedder Embedder
}

// NewBuilder creates a builder backed by the given embedding capability
func NewBuilder(embedder Embedder) *Builder {
	return &Builder{embedder: embedder}
}

// Build decodes the document into per-page passages, embeds them, and returns
// a queryable index. Construction is all-or-nothing: on any failure the
// returned index is nil and nothing is retained.
func (b *Builder) Build(ctx context.Context, document []byte) (*Index, error) {
	passages, err := extractPassages(document)
	if err != nil {
		return nil, err
	}

	return New(ctx, passages, b.embedder)
}

// New embeds the given passages and assembles the queryable index. Split out
// from Build so an index can be built from already-extracted passages.
func New(ctx context.Context, passages []Passage, embedder Embedder) (*Index, error) {
	if len(passages) == 0 {
		return nil, ErrEmptyDocument
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if len(vectors) != len(passages) {
		return nil, fmt.Errorf("%w: got %d vectors for %d passages", ErrEmbeddingUnavailable, len(vectors), len(passages))
	}

	// Each session gets its own in-memory database; the collection is never
	// shared or persisted.
	db := chromem.NewDB()
	collection, err := db.CreateCollection("passages", nil, embeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	docs := make([]chromem.Document, len(passages))
	for i, p := range passages {
		docs[i] = chromem.Document{
			ID:        strconv.Itoa(p.Position),
			Metadata:  map[string]string{"page": strconv.Itoa(p.Page)},
			Embedding: vectors[i],
			Content:   p.Text,
		}
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("populating collection: %w", err)
	}

	return &Index{
		passages:   passages,
		collection: collection,
		embedder:   embedder,
	}, nil
}

// embeddingFunc adapts the Embedder for chromem. Documents carry precomputed
// vectors, so this is only invoked if chromem ever needs to embed on its own.
func embeddingFunc(embedder Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	}
}

// extractPassages decodes a PDF into one trimmed passage per non-blank page.
// The decoder works on the in-memory byte slice, so there is no temporary
// file to release on either path.
func extractPassages(document []byte) (passages []Passage, err error) {
	if len(document) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrDecode)
	}

	// The pdf package panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			passages = nil
			err = fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	position := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDecode, pageNum, err)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		passages = append(passages, Passage{
			Position: position,
			Page:     pageNum,
			Text:     text,
		})
		position++
	}

	return passages, nil
}
