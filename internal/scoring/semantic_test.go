package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vectors [][]float64
	err     error
}

func (s *stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(texts) != len(s.vectors) {
		return nil, errors.New("unexpected text count")
	}
	return s.vectors, nil
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite is negative", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0.0},
		{"empty", nil, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSemanticSimilarity(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds both texts in one call", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: [][]float64{{1, 0, 0}, {1, 0, 0}}}
		score, err := SemanticSimilarity(ctx, embedder, "backend engineer", "server developer")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("dissimilar vectors", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: [][]float64{{1, 0}, {0, 1}}}
		score, err := SemanticSimilarity(ctx, embedder, "chef", "pilot")
		require.NoError(t, err)
		assert.InDelta(t, 0.0, score, 1e-9)
	})

	t.Run("empty text shortcuts without embedding", func(t *testing.T) {
		embedder := &stubEmbedder{err: errors.New("should not be called")}
		score, err := SemanticSimilarity(ctx, embedder, "", "anything")
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("embedder failure propagates", func(t *testing.T) {
		embedder := &stubEmbedder{err: errors.New("quota exceeded")}
		_, err := SemanticSimilarity(ctx, embedder, "a", "b")
		require.Error(t, err)
	})
}
