// Package scoring - semantic.go scores topical closeness via embeddings.
package scoring

import (
	"context"
	"math"
	"strings"

	"github.com/marcus/talent-match/internal/nlp"
)

// Cosine returns the cosine similarity of two vectors. Mismatched or
// zero-magnitude vectors score 0. The result is not clamped: a negative
// cosine is a valid answer from the embedding space and is reported as-is.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SemanticSimilarity embeds both texts and returns their cosine
// similarity. Either text being empty scores 0.0 without calling the
// embedder. The ranking engine batches embeddings itself and uses Cosine
// directly; this entry point serves one-off comparisons.
func SemanticSimilarity(ctx context.Context, embedder nlp.Embedder, text1, text2 string) (float64, error) {
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return 0.0, nil
	}

	vectors, err := embedder.EmbedTexts(ctx, []string{text1, text2})
	if err != nil {
		return 0.0, err
	}
	if len(vectors) != 2 {
		return 0.0, nil
	}

	return Cosine(vectors[0], vectors[1]), nil
}
