// Package nlp defines the pluggable language-model capabilities the
// matching engine depends on: named-entity recognition and text
// embeddings. The engine is agnostic to the provider; production wiring
// uses Gemini, tests inject deterministic stubs.
package nlp

import "context"

// Entity categories surfaced by recognizers. Only these three feed skill
// extraction; recognizers may emit others and callers filter.
const (
	CategoryOrganization = "ORG"
	CategoryProduct      = "PRODUCT"
	CategoryTechnology   = "TECHNOLOGY"
)

// Entity is a single recognized span of text with its semantic category.
type Entity struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// EntityRecognizer extracts named entities from free text.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// Embedder converts a batch of texts into fixed-length numeric vectors.
// All vectors in one call have the same dimensionality; the i-th vector
// corresponds to the i-th input text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// IsSkillCategory reports whether entities of this category should be
// treated as skill mentions.
func IsSkillCategory(category string) bool {
	switch category {
	case CategoryOrganization, CategoryProduct, CategoryTechnology:
		return true
	default:
		return false
	}
}
