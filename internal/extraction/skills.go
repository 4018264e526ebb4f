// Package extraction pulls skills and experience years out of free text.
package extraction

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/marcus/talent-match/internal/nlp"
	"github.com/marcus/talent-match/internal/taxonomy"
	"github.com/marcus/talent-match/internal/types"
)

// Extractor finds skill mentions using the taxonomy vocabulary plus an
// optional entity recognizer.
type Extractor struct {
	taxonomy   *taxonomy.Taxonomy
	recognizer nlp.EntityRecognizer
	logger     *zap.Logger
}

// NewExtractor creates a skill extractor. The recognizer may be nil, in
// which case only taxonomy matching is performed.
func NewExtractor(tax *taxonomy.Taxonomy, recognizer nlp.EntityRecognizer, logger *zap.Logger) *Extractor {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{taxonomy: tax, recognizer: recognizer, logger: logger}
}

// Skills extracts the set of skills mentioned in text.
//
// Taxonomy matching is plain substring search over the lowercased text, so
// a short skill token inside a longer word will false-positive (e.g. "go"
// inside "going"). That trade-off is intentional: switching to
// word-boundary matching would change scores for every profile already in
// the system.
//
// Entity recognition runs over the original-case text; entities in the
// organization/product/technology categories are added lowercased. A
// recognizer failure degrades to taxonomy-only extraction, it never
// propagates.
func (e *Extractor) Skills(ctx context.Context, text string) *types.SkillSet {
	found := types.NewSkillSet()
	if strings.TrimSpace(text) == "" {
		return found
	}

	textLower := strings.ToLower(text)
	for _, category := range e.taxonomy.Categories() {
		for _, skill := range e.taxonomy.Skills(category) {
			if strings.Contains(textLower, skill) {
				found.Add(skill)
			}
		}
	}

	if e.recognizer != nil {
		entities, err := e.recognizer.Recognize(ctx, text)
		if err != nil {
			e.logger.Debug("entity recognition failed, using taxonomy matches only", zap.Error(err))
			return found
		}
		for _, entity := range entities {
			if nlp.IsSkillCategory(entity.Category) {
				found.Add(entity.Text)
			}
		}
	}

	return found
}
