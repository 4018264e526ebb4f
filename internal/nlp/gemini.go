// Package nlp - gemini.go implements the recognizer and embedder
// capabilities on top of Google Gemini.
package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/marcus/talent-match/internal/schemas"
)

const (
	defaultRecognizerModel = "gemini-2.5-flash-lite"
	defaultEmbeddingModel  = "text-embedding-004"
)

// entityListSchema constrains the recognizer's JSON output. Responses
// that do not satisfy it are rejected rather than repaired.
const entityListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"text": {"type": "string", "minLength": 1},
			"category": {"type": "string"}
		},
		"required": ["text", "category"]
	}
}`

const recognizerPrompt = `You are a named-entity recognizer for recruitment text.
Identify every organization, product, and technology mentioned in the input.

Return ONLY a JSON array of objects with this exact structure:
[{"text": "entity text", "category": "ORG" | "PRODUCT" | "TECHNOLOGY"}]

IMPORTANT:
- Copy entity text verbatim from the input, do not normalize or expand it.
- Return ONLY the JSON array, no markdown, no explanation, no code blocks.
- Return [] when the input contains no such entities.

Input text:
"""
%s
"""
`

// GeminiConfig holds model selection for the Gemini-backed capabilities.
type GeminiConfig struct {
	RecognizerModel string
	EmbeddingModel  string
}

// DefaultGeminiConfig returns the default model selection.
func DefaultGeminiConfig() *GeminiConfig {
	return &GeminiConfig{
		RecognizerModel: defaultRecognizerModel,
		EmbeddingModel:  defaultEmbeddingModel,
	}
}

// Gemini implements EntityRecognizer and Embedder using the Gemini API.
type Gemini struct {
	client *genai.Client
	config *GeminiConfig
	logger *zap.Logger
}

// NewGemini creates a Gemini-backed provider for both capabilities.
func NewGemini(ctx context.Context, apiKey string, config *GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, config: config, logger: logger}, nil
}

// Recognize extracts organization/product/technology entities from text.
func (g *Gemini) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	model := g.client.GenerativeModel(g.config.RecognizerModel)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(recognizerPrompt, text)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	entities, err := ParseEntityResponse(raw)
	if err != nil {
		g.logger.Debug("rejected recognizer response",
			zap.String("model", g.config.RecognizerModel),
			zap.Error(err),
		)
		return nil, err
	}

	return entities, nil
}

// ParseEntityResponse validates and decodes a recognizer JSON response.
func ParseEntityResponse(raw string) ([]Entity, error) {
	cleaned := CleanJSONBlock(raw)

	if err := schemas.ValidateJSONString(entityListSchema, cleaned); err != nil {
		return nil, fmt.Errorf("recognizer response failed schema validation: %w", err)
	}

	var entities []Entity
	if err := json.Unmarshal([]byte(cleaned), &entities); err != nil {
		return nil, fmt.Errorf("failed to parse recognizer response: %w", err)
	}
	return entities, nil
}

// EmbedTexts embeds the whole batch in a single API call.
func (g *Gemini) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := g.client.EmbeddingModel(g.config.EmbeddingModel)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float64, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		vector := make([]float64, len(embedding.Values))
		for j, v := range embedding.Values {
			vector[j] = float64(v)
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
