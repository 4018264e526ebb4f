package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `[{"text": "AWS", "category": "TECHNOLOGY"}]`, `[{"text": "AWS", "category": "TECHNOLOGY"}]`},
		{"json code block", "```json\n[]\n```", "[]"},
		{"generic code block", "```\n[]\n```", "[]"},
		{"surrounding whitespace", "  [] \n", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestParseEntityResponse_Valid(t *testing.T) {
	raw := "```json\n[{\"text\": \"Docker\", \"category\": \"PRODUCT\"}, {\"text\": \"Google\", \"category\": \"ORG\"}]\n```"

	entities, err := ParseEntityResponse(raw)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, Entity{Text: "Docker", Category: "PRODUCT"}, entities[0])
	assert.Equal(t, Entity{Text: "Google", Category: "ORG"}, entities[1])
}

func TestParseEntityResponse_EmptyArray(t *testing.T) {
	entities, err := ParseEntityResponse("[]")
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestParseEntityResponse_SchemaViolation(t *testing.T) {
	_, err := ParseEntityResponse(`[{"text": "Docker"}]`)
	assert.Error(t, err)

	_, err = ParseEntityResponse(`{"text": "Docker", "category": "PRODUCT"}`)
	assert.Error(t, err)
}

func TestIsSkillCategory(t *testing.T) {
	assert.True(t, IsSkillCategory(CategoryOrganization))
	assert.True(t, IsSkillCategory(CategoryProduct))
	assert.True(t, IsSkillCategory(CategoryTechnology))
	assert.False(t, IsSkillCategory("PERSON"))
	assert.False(t, IsSkillCategory(""))
}
