package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ContainsExpectedCategories(t *testing.T) {
	tax := Default()

	categories := tax.Categories()
	assert.Contains(t, categories, "programming")
	assert.Contains(t, categories, "soft_skills")
	assert.Contains(t, tax.Skills("programming"), "go")
	assert.Contains(t, tax.Skills("database"), "postgresql")
}

func TestDefault_CategoryOrderIsStable(t *testing.T) {
	first := Default().Categories()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Default().Categories())
	}
}

func TestLoad_FromJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	content := `{"languages": ["Go", " Rust "], "tooling": ["Bazel"]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tax, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"languages", "tooling"}, tax.Categories())
	assert.Equal(t, []string{"go", "rust"}, tax.Skills("languages"))
	assert.Equal(t, []string{"go", "rust", "bazel"}, tax.All())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
