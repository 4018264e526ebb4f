// Package taxonomy provides the static categorized vocabulary of known skills.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Taxonomy is an immutable mapping from category name to an ordered list
// of lowercase skill strings. It is shared read-only by all extraction and
// recommendation logic; extending it is a configuration change, not a code
// change.
type Taxonomy struct {
	categories map[string][]string
	order      []string
}

// defaultCategories is the built-in skills vocabulary.
var defaultCategories = map[string][]string{
	"programming": {"python", "java", "javascript", "c++", "c#", "ruby", "go", "rust", "swift", "kotlin", "php", "typescript", "scala", "r", "matlab"},
	"web":         {"html", "css", "react", "angular", "vue", "node.js", "django", "flask", "spring", "express", "next.js", "nuxt.js"},
	"database":    {"sql", "mysql", "postgresql", "mongodb", "redis", "cassandra", "elasticsearch", "dynamodb"},
	"cloud":       {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd"},
	"data":        {"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras", "tableau", "power bi", "spark"},
	"mobile":      {"android", "ios", "react native", "flutter", "xamarin", "swift", "kotlin"},
	"design":      {"figma", "sketch", "adobe xd", "photoshop", "illustrator", "ui/ux", "wireframing"},
	"soft_skills": {"leadership", "communication", "teamwork", "problem solving", "critical thinking", "creativity", "adaptability"},
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return fromMap(defaultCategories)
}

// Load reads a taxonomy from a JSON file mapping category names to skill
// lists. Skills are lowercased on load.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}

	var categories map[string][]string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy JSON: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("taxonomy file %s defines no categories", path)
	}

	return fromMap(categories), nil
}

func fromMap(categories map[string][]string) *Taxonomy {
	t := &Taxonomy{categories: make(map[string][]string, len(categories))}
	for category, skills := range categories {
		lowered := make([]string, 0, len(skills))
		for _, skill := range skills {
			skill = strings.ToLower(strings.TrimSpace(skill))
			if skill != "" {
				lowered = append(lowered, skill)
			}
		}
		t.categories[category] = lowered
		t.order = append(t.order, category)
	}
	// Map iteration order is random; keep category traversal stable.
	sort.Strings(t.order)
	return t
}

// Categories returns the category names in stable (sorted) order.
func (t *Taxonomy) Categories() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Skills returns the skill list for a category, or nil if the category is
// unknown. The returned slice must not be modified.
func (t *Taxonomy) Skills(category string) []string {
	return t.categories[category]
}

// All returns every skill in the taxonomy, traversing categories in
// stable order. Skills appearing in multiple categories appear once per
// occurrence.
func (t *Taxonomy) All() []string {
	var out []string
	for _, category := range t.order {
		out = append(out, t.categories[category]...)
	}
	return out
}
