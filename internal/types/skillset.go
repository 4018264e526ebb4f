// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SkillSet is a de-duplicated set of lowercase skill tokens. Membership is
// case-insensitive exact string match. Iteration follows insertion order
// so that identical inputs always produce identical output; do not rely on
// any semantic meaning of that order.
type SkillSet struct {
	order []string
	index map[string]struct{}
}

// NewSkillSet returns an empty SkillSet.
func NewSkillSet() *SkillSet {
	return &SkillSet{index: make(map[string]struct{})}
}

// SkillSetOf builds a SkillSet from the given tokens.
func SkillSetOf(skills ...string) *SkillSet {
	s := NewSkillSet()
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

// Add inserts a skill, lowercasing and trimming it first. Empty tokens and
// duplicates are ignored.
func (s *SkillSet) Add(skill string) {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	if normalized == "" {
		return
	}
	if _, ok := s.index[normalized]; ok {
		return
	}
	s.index[normalized] = struct{}{}
	s.order = append(s.order, normalized)
}

// Contains reports whether the skill is in the set (case-insensitive).
func (s *SkillSet) Contains(skill string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// Len returns the number of skills in the set.
func (s *SkillSet) Len() int {
	return len(s.order)
}

// Slice returns the skills in insertion order. The returned slice is a
// copy; mutating it does not affect the set.
func (s *SkillSet) Slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Intersect returns the skills present in both sets, in this set's
// insertion order.
func (s *SkillSet) Intersect(other *SkillSet) *SkillSet {
	result := NewSkillSet()
	if other == nil {
		return result
	}
	for _, skill := range s.order {
		if other.Contains(skill) {
			result.Add(skill)
		}
	}
	return result
}

// Difference returns the skills present in this set but not in other, in
// this set's insertion order.
func (s *SkillSet) Difference(other *SkillSet) *SkillSet {
	result := NewSkillSet()
	for _, skill := range s.order {
		if other == nil || !other.Contains(skill) {
			result.Add(skill)
		}
	}
	return result
}

// Union returns a new set containing skills from both sets, this set's
// entries first.
func (s *SkillSet) Union(other *SkillSet) *SkillSet {
	result := NewSkillSet()
	for _, skill := range s.order {
		result.Add(skill)
	}
	if other != nil {
		for _, skill := range other.order {
			result.Add(skill)
		}
	}
	return result
}
