package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Acme Corp", "acme corp"},
		{"strips punctuation", "Acme, Corp. & Sons!", "acme corp sons"},
		{"collapses whitespace", "Acme   Corp \t LLC", "acme corp llc"},
		{"trims", "  Acme  ", "acme"},
		{"punctuation only", "&!?,.", ""},
		{"keeps digits", "Route 66 Hauling", "route 66 hauling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestMatch(t *testing.T) {
	known := []string{"Acme Corp", "Beta LLC", "Acme Corp East", "Jo"}
	m := NewMatcher(DefaultConfig())

	t.Run("exact match after normalization", func(t *testing.T) {
		client, ok := m.Match("ACME corp!", known)
		assert.True(t, ok)
		assert.Equal(t, "Acme Corp", client)
	})

	t.Run("every known client matches itself", func(t *testing.T) {
		for _, k := range known {
			client, ok := m.Match(k, known)
			assert.True(t, ok, "expected %q to match itself", k)
			assert.Equal(t, k, client)
		}
	})

	t.Run("containment prefers the longest known client", func(t *testing.T) {
		client, ok := m.Match("Visit to Acme Corp East warehouse", known)
		assert.True(t, ok)
		assert.Equal(t, "Acme Corp East", client)
	})

	t.Run("containment matches anywhere in the raw name", func(t *testing.T) {
		client, ok := m.Match("Quarterly - Beta LLC onsite", known)
		assert.True(t, ok)
		assert.Equal(t, "Beta LLC", client)
	})

	t.Run("short known clients are skipped by containment", func(t *testing.T) {
		// "Jo" normalizes to 2 chars, below the floor; "John's party"
		// must not match client "Jo".
		_, ok := m.Match("John's party", known)
		assert.False(t, ok)
	})

	t.Run("no match for unrelated names", func(t *testing.T) {
		_, ok := m.Match("Completely Different Client", known)
		assert.False(t, ok)
	})

	t.Run("empty raw name never matches", func(t *testing.T) {
		_, ok := m.Match("", known)
		assert.False(t, ok)

		_, ok = m.Match("...", known)
		assert.False(t, ok)
	})

	t.Run("no known clients means no match", func(t *testing.T) {
		_, ok := m.Match("Acme Corp", nil)
		assert.False(t, ok)
	})

	t.Run("three character floor is inclusive", func(t *testing.T) {
		client, ok := m.Match("ABC pickup run", []string{"ABC"})
		assert.True(t, ok)
		assert.Equal(t, "ABC", client)
	})
}
