// Package matcher resolves a raw client name extracted from a calendar
// summary against the set of known clients.
//
// Matching is best-effort and ambiguity-free; strategies are tried in
// priority order and the first hit wins:
//  1. Exact match after normalization
//  2. Containment: known client's normalized form is a substring of the
//     normalized raw name (longest known clients first)
//  3. Prefix: normalized raw name starts with the known client's
//     normalized form (same order)
//
// Example usage:
//
//	m := matcher.NewMatcher(matcher.DefaultConfig())
//	client, ok := m.Match("Acme Corp - site visit", knownClients)
package matcher

import (
	"regexp"
	"sort"
	"strings"
)

var (
	nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]+`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// Matcher matches raw names against known clients
type Matcher struct {
	config Config
}

// NewMatcher creates a new matcher with the given config
func NewMatcher(config Config) *Matcher {
	if config.MinMatchLength <= 0 {
		config.MinMatchLength = DefaultConfig().MinMatchLength
	}
	return &Matcher{config: config}
}

// Match finds the known client best matching rawName.
// Returns the stored (un-normalized) client name and whether a match was
// found.
func (m *Matcher) Match(rawName string, knownClients []string) (string, bool) {
	raw := Normalize(rawName)
	if raw == "" {
		return "", false
	}

	type candidate struct {
		stored     string
		normalized string
	}

	candidates := make([]candidate, 0, len(knownClients))
	for _, client := range knownClients {
		n := Normalize(client)
		if n == "" {
			continue
		}
		candidates = append(candidates, candidate{stored: client, normalized: n})
	}

	// Exact match first.
	for _, c := range candidates {
		if c.normalized == raw {
			return c.stored, true
		}
	}

	// Longest-first so the most specific known client wins when several
	// could match.
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].normalized) > len(candidates[j].normalized)
	})

	for _, c := range candidates {
		if len(c.normalized) >= m.config.MinMatchLength && strings.Contains(raw, c.normalized) {
			return c.stored, true
		}
	}

	for _, c := range candidates {
		if len(c.normalized) >= m.config.MinMatchLength && strings.HasPrefix(raw, c.normalized) {
			return c.stored, true
		}
	}

	return "", false
}

// Normalize lowercases, strips everything outside [a-z0-9\s], collapses
// whitespace runs, and trims.
func Normalize(name string) string {
	n := strings.ToLower(name)
	n = nonAlnumSpace.ReplaceAllString(n, "")
	n = spaceRun.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}
