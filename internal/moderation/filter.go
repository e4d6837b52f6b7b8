// Package moderation screens user-generated text against the admin-managed
// denylist.
package moderation

import (
	"context"
	"strings"
)

// WarningMessage is the text of the self-addressed notification issued when a
// post slips a denylisted word in. The post is still created (pending).
const WarningMessage = "Your message violates our community guidelines. Kindly refrain from using offensive words."

// WordSource supplies the current denylist.
type WordSource interface {
	Words(ctx context.Context) ([]string, error)
}

// Filter checks text against the denylist.
type Filter struct {
	source WordSource
}

// NewFilter creates a filter backed by the given denylist source.
func NewFilter(source WordSource) *Filter {
	return &Filter{source: source}
}

// Contains reports whether any of the given texts contains a denylisted word.
// Matching is case-insensitive substring containment, mirroring how entries
// are stored (lowercase).
func (f *Filter) Contains(ctx context.Context, texts ...string) (bool, error) {
	words, err := f.source.Words(ctx)
	if err != nil {
		return false, err
	}
	return ContainsAny(words, texts...), nil
}

// ContainsAny reports whether any text contains any denylisted word.
func ContainsAny(words []string, texts ...string) bool {
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, word := range words {
			if word != "" && strings.Contains(lower, word) {
				return true
			}
		}
	}
	return false
}
