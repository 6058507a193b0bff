package demo

import (
	"github.com/sahilm/fuzzy"
)

type secretSource []Secret

func (s secretSource) String(i int) string { return s[i].Name }
func (s secretSource) Len() int            { return len(s) }

// Filter returns the secrets whose names fuzzy-match query, best match
// first. An empty query keeps every secret in its original order.
func Filter(secrets []Secret, query string) []Secret {
	if query == "" {
		return secrets
	}
	matches := fuzzy.FindFrom(query, secretSource(secrets))
	out := make([]Secret, len(matches))
	for i, m := range matches {
		out[i] = secrets[m.Index]
	}
	return out
}
