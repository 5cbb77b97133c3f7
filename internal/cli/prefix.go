// Package cli provides CLI infrastructure for pb.
package cli

import (
	"fmt"
	"strings"

	"github.com/jacksmith/pb/internal/model"
)

// MatchPrefix finds a unique candidate from a prefix.
// Returns the matched candidate or an error if ambiguous or no match.
func MatchPrefix(prefix string, candidates []string) (string, error) {
	prefix = strings.ToLower(prefix)

	// First check for exact match
	for _, c := range candidates {
		if strings.ToLower(c) == prefix {
			return c, nil
		}
	}

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown field %q (valid: %s)", prefix, strings.Join(candidates, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous field %q matches: %s", prefix, strings.Join(matches, ", "))
	}
}

// MatchField resolves a field from its key or a unique prefix of it
// ("org" -> organization, "work" -> work_number). Hyphens may stand in for
// underscores.
func MatchField(s string) (model.Field, error) {
	if f, err := model.ParseField(s); err == nil {
		return f, nil
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(s), "-", "_")
	if normalized == "" {
		return 0, fmt.Errorf("%w: empty field name", model.ErrInvalidField)
	}

	key, err := MatchPrefix(normalized, model.FieldKeys())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrInvalidField, err)
	}
	return model.ParseField(key)
}
