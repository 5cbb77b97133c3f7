package book

import (
	"errors"
	"fmt"

	"github.com/jacksmith/pb/internal/model"
)

// ErrInvalidCriteria is returned when a search has no criteria or names an
// unknown field.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// Criterion is a single field=value condition for Search.
type Criterion struct {
	Field model.Field
	Value string
}

// Search returns the contacts matching every criterion, sorted by name.
// A criterion matches when the stored field equals the value, ignoring
// case. No match is an empty result, not an error.
func (b *Book) Search(criteria ...Criterion) ([]model.Entry, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: at least one criterion is required", ErrInvalidCriteria)
	}

	folded := make([]string, len(criteria))
	for i, c := range criteria {
		if !c.Field.Valid() {
			return nil, fmt.Errorf("%w: unknown field %s", ErrInvalidCriteria, c.Field)
		}
		folded[i] = fold(c.Value)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var matches []model.Entry
	for _, id := range b.order {
		c := b.contacts[id]
		if matchesAll(&c, criteria, folded) {
			matches = append(matches, model.Entry{ID: id, Contact: c})
		}
	}
	return matches, nil
}

func matchesAll(c *model.Contact, criteria []Criterion, folded []string) bool {
	for i, crit := range criteria {
		if fold(c.Get(crit.Field)) != folded[i] {
			return false
		}
	}
	return true
}

// DuplicateFields returns the fields that appear in more than one
// criterion, in first-seen order. Repeating a field is usually a mistake:
// two different values for it can never both match.
func DuplicateFields(criteria []Criterion) []model.Field {
	seen := make(map[model.Field]int, len(criteria))
	var dups []model.Field
	for _, c := range criteria {
		seen[c.Field]++
		if seen[c.Field] == 2 {
			dups = append(dups, c.Field)
		}
	}
	return dups
}
