// Package book implements the contact store: the in-memory address book,
// its persistence after every change, id generation, search and paging.
package book

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/jacksmith/pb/internal/model"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

var (
	// ErrNotFound is returned when a contact id is not in the book.
	ErrNotFound = errors.New("contact not found")

	// ErrInvalidField is returned when an edit names an unknown field.
	ErrInvalidField = model.ErrInvalidField

	// ErrIDSpaceExhausted is returned by Add when all 9000 ids are taken.
	ErrIDSpaceExhausted = errors.New("no free contact IDs left")
)

// randomIDAttempts bounds random id draws before Add falls back to a scan.
const randomIDAttempts = 64

// Store is the persistence the book needs. The concrete implementation is
// storage.Storage; tests use an in-memory fake.
type Store interface {
	Load() (entries []model.Entry, skipped []string, err error)
	Save(entries []model.Entry) error
}

// Options configures a Book.
type Options struct {
	// Logger receives load and persist diagnostics. Nil means no logging.
	Logger *zap.Logger

	// Rand drives id generation. Nil uses the shared generator.
	Rand *rand.Rand
}

// Book owns the contacts collection. All methods are safe for concurrent
// use; every mutation is written through to the Store before it returns.
type Book struct {
	mu       sync.Mutex
	store    Store
	contacts map[model.ID]model.Contact
	order    []model.ID // ids sorted by folded name, then id
	intN     func(n int) int
	log      *zap.Logger
}

// New creates a Book hydrated from store.
// A missing or corrupt document yields an empty book; only other read
// failures (permissions, I/O) are returned as errors.
func New(store Store, opts Options) (*Book, error) {
	b := &Book{
		store:    store,
		contacts: make(map[model.ID]model.Contact),
		intN:     rand.IntN,
		log:      opts.Logger,
	}
	if opts.Rand != nil {
		b.intN = opts.Rand.IntN
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}

	entries, skipped, err := store.Load()
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		b.log.Debug("no contacts file yet, starting empty")
	case errors.Is(err, model.ErrCorruptDocument):
		b.log.Warn("contacts file unreadable, starting empty", zap.Error(err))
	default:
		return nil, err
	}

	for _, key := range skipped {
		b.log.Warn("skipping record with invalid id", zap.String("key", key))
	}
	for _, e := range entries {
		b.contacts[e.ID] = e.Contact
	}
	b.resort()

	b.log.Debug("contacts loaded", zap.Int("count", len(b.contacts)))
	return b, nil
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.contacts)
}

// List returns all contacts sorted by name.
func (b *Book) List() []model.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries()
}

// ListFiltered returns a pre-filtered set (for example a search result) in
// the same order List uses.
func (b *Book) ListFiltered(filter []model.Entry) []model.Entry {
	out := make([]model.Entry, len(filter))
	copy(out, filter)
	SortEntries(out)
	return out
}

// Get returns the contact with the given id.
func (b *Book) Get(id model.ID) (model.Contact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.contacts[id]
	if !ok {
		return model.Contact{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

// Add stores c under a fresh id and returns the id.
func (b *Book) Add(c model.Contact) (model.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, err := b.newID()
	if err != nil {
		return "", err
	}

	b.contacts[id] = c
	if err := b.persist(); err != nil {
		delete(b.contacts, id)
		b.resort()
		return "", err
	}

	b.log.Debug("contact added", zap.Stringer("id", id))
	return id, nil
}

// Remove deletes the contact with the given id.
// Callers confirm with the user first; Remove itself does not ask.
func (b *Book) Remove(id model.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	old, ok := b.contacts[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	delete(b.contacts, id)
	if err := b.persist(); err != nil {
		b.contacts[id] = old
		b.resort()
		return err
	}

	b.log.Debug("contact removed", zap.Stringer("id", id))
	return nil
}

// Edit overwrites one field of the contact with the given id.
func (b *Book) Edit(id model.ID, field model.Field, value string) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	old, ok := b.contacts[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := old
	if err := updated.Set(field, value); err != nil {
		return err
	}

	b.contacts[id] = updated
	if err := b.persist(); err != nil {
		b.contacts[id] = old
		b.resort()
		return err
	}

	b.log.Debug("contact edited", zap.Stringer("id", id), zap.Stringer("field", field))
	return nil
}

// newID picks an unused id. It tries random ids first, then scans the id
// space from a random offset so a nearly full book still finds a free id.
func (b *Book) newID() (model.ID, error) {
	if len(b.contacts) >= model.IDSpace {
		return "", ErrIDSpaceExhausted
	}

	for i := 0; i < randomIDAttempts; i++ {
		id := idAt(b.intN(model.IDSpace))
		if _, taken := b.contacts[id]; !taken {
			return id, nil
		}
	}

	start := b.intN(model.IDSpace)
	for i := 0; i < model.IDSpace; i++ {
		id := idAt((start + i) % model.IDSpace)
		if _, taken := b.contacts[id]; !taken {
			return id, nil
		}
	}

	return "", ErrIDSpaceExhausted
}

func idAt(offset int) model.ID {
	return model.ID(strconv.Itoa(model.MinID + offset))
}

// persist re-sorts and writes the whole book. Callers hold b.mu and undo
// their change if persist fails.
func (b *Book) persist() error {
	b.resort()
	if err := b.store.Save(b.entries()); err != nil {
		b.log.Error("failed to save contacts", zap.Error(err))
		return fmt.Errorf("failed to save contacts: %w", err)
	}
	b.log.Debug("contacts saved", zap.Int("count", len(b.order)))
	return nil
}

// resort rebuilds b.order from b.contacts.
func (b *Book) resort() {
	entries := make([]model.Entry, 0, len(b.contacts))
	for id, c := range b.contacts {
		entries = append(entries, model.Entry{ID: id, Contact: c})
	}
	SortEntries(entries)

	b.order = b.order[:0]
	for _, e := range entries {
		b.order = append(b.order, e.ID)
	}
}

// entries returns a copy of the book in sorted order. Callers hold b.mu.
func (b *Book) entries() []model.Entry {
	out := make([]model.Entry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, model.Entry{ID: id, Contact: b.contacts[id]})
	}
	return out
}

// SortEntries sorts entries by name, ignoring case, with empty names first.
// Equal names are ordered by id.
func SortEntries(entries []model.Entry) {
	keys := make(map[model.ID]string, len(entries))
	for _, e := range entries {
		keys[e.ID] = fold(e.Contact.Name)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ki, kj := keys[entries[i].ID], keys[entries[j].ID]
		if ki != kj {
			return ki < kj
		}
		return entries[i].ID < entries[j].ID
	})
}

// fold returns the case-folded form of s used for ordering and matching.
func fold(s string) string {
	return cases.Fold().String(s)
}
