package book

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksmith/pb/internal/model"
	"github.com/jacksmith/pb/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store that records saves.
type memStore struct {
	entries []model.Entry
	skipped []string
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load() ([]model.Entry, []string, error) {
	if m.loadErr != nil {
		return nil, nil, m.loadErr
	}
	out := make([]model.Entry, len(m.entries))
	copy(out, m.entries)
	return out, m.skipped, nil
}

func (m *memStore) Save(entries []model.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.entries = make([]model.Entry, len(entries))
	copy(m.entries, entries)
	return nil
}

// setupTestBook creates a Book backed by a real file in a temp directory.
func setupTestBook(t *testing.T) (*Book, *storage.Storage) {
	t.Helper()

	s, err := storage.Open(filepath.Join(t.TempDir(), "data", "contacts.json"))
	require.NoError(t, err)

	b, err := New(s, Options{Rand: rand.New(rand.NewPCG(1, 2))})
	require.NoError(t, err)
	return b, s
}

func anna() model.Contact {
	return model.Contact{
		Name:           "Anna",
		Surname:        "Lee",
		Patronymic:     "",
		Organization:   "Acme",
		WorkNumber:     "111",
		PersonalNumber: "222",
	}
}

func TestNew(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		b, _ := setupTestBook(t)
		assert.Equal(t, 0, b.Len())
		assert.Empty(t, b.List())
	})

	t.Run("corrupt file starts empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "contacts.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
		s, err := storage.Open(path)
		require.NoError(t, err)

		b, err := New(s, Options{})
		require.NoError(t, err)
		assert.Equal(t, 0, b.Len())
	})

	t.Run("other load errors are returned", func(t *testing.T) {
		boom := errors.New("permission denied")
		_, err := New(&memStore{loadErr: boom}, Options{})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("existing contacts are loaded and sorted", func(t *testing.T) {
		store := &memStore{
			entries: []model.Entry{
				{ID: "1000", Contact: model.Contact{Name: "zoe"}},
				{ID: "2000", Contact: model.Contact{Name: "Adam"}},
				{ID: "3000", Contact: model.Contact{Name: ""}},
			},
			skipped: []string{"bogus"},
		}
		b, err := New(store, Options{})
		require.NoError(t, err)

		list := b.List()
		require.Len(t, list, 3)
		assert.Equal(t, []model.ID{"3000", "2000", "1000"}, ids(list))
		// Loading never writes
		assert.Equal(t, 0, store.saves)
	})
}

func TestAdd(t *testing.T) {
	t.Run("add then get returns the same contact", func(t *testing.T) {
		b, _ := setupTestBook(t)

		id, err := b.Add(anna())
		require.NoError(t, err)
		assert.True(t, id.Valid())
		assert.GreaterOrEqual(t, id.Number(), model.MinID)
		assert.LessOrEqual(t, id.Number(), model.MaxID)

		got, err := b.Get(id)
		require.NoError(t, err)
		assert.Equal(t, anna(), got)
	})

	t.Run("empty fields are allowed", func(t *testing.T) {
		b, _ := setupTestBook(t)

		id, err := b.Add(model.Contact{})
		require.NoError(t, err)

		got, err := b.Get(id)
		require.NoError(t, err)
		assert.Equal(t, model.Contact{}, got)
	})

	t.Run("ids are unique", func(t *testing.T) {
		store := &memStore{}
		b, err := New(store, Options{Rand: rand.New(rand.NewPCG(7, 7))})
		require.NoError(t, err)

		seen := map[model.ID]bool{}
		for i := 0; i < 500; i++ {
			id, err := b.Add(model.Contact{Name: "x"})
			require.NoError(t, err)
			require.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
		assert.Equal(t, 500, b.Len())
	})

	t.Run("add persists", func(t *testing.T) {
		b, s := setupTestBook(t)

		id, err := b.Add(anna())
		require.NoError(t, err)

		loaded, _, err := s.Load()
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, id, loaded[0].ID)
		assert.Equal(t, anna(), loaded[0].Contact)
	})

	t.Run("failed save leaves the book unchanged", func(t *testing.T) {
		store := &memStore{saveErr: errors.New("disk full")}
		b, err := New(store, Options{})
		require.NoError(t, err)

		_, err = b.Add(anna())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, 0, b.Len())
		assert.Empty(t, b.List())
	})
}

func TestAddIDSpace(t *testing.T) {
	full := func(skip int) []model.Entry {
		var entries []model.Entry
		for n := model.MinID; n <= model.MaxID; n++ {
			if n == skip {
				continue
			}
			id, err := model.FormatID(n)
			require.NoError(t, err)
			entries = append(entries, model.Entry{ID: id})
		}
		return entries
	}

	t.Run("full book returns exhaustion error", func(t *testing.T) {
		store := &memStore{entries: full(0)}
		b, err := New(store, Options{})
		require.NoError(t, err)
		require.Equal(t, model.IDSpace, b.Len())

		_, err = b.Add(anna())
		assert.ErrorIs(t, err, ErrIDSpaceExhausted)
		assert.Equal(t, 0, store.saves)
		assert.Equal(t, model.IDSpace, b.Len())
	})

	t.Run("last free id is found", func(t *testing.T) {
		store := &memStore{entries: full(5555)}
		b, err := New(store, Options{Rand: rand.New(rand.NewPCG(3, 4))})
		require.NoError(t, err)

		id, err := b.Add(anna())
		require.NoError(t, err)
		assert.Equal(t, model.ID("5555"), id)
	})

	t.Run("collisions are retried", func(t *testing.T) {
		// Every id but one is taken, so random draws almost always collide.
		store := &memStore{entries: full(1000)}
		b, err := New(store, Options{Rand: rand.New(rand.NewPCG(9, 9))})
		require.NoError(t, err)

		id, err := b.Add(model.Contact{})
		require.NoError(t, err)
		assert.Equal(t, model.ID("1000"), id)

		_, err = b.Add(model.Contact{})
		assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	})
}

func TestRemove(t *testing.T) {
	t.Run("remove then get is not found", func(t *testing.T) {
		b, s := setupTestBook(t)

		id, err := b.Add(anna())
		require.NoError(t, err)

		require.NoError(t, b.Remove(id))

		_, err = b.Get(id)
		assert.ErrorIs(t, err, ErrNotFound)

		loaded, _, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("remove missing id is a no-op", func(t *testing.T) {
		store := &memStore{entries: []model.Entry{{ID: "1000", Contact: anna()}}}
		b, err := New(store, Options{})
		require.NoError(t, err)

		err = b.Remove("2000")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, b.Len())
		assert.Equal(t, 0, store.saves)
	})

	t.Run("failed save restores the contact", func(t *testing.T) {
		store := &memStore{entries: []model.Entry{{ID: "1000", Contact: anna()}}}
		b, err := New(store, Options{})
		require.NoError(t, err)

		store.saveErr = errors.New("read-only file system")
		err = b.Remove("1000")
		require.Error(t, err)

		got, err := b.Get("1000")
		require.NoError(t, err)
		assert.Equal(t, anna(), got)
		assert.Len(t, b.List(), 1)
	})
}

func TestEdit(t *testing.T) {
	for _, field := range model.Fields {
		t.Run("edit changes only "+field.Key(), func(t *testing.T) {
			b, _ := setupTestBook(t)
			id, err := b.Add(anna())
			require.NoError(t, err)

			require.NoError(t, b.Edit(id, field, "changed"))

			got, err := b.Get(id)
			require.NoError(t, err)

			want := anna()
			require.NoError(t, want.Set(field, "changed"))
			assert.Equal(t, want, got)
		})
	}

	t.Run("unknown field fails and leaves contact untouched", func(t *testing.T) {
		store := &memStore{entries: []model.Entry{{ID: "1000", Contact: anna()}}}
		b, err := New(store, Options{})
		require.NoError(t, err)

		err = b.Edit("1000", model.Field(99), "x")
		assert.ErrorIs(t, err, ErrInvalidField)

		got, _ := b.Get("1000")
		assert.Equal(t, anna(), got)
		assert.Equal(t, 0, store.saves)
	})

	t.Run("missing id", func(t *testing.T) {
		b, _ := setupTestBook(t)
		err := b.Edit("1000", model.FieldName, "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("edit re-sorts by name", func(t *testing.T) {
		store := &memStore{entries: []model.Entry{
			{ID: "1000", Contact: model.Contact{Name: "Anna"}},
			{ID: "2000", Contact: model.Contact{Name: "Boris"}},
		}}
		b, err := New(store, Options{})
		require.NoError(t, err)

		require.NoError(t, b.Edit("1000", model.FieldName, "Zed"))
		assert.Equal(t, []model.ID{"2000", "1000"}, ids(b.List()))
		// The saved document follows the new order
		assert.Equal(t, []model.ID{"2000", "1000"}, ids(store.entries))
	})

	t.Run("failed save restores the old value", func(t *testing.T) {
		store := &memStore{entries: []model.Entry{{ID: "1000", Contact: anna()}}}
		b, err := New(store, Options{})
		require.NoError(t, err)

		store.saveErr = errors.New("disk full")
		require.Error(t, b.Edit("1000", model.FieldName, "Zed"))

		got, _ := b.Get("1000")
		assert.Equal(t, "Anna", got.Name)
	})
}

func TestListSorted(t *testing.T) {
	names := []string{"charlie", "Bravo", "", "alpha", "ALPHA", "Élan", "delta"}

	orders := [][]int{
		{0, 1, 2, 3, 4, 5, 6},
		{6, 5, 4, 3, 2, 1, 0},
		{3, 0, 6, 2, 5, 1, 4},
	}

	for _, order := range orders {
		b, err := New(&memStore{}, Options{})
		require.NoError(t, err)
		for _, i := range order {
			_, err := b.Add(model.Contact{Name: names[i]})
			require.NoError(t, err)
		}

		var got []string
		for _, e := range b.List() {
			got = append(got, e.Contact.Name)
		}

		// Empty first, then case-insensitive order
		require.Len(t, got, len(names))
		assert.Equal(t, "", got[0])
		assert.ElementsMatch(t, []string{"alpha", "ALPHA"}, got[1:3])
		assert.Equal(t, []string{"Bravo", "charlie", "delta", "Élan"}, got[3:])
	}
}

func TestListFiltered(t *testing.T) {
	b, err := New(&memStore{}, Options{})
	require.NoError(t, err)

	filter := []model.Entry{
		{ID: "2000", Contact: model.Contact{Name: "b"}},
		{ID: "1000", Contact: model.Contact{Name: "A"}},
	}
	got := b.ListFiltered(filter)
	assert.Equal(t, []model.ID{"1000", "2000"}, ids(got))

	// Input is not modified
	assert.Equal(t, model.ID("2000"), filter[0].ID)

	assert.Empty(t, b.ListFiltered(nil))
}

func TestListReturnsCopies(t *testing.T) {
	store := &memStore{entries: []model.Entry{{ID: "1000", Contact: anna()}}}
	b, err := New(store, Options{})
	require.NoError(t, err)

	list := b.List()
	list[0].Contact.Name = "mutated"

	got, _ := b.Get("1000")
	assert.Equal(t, "Anna", got.Name)
}

func TestPersistRoundTrip(t *testing.T) {
	b, s := setupTestBook(t)

	contacts := []model.Contact{
		{Name: "Ёжик", Surname: "Туманный", Patronymic: "Иванович", Organization: "Лес, ООО"},
		{Name: "O'Brien", Surname: "Smith, Jr.", WorkNumber: "+1 (555) 010-0000"},
		{Name: "", Organization: "a,b,c", PersonalNumber: ""},
		{Name: "李", Surname: "\"quoted\"\nnewline"},
	}
	for _, c := range contacts {
		_, err := b.Add(c)
		require.NoError(t, err)
	}
	before := b.List()

	reloaded, err := New(s, Options{})
	require.NoError(t, err)
	assert.Equal(t, before, reloaded.List())
}

func TestSortEntries(t *testing.T) {
	entries := []model.Entry{
		{ID: "3000", Contact: model.Contact{Name: "b"}},
		{ID: "2000", Contact: model.Contact{Name: "B"}},
		{ID: "1000", Contact: model.Contact{Name: "a"}},
		{ID: "4000", Contact: model.Contact{Name: ""}},
	}
	SortEntries(entries)
	assert.Equal(t, []model.ID{"4000", "1000", "2000", "3000"}, ids(entries))
}

func ids(entries []model.Entry) []model.ID {
	out := make([]model.ID, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
