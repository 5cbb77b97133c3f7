package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrCorruptDocument is returned when a contacts document cannot be parsed.
var ErrCorruptDocument = errors.New("corrupt contacts document")

// documentIndent is the indentation used for the on-disk document.
const documentIndent = "    "

// rawContact mirrors a stored record. Pointer fields distinguish a missing
// patronymic from an empty one so the legacy key can fill in.
type rawContact struct {
	Name           string  `json:"name"`
	Surname        string  `json:"surname"`
	Patronymic     *string `json:"patronymic"`
	Desperation    *string `json:"desperation"`
	Organization   string  `json:"organization"`
	WorkNumber     string  `json:"work_number"`
	PersonalNumber string  `json:"personal_number"`
}

func (r *rawContact) contact() Contact {
	if r == nil {
		return Contact{}
	}
	c := Contact{
		Name:           r.Name,
		Surname:        r.Surname,
		Organization:   r.Organization,
		WorkNumber:     r.WorkNumber,
		PersonalNumber: r.PersonalNumber,
	}
	switch {
	case r.Patronymic != nil:
		c.Patronymic = *r.Patronymic
	case r.Desperation != nil:
		c.Patronymic = *r.Desperation
	}
	return c
}

// DecodeContacts parses a contacts document.
// Entries are returned in ascending id order. Keys that are not valid ids
// are not returned as entries; they are reported in skipped instead.
// Missing fields decode as empty strings and null records as empty contacts.
func DecodeContacts(data []byte) (entries []Entry, skipped []string, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, fmt.Errorf("%w: empty document", ErrCorruptDocument)
	}

	var doc map[string]*rawContact
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc == nil {
		return nil, nil, fmt.Errorf("%w: top-level value is not an object", ErrCorruptDocument)
	}

	for key, raw := range doc {
		id, err := ParseID(key)
		if err != nil || string(id) != key {
			skipped = append(skipped, key)
			continue
		}
		entries = append(entries, Entry{ID: id, Contact: raw.contact()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	sort.Strings(skipped)

	return entries, skipped, nil
}

// EncodeContacts renders entries as an indented JSON object, preserving the
// order of entries. Non-ASCII text is written as-is and HTML characters are
// not escaped.
func EncodeContacts(entries []Entry) ([]byte, error) {
	seen := make(map[ID]bool, len(entries))

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if !e.ID.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, e.ID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate contact ID %s", e.ID)
		}
		seen[e.ID] = true

		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(string(e.ID))
		if err != nil {
			return nil, err
		}
		value, err := marshalUnescaped(e.Contact)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", documentIndent); err != nil {
		return nil, fmt.Errorf("failed to indent contacts: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode contact: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// LoadContacts reads and decodes the contacts document at path.
// A missing file returns an error matching os.ErrNotExist.
func LoadContacts(path string) ([]Entry, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read contacts file %s: %w", path, err)
	}

	entries, skipped, err := DecodeContacts(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse contacts file %s: %w", path, err)
	}
	return entries, skipped, nil
}

// SaveContacts writes entries to path in the given order.
// The document is written to a temporary file in the same directory and
// renamed over path, so readers never observe a partial write.
func SaveContacts(path string, entries []Entry) error {
	data, err := EncodeContacts(entries)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".contacts-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write contacts file %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync contacts file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close contacts file %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write contacts file %s: %w", path, err)
	}

	return nil
}
