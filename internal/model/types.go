// Package model defines the core data structures for pb.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidField is returned when a field name or menu code does not name
// one of the six contact fields.
var ErrInvalidField = errors.New("invalid field")

// Field identifies one of the six contact attributes.
type Field int

const (
	FieldName Field = iota + 1
	FieldSurname
	FieldPatronymic
	FieldOrganization
	FieldWorkNumber
	FieldPersonalNumber
)

// Fields lists every field in display and menu order.
var Fields = []Field{
	FieldName,
	FieldSurname,
	FieldPatronymic,
	FieldOrganization,
	FieldWorkNumber,
	FieldPersonalNumber,
}

var fieldKeys = map[Field]string{
	FieldName:           "name",
	FieldSurname:        "surname",
	FieldPatronymic:     "patronymic",
	FieldOrganization:   "organization",
	FieldWorkNumber:     "work_number",
	FieldPersonalNumber: "personal_number",
}

var fieldLabels = map[Field]string{
	FieldName:           "Name",
	FieldSurname:        "Surname",
	FieldPatronymic:     "Patronymic",
	FieldOrganization:   "Organization",
	FieldWorkNumber:     "Work phone",
	FieldPersonalNumber: "Personal phone",
}

// legacyPatronymicKey is how older data files stored the patronymic.
const legacyPatronymicKey = "desperation"

// Valid reports whether f is one of the six known fields.
func (f Field) Valid() bool {
	_, ok := fieldKeys[f]
	return ok
}

// Key returns the JSON key of the field.
func (f Field) Key() string {
	if k, ok := fieldKeys[f]; ok {
		return k
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Label returns the human-readable name of the field.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return f.Key()
}

// Code returns the single-character menu code of the field ("1".."6").
func (f Field) Code() string {
	if !f.Valid() {
		return ""
	}
	return fmt.Sprintf("%d", int(f))
}

func (f Field) String() string {
	return f.Key()
}

// ParseField resolves a field from its JSON key.
// Matching is case-insensitive and accepts "-" in place of "_".
// The legacy key "desperation" resolves to FieldPatronymic.
func ParseField(s string) (Field, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == legacyPatronymicKey {
		return FieldPatronymic, nil
	}
	for _, f := range Fields {
		if fieldKeys[f] == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidField, s)
}

// FieldByCode resolves a field from its menu code ("1".."6").
func FieldByCode(code string) (Field, error) {
	code = strings.TrimSpace(code)
	for _, f := range Fields {
		if f.Code() == code {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown code %q", ErrInvalidField, code)
}

// FieldKeys returns the JSON keys of all fields in menu order.
func FieldKeys() []string {
	keys := make([]string, len(Fields))
	for i, f := range Fields {
		keys[i] = f.Key()
	}
	return keys
}

// Contact is a single address-book record.
type Contact struct {
	Name           string `json:"name" yaml:"name"`
	Surname        string `json:"surname" yaml:"surname"`
	Patronymic     string `json:"patronymic" yaml:"patronymic"`
	Organization   string `json:"organization" yaml:"organization"`
	WorkNumber     string `json:"work_number" yaml:"work_number"`
	PersonalNumber string `json:"personal_number" yaml:"personal_number"`
}

// Get returns the value of field f. Unknown fields return "".
func (c *Contact) Get(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldSurname:
		return c.Surname
	case FieldPatronymic:
		return c.Patronymic
	case FieldOrganization:
		return c.Organization
	case FieldWorkNumber:
		return c.WorkNumber
	case FieldPersonalNumber:
		return c.PersonalNumber
	}
	return ""
}

// Set overwrites field f with value.
// Returns ErrInvalidField if f is not a known field.
func (c *Contact) Set(f Field, value string) error {
	switch f {
	case FieldName:
		c.Name = value
	case FieldSurname:
		c.Surname = value
	case FieldPatronymic:
		c.Patronymic = value
	case FieldOrganization:
		c.Organization = value
	case FieldWorkNumber:
		c.WorkNumber = value
	case FieldPersonalNumber:
		c.PersonalNumber = value
	default:
		return fmt.Errorf("%w: %d", ErrInvalidField, int(f))
	}
	return nil
}

// FullName joins name, surname and patronymic, skipping empty parts.
func (c *Contact) FullName() string {
	var parts []string
	for _, p := range []string{c.Name, c.Surname, c.Patronymic} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Entry pairs a contact with its id.
type Entry struct {
	ID      ID
	Contact Contact
}
