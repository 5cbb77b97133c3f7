package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Contact id range. Ids are the decimal form of a number in [MinID, MaxID].
const (
	MinID = 1000
	MaxID = 9999

	// IDSpace is the number of distinct ids.
	IDSpace = MaxID - MinID + 1
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// idRegex matches ids like 1000, 4821, 9999
	idRegex = regexp.MustCompile(`^[1-9]\d{3}$`)
)

// ID is a 4-digit numeric contact identifier.
type ID string

// ParseID validates s as a contact id.
// Surrounding whitespace is ignored; anything other than four digits in
// 1000-9999 returns ErrInvalidID.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if !idRegex.MatchString(s) {
		return "", fmt.Errorf("%w: %q is not a 4-digit contact ID", ErrInvalidID, s)
	}
	return ID(s), nil
}

// FormatID converts a number to an ID. The number must be in [MinID, MaxID].
func FormatID(n int) (ID, error) {
	if n < MinID || n > MaxID {
		return "", fmt.Errorf("%w: %d out of range %d-%d", ErrInvalidID, n, MinID, MaxID)
	}
	return ID(strconv.Itoa(n)), nil
}

// Number returns the numeric value of the id, or 0 if the id is invalid.
func (id ID) Number() int {
	if !id.Valid() {
		return 0
	}
	n, _ := strconv.Atoi(string(id))
	return n
}

// Valid reports whether id is a well-formed contact id.
func (id ID) Valid() bool {
	return idRegex.MatchString(string(id))
}

func (id ID) String() string {
	return string(id)
}
