package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "lower bound", input: "1000", want: "1000"},
		{name: "upper bound", input: "9999", want: "9999"},
		{name: "typical", input: "4821", want: "4821"},
		{name: "surrounding whitespace", input: "  4821\n", want: "4821"},
		// Error cases
		{name: "empty", input: "", wantErr: true},
		{name: "three digits", input: "999", wantErr: true},
		{name: "five digits", input: "10000", wantErr: true},
		{name: "leading zero", input: "0123", wantErr: true},
		{name: "letters", input: "12a4", wantErr: true},
		{name: "signed", input: "+123", wantErr: true},
		{name: "menu exit code", input: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatID(t *testing.T) {
	id, err := FormatID(1000)
	require.NoError(t, err)
	assert.Equal(t, ID("1000"), id)

	id, err = FormatID(9999)
	require.NoError(t, err)
	assert.Equal(t, ID("9999"), id)

	_, err = FormatID(999)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = FormatID(10000)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestIDNumber(t *testing.T) {
	assert.Equal(t, 4821, ID("4821").Number())
	assert.Equal(t, 0, ID("abc").Number())
	assert.Equal(t, 0, ID("").Number())
}

func TestIDValid(t *testing.T) {
	assert.True(t, ID("1000").Valid())
	assert.False(t, ID("0999").Valid())
	assert.False(t, ID(" 1000").Valid())
}

func TestIDSpace(t *testing.T) {
	assert.Equal(t, 9000, IDSpace)
}
