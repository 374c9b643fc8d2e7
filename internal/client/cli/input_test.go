package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trims newline and spaces", input: "  admin \n", want: "admin"},
		{name: "partial line at EOF", input: "admin", want: "admin"},
		{name: "empty line", input: "\n", want: ""},
		{name: "EOF without input", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "Enter username", &w)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Enter username\n> ", w.String())
		})
	}
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("admin123"), nil }
	var w bytes.Buffer
	pw, err := GetPassword(&w)
	require.NoError(t, err)
	assert.Equal(t, []byte("admin123"), pw)
	assert.Equal(t, "Enter password: \n", w.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetPassword(&w)
	require.Error(t, err)
}

func TestGetInt(t *testing.T) {
	var w bytes.Buffer

	n, err := GetInt(bufio.NewReader(strings.NewReader("42\n")), "Quantity", &w, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = GetInt(bufio.NewReader(strings.NewReader("\n")), "Supplier id", &w, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Contains(t, w.String(), "Supplier id [7]")

	_, err = GetInt(bufio.NewReader(strings.NewReader("many\n")), "Quantity", &w, 0)
	require.Error(t, err)
}

func TestGetYesNo(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "是\n": true, "n\n": false, "\n": false, "": false} {
		var w bytes.Buffer
		assert.Equal(t, want, GetYesNo(bufio.NewReader(strings.NewReader(input)), "Remember me?", &w), "input %q", input)
	}
}
