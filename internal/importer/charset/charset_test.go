package charset_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/tally/internal/importer/charset"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := charset.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	const text = "Descrição;Montante\nCafé;12,50\n"

	windows1252, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "UTF8Passthrough", input: []byte(text)},
		{name: "UTF8BOMStripped", input: append([]byte{0xEF, 0xBB, 0xBF}, text...)},
		{name: "Windows1252", input: windows1252},
		{name: "UTF16LEWithBOM", input: utf16le},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, text, readAll(t, tt.input))
		})
	}
}

func TestNewUTF8Reader_EmptyInput(t *testing.T) {
	assert.Empty(t, readAll(t, nil))
}

func TestNewUTF8Reader_RuneSplitAtSampleBoundary(t *testing.T) {
	// 4095 ASCII bytes followed by a two-byte rune: the sniffed sample ends mid-rune.
	input := strings.Repeat("a", 4095) + "ção"

	assert.Equal(t, input, readAll(t, []byte(input)))
}
