package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziz0u9/MillesBTP-sub000/internal/encoding"
)

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()

	data, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(data)
}

func TestNewUTF8Reader_PassesThroughUTF8(t *testing.T) {
	in := "Date;Libellé;Montant\n01/03/2025;Béton C25/30;1 234,56\n"

	r, err := encoding.NewUTF8Reader(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, in, readAll(t, r))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date;Montant\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "Date;Montant\n", readAll(t, r))
}

func TestNewUTF8Reader_DecodesLatin(t *testing.T) {
	// "Libellé" with é encoded as 0xE9 (shared by Windows-1252, ISO-8859-1
	// and ISO-8859-15).
	in := []byte("Date;Libell\xe9;Montant\n01/03/2025;B\xe9ton;500,00\n")

	r, err := encoding.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)

	out := readAll(t, r)
	assert.Contains(t, out, "Libellé")
	assert.Contains(t, out, "Béton")
}

func TestNewUTF8Reader_DecodesUTF16LE(t *testing.T) {
	var buf bytes.Buffer

	buf.Write([]byte{0xFF, 0xFE})

	for _, r := range "Date;Montant\n" {
		buf.WriteByte(byte(r))
		buf.WriteByte(0x00)
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, "Date;Montant\n", readAll(t, r))
}
