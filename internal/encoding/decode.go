package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so its content reads back as UTF-8. French accounting
// software exports CSV in a mix of encodings, most commonly Windows-1252 or
// ISO-8859-15 (Latin-9, which carries the euro sign), sometimes UTF-8 or
// UTF-16 with a BOM.
//
// Detection order: BOM, valid UTF-8 as-is, chardet heuristic, then an
// ISO-8859-15 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	// Peek enough bytes for BOM detection and charset heuristics.
	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	dec := detectedDecoder(buf)
	if dec == nil {
		return br, nil
	}

	return transform.NewReader(br, dec.NewDecoder()), nil
}

// detectedDecoder picks a single-byte decoder from the chardet guess. Nil
// means the content should be passed through untouched.
func detectedDecoder(buf []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return charmap.ISO8859_15
	}

	switch result.Charset {
	case "UTF-8":
		return nil
	case "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-1":
		// Latin-1 and Latin-9 differ only in positions accounting exports
		// use for the euro sign; prefer Latin-9.
		return charmap.ISO8859_15
	case "ISO-8859-15":
		return charmap.ISO8859_15
	}

	return charmap.ISO8859_15
}
