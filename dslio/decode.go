package dslio

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readSource reads all of r as UTF-8 text. A leading byte order mark is
// dropped. Input that is not valid UTF-8 is assumed to be ISO 8859-1, which
// is what older editors produce for accented player names.
func readSource(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	log.Debug().Msg("source is not utf-8, decoding as iso-8859-1")
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
