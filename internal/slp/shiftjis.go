package slp

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// decodeShiftJIS converts a fixed-width Shift-JIS name field to UTF-8 and
// drops the zero padding. Undecodable bytes fall back to the raw string so
// one bad nametag never fails a whole parse.
func decodeShiftJIS(b []byte) string {
	raw := trimNulBytes(b)
	if len(raw) == 0 {
		return ""
	}
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func trimNulBytes(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// trimNul cuts a fixed-width ASCII field at its first NUL.
func trimNul(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}
