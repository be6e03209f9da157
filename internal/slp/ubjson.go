package slp

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Minimal UBJSON reader, just enough for the metadata element the game
// writes: objects, arrays, length-prefixed strings, the five integer widths,
// both float widths, booleans and null. Integers widen to int64 and float32
// widens to float64 so callers assert on two numeric types only.

func readUBJSONObject(cr *countingReader) (map[string]any, error) {
	m, err := cr.readByte()
	if err != nil {
		return nil, err
	}
	if m != '{' {
		return nil, fmt.Errorf("ubjson: expected object, got marker 0x%02x", m)
	}
	return readObjectBody(cr)
}

func readObjectBody(cr *countingReader) (map[string]any, error) {
	obj := make(map[string]any)
	for {
		m, err := cr.readByte()
		if err != nil {
			return nil, err
		}
		if m == '}' {
			return obj, nil
		}
		// Object keys carry a length marker but no leading S.
		key, err := readString(cr, m)
		if err != nil {
			return nil, err
		}
		val, err := readValue(cr)
		if err != nil {
			return nil, err
		}
		obj[key] = val
	}
}

func readArrayBody(cr *countingReader) ([]any, error) {
	var arr []any
	for {
		m, err := cr.readByte()
		if err != nil {
			return nil, err
		}
		if m == ']' {
			return arr, nil
		}
		v, err := readValueMarker(cr, m)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func readValue(cr *countingReader) (any, error) {
	m, err := cr.readByte()
	if err != nil {
		return nil, err
	}
	return readValueMarker(cr, m)
}

func readValueMarker(cr *countingReader, m byte) (any, error) {
	switch m {
	case 'Z':
		return nil, nil
	case 'T':
		return true, nil
	case 'F':
		return false, nil
	case 'i', 'U', 'I', 'l', 'L':
		return readInt(cr, m)
	case 'd':
		var buf [4]byte
		if err := cr.readFull(buf[:]); err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(buf[:]))), nil
	case 'D':
		var buf [8]byte
		if err := cr.readFull(buf[:]); err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
	case 'S':
		lm, err := cr.readByte()
		if err != nil {
			return nil, err
		}
		return readString(cr, lm)
	case '{':
		return readObjectBody(cr)
	case '[':
		return readArrayBody(cr)
	}
	return nil, fmt.Errorf("ubjson: unsupported marker 0x%02x", m)
}

// readString reads a length-prefixed string whose length marker m was
// already consumed.
func readString(cr *countingReader, m byte) (string, error) {
	n, err := readInt(cr, m)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("ubjson: negative string length %d", n)
	}
	buf := make([]byte, n)
	if err := cr.readFull(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readInt(cr *countingReader, m byte) (int64, error) {
	switch m {
	case 'i':
		b, err := cr.readByte()
		return int64(int8(b)), err
	case 'U':
		b, err := cr.readByte()
		return int64(b), err
	case 'I':
		var buf [2]byte
		err := cr.readFull(buf[:])
		return int64(int16(binary.BigEndian.Uint16(buf[:]))), err
	case 'l':
		var buf [4]byte
		err := cr.readFull(buf[:])
		return int64(int32(binary.BigEndian.Uint32(buf[:]))), err
	case 'L':
		var buf [8]byte
		err := cr.readFull(buf[:])
		return int64(binary.BigEndian.Uint64(buf[:])), err
	}
	return 0, fmt.Errorf("ubjson: marker 0x%02x is not an integer", m)
}
