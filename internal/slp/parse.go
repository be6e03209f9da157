package slp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
)

// The container is a UBJSON object with two keys. "raw" holds the event
// stream as an optimized uint8 array with a fixed big-endian length, and
// "metadata" holds one freeform UBJSON document.
var (
	rawPreamble    = []byte("{U\x03raw[$U#l")
	metadataMarker = []byte("U\x08metadata")
)

// Handlers receives decoded events in strict arrival order. Nil fields are
// skipped. A non-nil error return aborts the parse and is handed back to the
// caller unwrapped.
type Handlers struct {
	GameStart    func(*GameStart) error
	PreFrame     func(*PreFrame) error
	PostFrame    func(*PostFrame) error
	ItemUpdate   func(*ItemUpdate) error
	FrameStart   func(*FrameStart) error
	FrameBookend func(*FrameBookend) error
	GameEnd      func(*GameEnd) error
	Metadata     func(*Metadata) error
}

// DecodeOptions tune a single Decode pass.
type DecodeOptions struct {
	// Source labels decode errors, usually a file path.
	Source string

	// SkipFrames discards frame-scoped events without decoding them, for
	// metadata-only scans. When the raw length is declared up front the
	// decoder jumps straight from the game-start record to the metadata
	// element, so the end-of-game record is not decoded either.
	SkipFrames bool
}

// Decode runs a single streaming pass over one capture, firing handlers as
// events arrive. It never seeks backward and keeps only one event payload in
// memory at a time.
func Decode(r io.Reader, h Handlers, opts *DecodeOptions) error {
	var o DecodeOptions
	if opts != nil {
		o = *opts
	}
	if o.Source == "" {
		o.Source = "stream"
	}

	cr := newCountingReader(r)
	rawLen, err := readHeader(cr, o.Source)
	if err != nil {
		return err
	}
	rawStart := cr.off

	sizes, err := readSizeTable(cr, o.Source)
	if err != nil {
		return err
	}

	var payload []byte
eventLoop:
	for {
		if rawLen > 0 && cr.off-rawStart >= rawLen {
			break
		}
		evOff := cr.off
		cmd, err := cr.readByte()
		if err != nil {
			if err == io.EOF && rawLen == 0 {
				// Live capture cut off at an event boundary.
				break
			}
			return parseErr(o.Source, evOff, fmt.Errorf("%w: %v", ErrTruncated, err))
		}
		code := EventCode(cmd)
		size := sizes[code]
		if size < 0 {
			return parseErr(o.Source, evOff, fmt.Errorf("%w 0x%02x", ErrUnknownEvent, cmd))
		}
		if rawLen > 0 && cr.off-rawStart+int64(size) > rawLen {
			return parseErr(o.Source, evOff, fmt.Errorf("%w: %s crosses the raw boundary", ErrTruncated, code))
		}

		if o.SkipFrames && frameScoped(code) {
			if err := cr.discard(size); err != nil {
				if rawLen == 0 {
					break
				}
				return parseErr(o.Source, evOff, fmt.Errorf("%w: %v", ErrTruncated, err))
			}
			continue
		}

		if cap(payload) < size {
			payload = make([]byte, size)
		}
		payload = payload[:size]
		if err := cr.readFull(payload); err != nil {
			if rawLen == 0 {
				// Half-written trailing event on a live capture; drop it.
				break
			}
			return parseErr(o.Source, evOff, fmt.Errorf("%w: %v", ErrTruncated, err))
		}

		switch code {
		case EventGameStart:
			gs, err := decodeGameStart(payload)
			if err != nil {
				return parseErr(o.Source, evOff, err)
			}
			if h.GameStart != nil {
				if err := h.GameStart(gs); err != nil {
					return err
				}
			}
			if o.SkipFrames && rawLen > 0 {
				if err := cr.discard(int(rawLen - (cr.off - rawStart))); err != nil {
					return parseErr(o.Source, cr.off, fmt.Errorf("%w: %v", ErrTruncated, err))
				}
				break eventLoop
			}
		case EventPreFrame:
			pf, err := decodePreFrame(payload)
			if err != nil {
				return parseErr(o.Source, evOff, err)
			}
			if h.PreFrame != nil {
				if err := h.PreFrame(pf); err != nil {
					return err
				}
			}
		case EventPostFrame:
			pf, err := decodePostFrame(payload)
			if err != nil {
				return parseErr(o.Source, evOff, err)
			}
			if h.PostFrame != nil {
				if err := h.PostFrame(pf); err != nil {
					return err
				}
			}
		case EventItemUpdate:
			it, err := decodeItemUpdate(payload)
			if err != nil {
				return parseErr(o.Source, evOff, err)
			}
			if h.ItemUpdate != nil {
				if err := h.ItemUpdate(it); err != nil {
					return err
				}
			}
		case EventFrameStart:
			fs, err := decodeFrameStart(payload)
			if err != nil {
				return parseErr(o.Source, evOff, err)
			}
			if h.FrameStart != nil {
				if err := h.FrameStart(fs); err != nil {
					return err
				}
			}
		case EventFrameBookend:
			fb, err := decodeFrameBookend(payload)
			if err != nil {
				return parseErr(o.Source, evOff, err)
			}
			if h.FrameBookend != nil {
				if err := h.FrameBookend(fb); err != nil {
					return err
				}
			}
		case EventGameEnd:
			ge, err := decodeGameEnd(payload)
			if err != nil {
				return parseErr(o.Source, evOff, err)
			}
			if h.GameEnd != nil {
				if err := h.GameEnd(ge); err != nil {
					return err
				}
			}
			if rawLen == 0 {
				// Unknown raw length ends at the end-of-game record.
				break eventLoop
			}
		default:
			// Declared but carries nothing we decode (message splitter,
			// gecko list, codes from newer captures). Payload consumed.
		}
	}

	return readMetadata(cr, h, o.Source)
}

// readHeader validates the fixed preamble and returns the declared raw
// length, zero when the capture was still in progress at write time.
func readHeader(cr *countingReader, src string) (int64, error) {
	var hdr [15]byte
	if err := cr.readFull(hdr[:]); err != nil {
		return 0, parseErr(src, 0, fmt.Errorf("%w: %v", ErrBadHeader, err))
	}
	if !bytes.Equal(hdr[:len(rawPreamble)], rawPreamble) {
		return 0, parseErr(src, 0, ErrBadHeader)
	}
	n := int32(binary.BigEndian.Uint32(hdr[len(rawPreamble):]))
	if n < 0 {
		return 0, parseErrf(src, int64(len(rawPreamble)), "negative raw length %d", n)
	}
	return int64(n), nil
}

// eventSizes maps every declared event code to its fixed payload size,
// -1 for codes the capture never declared.
type eventSizes [256]int

// readSizeTable consumes the event-payloads control record. Its declared
// size byte counts itself, and the remainder is (code, u16 size) pairs.
// Codes we have no decoder for are still registered so their instances can
// be skipped by size.
func readSizeTable(cr *countingReader, src string) (*eventSizes, error) {
	off := cr.off
	cmd, err := cr.readByte()
	if err != nil {
		return nil, parseErr(src, off, fmt.Errorf("%w: %v", ErrTruncated, err))
	}
	if EventCode(cmd) != EventPayloads {
		return nil, parseErrf(src, off, "expected event-payloads record, got 0x%02x", cmd)
	}
	szByte, err := cr.readByte()
	if err != nil {
		return nil, parseErr(src, off, fmt.Errorf("%w: %v", ErrTruncated, err))
	}
	if szByte < 1 {
		return nil, parseErrf(src, off, "event-payloads size byte is zero")
	}
	body := make([]byte, int(szByte)-1)
	if err := cr.readFull(body); err != nil {
		return nil, parseErr(src, off, fmt.Errorf("%w: %v", ErrTruncated, err))
	}
	if len(body)%3 != 0 {
		return nil, parseErrf(src, off, "event-payloads body of %d bytes is not (code, size) pairs", len(body))
	}

	var sizes eventSizes
	for i := range sizes {
		sizes[i] = -1
	}
	for i := 0; i+3 <= len(body); i += 3 {
		code := EventCode(body[i])
		size := int(binary.BigEndian.Uint16(body[i+1:]))
		if !knownEvent(code) {
			log.Printf("⚠️ slp: %s declares unknown event 0x%02X (%d bytes), instances will be skipped", src, uint8(code), size)
		}
		sizes[code] = size
	}
	return &sizes, nil
}

// readMetadata consumes the optional metadata element and the closing brace.
// A clean EOF before the element is legal on cut-off captures.
func readMetadata(cr *countingReader, h Handlers, src string) error {
	mdOff := cr.off
	var marker [10]byte
	if err := cr.readFull(marker[:]); err != nil {
		if err == io.EOF {
			return nil
		}
		return parseErr(src, mdOff, fmt.Errorf("%w: %v", ErrBadMetadata, err))
	}
	if !bytes.Equal(marker[:], metadataMarker) {
		return parseErr(src, mdOff, ErrBadMetadata)
	}
	doc, err := readUBJSONObject(cr)
	if err != nil {
		return parseErr(src, cr.off, fmt.Errorf("%w: %v", ErrBadMetadata, err))
	}
	if h.Metadata != nil {
		if err := h.Metadata(metadataFromRaw(doc)); err != nil {
			return err
		}
	}
	if b, err := cr.readByte(); err == nil && b != '}' {
		return parseErrf(src, cr.off-1, "expected closing brace, got 0x%02x", b)
	}
	return nil
}

func knownEvent(c EventCode) bool {
	switch c {
	case EventMessageSplitter, EventPayloads, EventGameStart, EventPreFrame,
		EventPostFrame, EventGameEnd, EventFrameStart, EventItemUpdate,
		EventFrameBookend, EventGeckoList:
		return true
	}
	return false
}

func frameScoped(c EventCode) bool {
	switch c {
	case EventPreFrame, EventPostFrame, EventFrameStart, EventItemUpdate,
		EventFrameBookend:
		return true
	}
	return false
}

// countingReader tracks the absolute byte offset so every decode failure
// can name where in the stream it happened.
type countingReader struct {
	r   *bufio.Reader
	off int64
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{r: bufio.NewReaderSize(r, 64<<10)}
}

func (c *countingReader) readByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.off++
	}
	return b, err
}

func (c *countingReader) readFull(p []byte) error {
	n, err := io.ReadFull(c.r, p)
	c.off += int64(n)
	return err
}

func (c *countingReader) discard(n int) error {
	m, err := c.r.Discard(n)
	c.off += int64(m)
	return err
}
