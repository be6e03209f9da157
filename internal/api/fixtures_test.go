package api

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"slp-lab/internal/config"
	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

func putU16(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:], v) }
func putU32(b []byte, off int, v uint32) { binary.BigEndian.PutUint32(b[off:], v) }
func putI32(b []byte, off int, v int32)  { binary.BigEndian.PutUint32(b[off:], uint32(v)) }
func putF32(b []byte, off int, v float32) {
	binary.BigEndian.PutUint32(b[off:], math.Float32bits(v))
}

// Fixture event payload sizes, declared and emitted alike. The start
// payload is long enough to carry the online match identity fields.
const (
	fxGameStartLen = 0x2F8
	fxPreFrameLen  = 0x3A
	fxPostFrameLen = 0x21
	fxGameEndLen   = 0x6
)

func fxSizeTable() []byte {
	pairs := []struct {
		code byte
		size uint16
	}{
		{0x36, fxGameStartLen},
		{0x37, fxPreFrameLen},
		{0x38, fxPostFrameLen},
		{0x39, fxGameEndLen},
	}
	out := []byte{0x35, byte(1 + 3*len(pairs))}
	for _, p := range pairs {
		out = append(out, p.code, byte(p.size>>8), byte(p.size))
	}
	return out
}

func fxEvent(code byte, payload []byte) []byte {
	return append([]byte{code}, payload...)
}

func fxGameStart(matchID string, gameNumber uint32) []byte {
	p := make([]byte, fxGameStartLen)
	p[0], p[1], p[2] = 3, 16, 0
	putU16(p, 0x12, uint16(melee.Battlefield))
	for i := 0; i < 4; i++ {
		p[0x64+0x24*i+1] = byte(slp.PlayerEmpty)
	}
	for _, port := range []int{0, 1} {
		base := 0x64 + 0x24*port
		p[base] = byte(melee.CSSFox)
		p[base+1] = byte(slp.PlayerHuman)
		p[base+2] = 4
	}
	copy(p[0x2BD:], matchID)
	putU32(p, 0x2F0, gameNumber)
	return fxEvent(0x36, p)
}

func fxPreFrame(frame int32, port uint8) []byte {
	p := make([]byte, fxPreFrameLen)
	putI32(p, 0x0, frame)
	p[0x4] = port
	putU16(p, 0xA, uint16(melee.Wait))
	putF32(p, 0x14, 1)
	return fxEvent(0x37, p)
}

func fxPostFrame(frame int32, port uint8, x, y float32) []byte {
	p := make([]byte, fxPostFrameLen)
	putI32(p, 0x0, frame)
	p[0x4] = port
	p[0x6] = byte(melee.Fox)
	putU16(p, 0x7, uint16(melee.Wait))
	putF32(p, 0x9, x)
	putF32(p, 0xD, y)
	putF32(p, 0x11, 1)
	p[0x20] = 4
	return fxEvent(0x38, p)
}

func fxGameEnd() []byte {
	return fxEvent(0x39, []byte{byte(slp.EndGame), 0xFF, 0, 1, 0xFF, 0xFF})
}

func fxMetadata(startAt string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write([]byte{'U', 7})
	buf.WriteString("startAt")
	buf.Write([]byte{'S', 'U', byte(len(startAt))})
	buf.WriteString(startAt)
	buf.WriteByte('}')
	return buf.Bytes()
}

// fxCapture builds a complete two-player capture with three frames of
// drifting positions as container bytes.
func fxCapture(matchID string, gameNumber uint32, startAt string) []byte {
	raw := fxSizeTable()
	raw = append(raw, fxGameStart(matchID, gameNumber)...)
	for i := 0; i < 3; i++ {
		idx := int32(slp.FirstFrameIndex + i)
		for _, port := range []uint8{0, 1} {
			raw = append(raw, fxPreFrame(idx, port)...)
		}
		for _, port := range []uint8{0, 1} {
			x := float32(i*10 - 20)
			if port == 1 {
				x = -x
			}
			raw = append(raw, fxPostFrame(idx, port, x, float32(i))...)
		}
	}
	raw = append(raw, fxGameEnd()...)

	var buf bytes.Buffer
	buf.WriteString("{U\x03raw[$U#l")
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(raw)))
	buf.Write(n[:])
	buf.Write(raw)
	buf.WriteString("U\x08metadata")
	buf.Write(fxMetadata(startAt))
	buf.WriteByte('}')
	return buf.Bytes()
}

func writeCapture(t *testing.T, dir, name, matchID string, gameNumber uint32, startAt string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, fxCapture(matchID, gameNumber, startAt), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// newTestRunner builds a runner over a fresh pool with no push target.
func newTestRunner(index *ReplayIndex) *BatchRunner {
	cfg := config.BatchConfig{Workers: 2, Recursive: true, SkipDuplicates: true}
	return NewBatchRunner(cfg, 0, index, nil, nil)
}

// newTestRouter builds a quiet router with a rate limit high enough to
// never trip.
func newTestRouter(t *testing.T, index *ReplayIndex, runner *BatchRunner) http.Handler {
	t.Helper()
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1000,
		Burst:             1000,
		CleanupInterval:   time.Minute,
	})
	t.Cleanup(rl.Stop)
	return NewRouter(RouterConfig{
		Index:          index,
		Runner:         runner,
		RateLimiter:    rl,
		DisableLogging: true,
	})
}

// do drives one request through the router without a listener.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// multipartFile wraps data as a multipart upload body.
func multipartFile(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// waitForBatch polls the status endpoint until the run settles.
func waitForBatch(t *testing.T, h http.Handler) BatchStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := do(t, h, "GET", "/api/batch/status", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status endpoint returned %d", rec.Code)
		}
		var st BatchStatus
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatalf("decoding status: %v", err)
		}
		if !st.Running && st.Total > 0 && st.Done == st.Total {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("batch never settled: %+v", st)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
