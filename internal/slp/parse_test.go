package slp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"slp-lab/internal/melee"
)

func putU16(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:], v) }
func putI32(b []byte, off int, v int32)  { binary.BigEndian.PutUint32(b[off:], uint32(v)) }
func putF32(b []byte, off int, v float32) {
	binary.BigEndian.PutUint32(b[off:], math.Float32bits(v))
}

type sizePair struct {
	code EventCode
	size uint16
}

var standardSizes = []sizePair{
	{EventGameStart, gameStartBaseLen},
	{EventPreFrame, preFrameBaseLen},
	{EventPostFrame, postFrameBaseLen},
	{EventItemUpdate, itemUpdateBaseLen},
	{EventFrameStart, frameStartBaseLen},
	{EventFrameBookend, bookendBaseLen},
	{EventGameEnd, gameEndBaseLen},
}

func sizeTableRecord(pairs []sizePair) []byte {
	out := []byte{byte(EventPayloads), byte(1 + 3*len(pairs))}
	for _, p := range pairs {
		out = append(out, byte(p.code), byte(p.size>>8), byte(p.size))
	}
	return out
}

func event(code EventCode, payload []byte) []byte {
	return append([]byte{byte(code)}, payload...)
}

func gameStartPayload(ports ...uint8) []byte {
	p := make([]byte, gameStartBaseLen)
	p[0], p[1], p[2] = 3, 16, 0
	putU16(p, 0x12, uint16(melee.Battlefield))
	for i := 0; i < 4; i++ {
		p[0x64+0x24*i+1] = byte(PlayerEmpty)
	}
	for _, port := range ports {
		base := 0x64 + 0x24*int(port)
		p[base] = byte(melee.CSSFox)
		p[base+1] = byte(PlayerHuman)
		p[base+2] = 4
	}
	return p
}

func preFramePayload(frame int32, port uint8, state melee.ActionState) []byte {
	p := make([]byte, preFrameBaseLen)
	putI32(p, 0x0, frame)
	p[0x4] = port
	putU16(p, 0xA, uint16(state))
	putF32(p, 0x14, 1)
	return p
}

func postFramePayload(frame int32, port uint8, state melee.ActionState) []byte {
	p := make([]byte, postFrameBaseLen)
	putI32(p, 0x0, frame)
	p[0x4] = port
	p[0x6] = byte(melee.Fox)
	putU16(p, 0x7, uint16(state))
	putF32(p, 0x11, 1)
	p[0x20] = 4
	return p
}

func container(raw, meta []byte) []byte {
	var buf bytes.Buffer
	buf.Write(rawPreamble)
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(raw)))
	buf.Write(n[:])
	buf.Write(raw)
	if meta != nil {
		buf.Write(metadataMarker)
		buf.Write(meta)
		buf.WriteByte('}')
	}
	return buf.Bytes()
}

// simpleCapture is a two-player capture with nFrames idle frames.
func simpleCapture(nFrames int, meta []byte) []byte {
	raw := sizeTableRecord(standardSizes)
	raw = append(raw, event(EventGameStart, gameStartPayload(0, 1))...)
	for i := 0; i < nFrames; i++ {
		idx := int32(FirstFrameIndex + i)
		for _, port := range []uint8{0, 1} {
			raw = append(raw, event(EventPreFrame, preFramePayload(idx, port, melee.Wait))...)
		}
		for _, port := range []uint8{0, 1} {
			raw = append(raw, event(EventPostFrame, postFramePayload(idx, port, melee.Wait))...)
		}
	}
	end := make([]byte, gameEndBaseLen)
	end[0] = byte(EndGame)
	raw = append(raw, event(EventGameEnd, end)...)
	return container(raw, meta)
}

func ubjKey(s string) []byte {
	return append([]byte{'U', byte(len(s))}, s...)
}

func ubjStr(s string) []byte {
	return append([]byte{'S', 'U', byte(len(s))}, s...)
}

func ubjI32(v int32) []byte {
	out := []byte{'l', 0, 0, 0, 0}
	binary.BigEndian.PutUint32(out[1:], uint32(v))
	return out
}

func testMetadataDoc() []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(ubjKey("startAt"))
	buf.Write(ubjStr("2023-07-01T12:00:00Z"))
	buf.Write(ubjKey("lastFrame"))
	buf.Write(ubjI32(5209))
	buf.Write(ubjKey("players"))
	buf.WriteByte('{')
	buf.Write(ubjKey("0"))
	buf.WriteByte('{')
	buf.Write(ubjKey("names"))
	buf.WriteByte('{')
	buf.Write(ubjKey("netplay"))
	buf.Write(ubjStr("mango"))
	buf.Write(ubjKey("code"))
	buf.Write(ubjStr("MANG#0"))
	buf.WriteByte('}')
	buf.Write(ubjKey("characters"))
	buf.WriteByte('{')
	buf.Write(ubjKey("1"))
	buf.Write(ubjI32(5332))
	buf.WriteByte('}')
	buf.WriteByte('}')
	buf.WriteByte('}')
	buf.Write(ubjKey("playedOn"))
	buf.Write(ubjStr("dolphin"))
	buf.WriteByte('}')
	return buf.Bytes()
}

// TestParseMinimalCapture tests a full parse of a small two-player capture
func TestParseMinimalCapture(t *testing.T) {
	g, err := Parse(bytes.NewReader(simpleCapture(4, testMetadataDoc())), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := g.Version(); got != (Version{3, 16, 0}) {
		t.Errorf("Expected version 3.16.0, got %s", got)
	}
	if g.Start.Stage != melee.Battlefield {
		t.Errorf("Expected stage BATTLEFIELD, got %s", g.Start.Stage.Name())
	}
	if len(g.Players()) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(g.Players()))
	}
	if g.FrameCount() != 4 {
		t.Errorf("Expected 4 frames, got %d", g.FrameCount())
	}
	if g.Frames[0].Index != FirstFrameIndex {
		t.Errorf("Expected first index %d, got %d", FirstFrameIndex, g.Frames[0].Index)
	}
	if g.End == nil || g.End.Method != EndGame {
		t.Error("Expected a GAME end condition")
	}

	p := g.Player(0)
	if p == nil {
		t.Fatal("Player(0) returned nil")
	}
	if len(p.Frames) != 4 {
		t.Errorf("Expected 4 player frames, got %d", len(p.Frames))
	}
	if !p.Frames[0].Complete() {
		t.Error("Player frame 0 should have both halves")
	}
	if p.Character() != melee.Fox {
		t.Errorf("Expected FOX, got %s", p.Character().Name())
	}
	if g.Player(2) != nil {
		t.Error("Empty port 2 should have no player view")
	}
}

// TestParseMetadata tests the typed metadata lift
func TestParseMetadata(t *testing.T) {
	g, err := Parse(bytes.NewReader(simpleCapture(1, testMetadataDoc())), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	md := g.Metadata
	if md == nil {
		t.Fatal("Expected metadata")
	}
	if md.PlayedOn != "dolphin" {
		t.Errorf("Expected playedOn 'dolphin', got '%s'", md.PlayedOn)
	}
	if md.LastFrame != 5209 {
		t.Errorf("Expected lastFrame 5209, got %d", md.LastFrame)
	}
	if md.StartTime().Year() != 2023 {
		t.Errorf("Expected start year 2023, got %d", md.StartTime().Year())
	}
	mp := md.Players[0]
	if mp == nil {
		t.Fatal("Expected metadata for port 0")
	}
	if mp.NetplayName != "mango" {
		t.Errorf("Expected netplay name 'mango', got '%s'", mp.NetplayName)
	}
	if mp.ConnectCode != "MANG#0" {
		t.Errorf("Expected connect code 'MANG#0', got '%s'", mp.ConnectCode)
	}
	if mp.Characters[melee.Fox] != 5332 {
		t.Errorf("Expected 5332 frames on FOX, got %d", mp.Characters[melee.Fox])
	}
}

// TestBadPreamble tests that a corrupt header fails at offset zero
func TestBadPreamble(t *testing.T) {
	data := simpleCapture(1, nil)
	data[0] = 'X'
	_, err := Parse(bytes.NewReader(data), nil)
	if !errors.Is(err, ErrBadHeader) {
		t.Fatalf("Expected ErrBadHeader, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("Expected a *ParseError")
	}
	if pe.Offset != 0 {
		t.Errorf("Expected offset 0, got %d", pe.Offset)
	}
}

// TestUnknownEventCode tests that an undeclared code is fatal with its offset
func TestUnknownEventCode(t *testing.T) {
	raw := sizeTableRecord(standardSizes)
	raw = append(raw, event(EventGameStart, gameStartPayload(0, 1))...)
	rogueOff := int64(15 + len(raw))
	raw = append(raw, 0xAB)

	_, err := Parse(bytes.NewReader(container(raw, nil)), &DecodeOptions{Source: "rogue.slp"})
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("Expected ErrUnknownEvent, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("Expected a *ParseError")
	}
	if pe.Offset != rogueOff {
		t.Errorf("Expected offset %d, got %d", rogueOff, pe.Offset)
	}
	if pe.Source != "rogue.slp" {
		t.Errorf("Expected source 'rogue.slp', got '%s'", pe.Source)
	}
}

// TestDeclaredUnknownCodeSkips tests that declared-but-undecoded events are
// skipped by their registered size
func TestDeclaredUnknownCodeSkips(t *testing.T) {
	pairs := append([]sizePair{}, standardSizes...)
	pairs = append(pairs, sizePair{EventCode(0xAB), 2})

	raw := sizeTableRecord(pairs)
	raw = append(raw, event(EventGameStart, gameStartPayload(0))...)
	raw = append(raw, event(EventCode(0xAB), []byte{0xDE, 0xAD})...)
	raw = append(raw, event(EventPreFrame, preFramePayload(FirstFrameIndex, 0, melee.Wait))...)
	raw = append(raw, event(EventPostFrame, postFramePayload(FirstFrameIndex, 0, melee.Wait))...)
	raw = append(raw, event(EventGameEnd, []byte{byte(EndGame)})...)

	g, err := Parse(bytes.NewReader(container(raw, nil)), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.FrameCount() != 1 {
		t.Errorf("Expected 1 frame, got %d", g.FrameCount())
	}
}

// TestBadSizeTable tests that a malformed payloads record is fatal
func TestBadSizeTable(t *testing.T) {
	raw := []byte{byte(EventPayloads), 0x03, 0xAA}
	_, err := Parse(bytes.NewReader(container(raw, nil)), nil)
	if err == nil {
		t.Fatal("Expected an error for an uneven size table")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("Expected a *ParseError")
	}
}

// TestTruncatedRaw tests that a declared length cut short is fatal
func TestTruncatedRaw(t *testing.T) {
	data := simpleCapture(3, nil)
	_, err := Parse(bytes.NewReader(data[:len(data)-30]), nil)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("Expected ErrTruncated, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("Expected a *ParseError")
	}
	if pe.Offset <= 0 {
		t.Errorf("Expected a positive offset, got %d", pe.Offset)
	}
}

// TestLiveCaptureStopsAtGameEnd tests the zero-length in-progress path
func TestLiveCaptureStopsAtGameEnd(t *testing.T) {
	data := simpleCapture(2, nil)
	for i := 11; i < 15; i++ {
		data[i] = 0
	}
	g, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.End == nil {
		t.Fatal("Expected the end-of-game record")
	}
	if g.FrameCount() != 2 {
		t.Errorf("Expected 2 frames, got %d", g.FrameCount())
	}
	if g.Metadata != nil {
		t.Error("Expected no metadata on a live capture")
	}
}

// TestLiveCaptureCutMidEvent tests that a half-written trailing event is
// dropped and player views truncate to the complete prefix
func TestLiveCaptureCutMidEvent(t *testing.T) {
	raw := sizeTableRecord(standardSizes)
	raw = append(raw, event(EventGameStart, gameStartPayload(0, 1))...)
	// Frame 0 complete for both ports.
	raw = append(raw, event(EventPreFrame, preFramePayload(0, 0, melee.Wait))...)
	raw = append(raw, event(EventPreFrame, preFramePayload(0, 1, melee.Wait))...)
	raw = append(raw, event(EventPostFrame, postFramePayload(0, 0, melee.Wait))...)
	raw = append(raw, event(EventPostFrame, postFramePayload(0, 1, melee.Wait))...)
	// Frame 1 loses port 1's post half mid-payload.
	raw = append(raw, event(EventPreFrame, preFramePayload(1, 0, melee.Wait))...)
	raw = append(raw, event(EventPreFrame, preFramePayload(1, 1, melee.Wait))...)
	raw = append(raw, event(EventPostFrame, postFramePayload(1, 0, melee.Wait))...)
	raw = append(raw, event(EventPostFrame, postFramePayload(1, 1, melee.Wait))[:10]...)

	data := container(raw, nil)
	for i := 11; i < 15; i++ {
		data[i] = 0
	}
	g, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.FrameCount() != 2 {
		t.Errorf("Expected 2 assembled frames, got %d", g.FrameCount())
	}
	for _, p := range g.Players() {
		if len(p.Frames) != 1 {
			t.Errorf("Expected port %d view truncated to 1 frame, got %d", p.Port, len(p.Frames))
		}
	}
}

// TestRollbackReemission tests that re-emitted frames replace stale ones and
// the index sequence still steps by one
func TestRollbackReemission(t *testing.T) {
	emit := func(raw []byte, idx int32, x float32) []byte {
		raw = append(raw, event(EventPreFrame, preFramePayload(idx, 0, melee.Wait))...)
		post := postFramePayload(idx, 0, melee.Wait)
		putF32(post, 0x9, x)
		return append(raw, event(EventPostFrame, post)...)
	}

	raw := sizeTableRecord(standardSizes)
	raw = append(raw, event(EventGameStart, gameStartPayload(0))...)
	raw = emit(raw, -123, 0)
	raw = emit(raw, -122, 1)
	raw = emit(raw, -121, 2)
	// Rollback: frames -122 and -121 run again with different results.
	raw = emit(raw, -122, 10)
	raw = emit(raw, -121, 20)
	raw = emit(raw, -120, 30)
	raw = append(raw, event(EventGameEnd, []byte{byte(EndGame)})...)

	g, err := Parse(bytes.NewReader(container(raw, nil)), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.FrameCount() != 4 {
		t.Fatalf("Expected 4 frames, got %d", g.FrameCount())
	}
	for i, f := range g.Frames {
		if want := g.Frames[0].Index + int32(i); f.Index != want {
			t.Errorf("Expected index %d at position %d, got %d", want, i, f.Index)
		}
	}
	wantX := []float32{0, 10, 20, 30}
	for i, f := range g.Frames {
		if got := f.Ports[0].Leader.Post.Position.X; got != wantX[i] {
			t.Errorf("Expected x %.0f on frame %d, got %.1f", wantX[i], f.Index, got)
		}
	}
}

// TestSkipFrames tests the metadata-only fast path
func TestSkipFrames(t *testing.T) {
	g, err := Parse(bytes.NewReader(simpleCapture(5, testMetadataDoc())), &DecodeOptions{SkipFrames: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.Start == nil {
		t.Fatal("Expected the start record")
	}
	if g.Metadata == nil {
		t.Fatal("Expected metadata")
	}
	if g.FrameCount() != 0 {
		t.Errorf("Expected 0 frames, got %d", g.FrameCount())
	}
	if len(g.Players()) != 0 {
		t.Errorf("Expected no player views, got %d", len(g.Players()))
	}
}

// TestFollowerFrames tests climber follower assembly and view exposure
func TestFollowerFrames(t *testing.T) {
	raw := sizeTableRecord(standardSizes)
	raw = append(raw, event(EventGameStart, gameStartPayload(0, 1))...)
	for i := 0; i < 2; i++ {
		idx := int32(i)
		fpre := preFramePayload(idx, 0, melee.Wait)
		fpre[0x5] = 1
		fpost := postFramePayload(idx, 0, melee.Wait)
		fpost[0x5] = 1
		fpost[0x6] = byte(melee.Nana)
		raw = append(raw, event(EventPreFrame, preFramePayload(idx, 0, melee.Wait))...)
		raw = append(raw, event(EventPreFrame, fpre)...)
		raw = append(raw, event(EventPreFrame, preFramePayload(idx, 1, melee.Wait))...)
		raw = append(raw, event(EventPostFrame, postFramePayload(idx, 0, melee.Wait))...)
		raw = append(raw, event(EventPostFrame, fpost)...)
		raw = append(raw, event(EventPostFrame, postFramePayload(idx, 1, melee.Wait))...)
	}
	raw = append(raw, event(EventGameEnd, []byte{byte(EndGame)})...)

	g, err := Parse(bytes.NewReader(container(raw, nil)), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p0 := g.Player(0)
	if p0.Follower == nil {
		t.Fatal("Expected a follower view on port 0")
	}
	if len(p0.Follower) != len(p0.Frames) {
		t.Errorf("Expected follower length %d, got %d", len(p0.Frames), len(p0.Follower))
	}
	if !p0.Follower[0].Complete() {
		t.Error("Follower frame 0 should have both halves")
	}
	if p0.Follower[0].Post.Character != melee.Nana {
		t.Errorf("Expected NANA, got %s", p0.Follower[0].Post.Character.Name())
	}
	if p1 := g.Player(1); p1.Follower != nil {
		t.Error("Port 1 should have no follower view")
	}
}
