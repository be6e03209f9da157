package heatmap

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"slp-lab/internal/config"
	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// testGame builds a two-player capture by hand: port 0 sweeps across
// the stage while port 1 holds center.
func testGame(stage melee.Stage) *slp.Game {
	g := &slp.Game{
		Start: &slp.GameStart{Stage: stage},
	}
	for i := 0; i < 60; i++ {
		f := &slp.Frame{Index: int32(slp.FirstFrameIndex + i)}
		f.Ports[0] = &slp.PortData{Leader: &slp.PlayerFrame{
			Post: &slp.PostFrame{Position: slp.Position{X: float32(i*2 - 60), Y: float32(i % 20)}},
		}}
		f.Ports[1] = &slp.PortData{Leader: &slp.PlayerFrame{
			Post: &slp.PostFrame{Position: slp.Position{X: 0, Y: 0}},
		}}
		g.Frames = append(g.Frames, f)
	}
	return g
}

// TestRenderProducesPNG verifies a full render decodes as a PNG of
// the configured size.
func TestRenderProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultHeatmap()

	if err := Render(&buf, testGame(melee.Battlefield), AllPorts, cfg); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("Expected PNG magic bytes")
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decoding output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		t.Errorf("Expected %dx%d image, got %dx%d", cfg.Width, cfg.Height, b.Dx(), b.Dy())
	}
}

// TestRenderSinglePort verifies the port filter draws occupied ports
// and rejects empty ones.
func TestRenderSinglePort(t *testing.T) {
	g := testGame(melee.YoshisStory)

	var buf bytes.Buffer
	if err := Render(&buf, g, 1, config.DefaultHeatmap()); err != nil {
		t.Fatalf("Render port 1 failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("Expected image bytes")
	}

	err := Render(&bytes.Buffer{}, g, 3, config.DefaultHeatmap())
	if err == nil {
		t.Fatal("Expected an error for an empty port")
	}
	if !strings.Contains(err.Error(), "port 4") {
		t.Errorf("Expected the in-game port number in %q", err)
	}

	if err := Render(&bytes.Buffer{}, g, 7, config.DefaultHeatmap()); err == nil {
		t.Fatal("Expected an error for an out-of-range port")
	}
}

// TestRenderUnknownStage verifies stages without geometry still render
// from the observed positions alone.
func TestRenderUnknownStage(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testGame(melee.Stage(99)), AllPorts, config.DefaultHeatmap()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("Decoding output: %v", err)
	}
}

// TestRenderNoFrames verifies a frameless capture is rejected rather
// than rendered empty.
func TestRenderNoFrames(t *testing.T) {
	g := &slp.Game{Start: &slp.GameStart{Stage: melee.Battlefield}}
	if err := Render(&bytes.Buffer{}, g, AllPorts, config.DefaultHeatmap()); err == nil {
		t.Fatal("Expected an error for a capture with no frames")
	}
}
