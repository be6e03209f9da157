// Package heatmap renders where the players spent the game. Every
// post-frame position becomes a translucent dot in the port's color,
// so overlap builds the heat. The stage outline is sketched from the
// known geometry when the stage has one.
package heatmap

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"slp-lab/internal/config"
	"slp-lab/internal/slp"
)

// AllPorts renders every occupied port into one image.
const AllPorts = -1

// portColors follows the in-game port convention: red, blue, yellow,
// green.
var portColors = [4]color.NRGBA{
	{R: 244, G: 67, B: 54, A: 255},
	{R: 66, G: 133, B: 244, A: 255},
	{R: 250, G: 189, B: 5, A: 255},
	{R: 15, G: 157, B: 88, A: 255},
}

// window is the world-space region the image maps.
type window struct {
	minX, maxX, minY, maxY float64
}

func (b *window) extend(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

// Render draws the position density of one capture as a PNG. port
// selects a single player, AllPorts draws everyone. Rendering needs
// frame data, so captures decoded with SkipFrames cannot be drawn.
func Render(w io.Writer, g *slp.Game, port int, cfg config.HeatmapConfig) error {
	if port != AllPorts && (port < 0 || port > 3) {
		return fmt.Errorf("heatmap: port %d out of range", port)
	}

	b, count := collectWindow(g, port)
	if count == 0 {
		if port == AllPorts {
			return fmt.Errorf("heatmap: capture holds no position data")
		}
		return fmt.Errorf("heatmap: no position data for port %d", port+1)
	}

	dc := gg.NewContext(cfg.Width, cfg.Height)
	scale, offX, offY := fitTransform(b, cfg.Width, cfg.Height)

	drawBackdrop(dc, g, b, scale, offX, offY)
	drawDots(dc, g, port, cfg, scale, offX, offY)

	return dc.EncodePNG(w)
}

// collectWindow frames every recorded position for the selected ports,
// widened to the stage window when the stage has one so a camper's
// tight cluster still shows where on the stage it sat. Returns the
// number of positions seen.
func collectWindow(g *slp.Game, port int) (window, int) {
	b := window{minX: math.Inf(1), maxX: math.Inf(-1), minY: math.Inf(1), maxY: math.Inf(-1)}
	count := 0
	eachPosition(g, port, func(_ int, x, y float64) {
		b.extend(x, y)
		count++
	})
	if count == 0 {
		return b, 0
	}

	if g.Start != nil {
		if geom, ok := g.Start.Stage.Geometry(); ok {
			b.extend(-float64(geom.LedgeX)-25, -40)
			b.extend(float64(geom.LedgeX)+25, float64(geom.TopPlatformY)+40)
		}
	}

	// Pad so dots at the extremes stay inside the frame.
	padX := math.Max((b.maxX-b.minX)*0.05, 10)
	padY := math.Max((b.maxY-b.minY)*0.05, 10)
	b.minX -= padX
	b.maxX += padX
	b.minY -= padY
	b.maxY += padY
	return b, count
}

// eachPosition walks every post-frame position for the selected ports,
// followers included.
func eachPosition(g *slp.Game, port int, fn func(port int, x, y float64)) {
	for _, f := range g.Frames {
		for p := 0; p < 4; p++ {
			if port != AllPorts && p != port {
				continue
			}
			pd := f.Ports[p]
			if pd == nil {
				continue
			}
			if pd.Leader != nil && pd.Leader.Post != nil {
				pos := pd.Leader.Post.Position
				fn(p, float64(pos.X), float64(pos.Y))
			}
			if pd.Follower != nil && pd.Follower.Post != nil {
				pos := pd.Follower.Post.Position
				fn(p, float64(pos.X), float64(pos.Y))
			}
		}
	}
}

// fitTransform maps the world window into the image with one uniform
// scale, centered. World y points up, image y points down.
func fitTransform(b window, width, height int) (scale, offX, offY float64) {
	scale = math.Min(float64(width)/(b.maxX-b.minX), float64(height)/(b.maxY-b.minY))
	cx := (b.minX + b.maxX) / 2
	cy := (b.minY + b.maxY) / 2
	offX = float64(width)/2 - cx*scale
	offY = float64(height)/2 + cy*scale
	return scale, offX, offY
}

func drawBackdrop(dc *gg.Context, g *slp.Game, b window, scale, offX, offY float64) {
	dc.SetColor(color.RGBA{18, 18, 26, 255})
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	dc.Fill()

	groundY := offY // world y=0
	dc.SetColor(color.RGBA{255, 255, 255, 70})
	dc.SetLineWidth(1)

	var ledgeX float64
	hasGeom := false
	if g.Start != nil {
		if geom, ok := g.Start.Stage.Geometry(); ok {
			ledgeX = float64(geom.LedgeX)
			hasGeom = true
		}
	}

	if hasGeom {
		// Ground between the ledges, with a tick at each edge.
		x0 := -ledgeX*scale + offX
		x1 := ledgeX*scale + offX
		dc.DrawLine(x0, groundY, x1, groundY)
		dc.Stroke()
		dc.DrawLine(x0, groundY, x0, groundY-6)
		dc.DrawLine(x1, groundY, x1, groundY-6)
		dc.Stroke()
		return
	}

	// Unknown stage: a full-width reference line at ground height.
	dc.DrawLine(b.minX*scale+offX, groundY, b.maxX*scale+offX, groundY)
	dc.Stroke()
}

func drawDots(dc *gg.Context, g *slp.Game, port int, cfg config.HeatmapConfig, scale, offX, offY float64) {
	alpha := uint8(math.Round(math.Min(math.Max(cfg.DotAlpha, 0), 1) * 255))
	for p := 0; p < 4; p++ {
		if port != AllPorts && p != port {
			continue
		}
		c := portColors[p]
		c.A = alpha
		dc.SetColor(c)
		eachPosition(g, p, func(_ int, x, y float64) {
			dc.DrawCircle(x*scale+offX, offY-y*scale, cfg.DotRadius)
			dc.Fill()
		})
	}
}
