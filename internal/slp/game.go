package slp

import (
	"io"
	"os"

	"slp-lab/internal/melee"
)

// Game is one fully decoded capture: the start configuration, every
// assembled frame, the end condition when present, and the trailing
// metadata document.
type Game struct {
	Source   string
	Start    *GameStart
	End      *GameEnd
	Frames   []*Frame
	Metadata *Metadata

	players []*Player
}

// Player is a dense per-port view over the frame data. Frames holds one
// entry per assembled frame, truncated across all ports to the longest
// prefix where every port has both halves, so the same slice position is
// the same engine frame for everyone.
type Player struct {
	Port  uint8
	Start *StartPlayer

	Frames []PlayerFrame

	// Follower mirrors Frames for a climber team's partner. Entries go
	// empty once the follower is gone. Nil for everyone else.
	Follower []PlayerFrame
}

// Character is the in-game character actually played, read from the first
// frame. Transforming characters change it mid-game.
func (p *Player) Character() melee.InGameCharacter {
	if len(p.Frames) == 0 {
		return 0
	}
	return p.Frames[0].Post.Character
}

// Version is the capture-format version, zero when the start record never
// arrived.
func (g *Game) Version() Version {
	if g.Start == nil {
		return Version{}
	}
	return g.Start.Version
}

// Players lists the occupied ports in port order.
func (g *Game) Players() []*Player { return g.players }

// Player returns the view for one port, nil when that port sat empty.
func (g *Game) Player(port uint8) *Player {
	for _, p := range g.players {
		if p.Port == port {
			return p
		}
	}
	return nil
}

// FrameAt returns the frame with the given engine index, nil when out of
// range.
func (g *Game) FrameAt(idx int32) *Frame {
	if len(g.Frames) == 0 {
		return nil
	}
	pos := int(idx - g.Frames[0].Index)
	if pos < 0 || pos >= len(g.Frames) {
		return nil
	}
	return g.Frames[pos]
}

// FrameCount is the number of assembled frames.
func (g *Game) FrameCount() int { return len(g.Frames) }

func (g *Game) buildPlayers() {
	if g.Start == nil || len(g.Frames) == 0 {
		return
	}
	occupied := make([]uint8, 0, 4)
	for port := uint8(0); port < 4; port++ {
		if g.Start.Players[port] != nil {
			occupied = append(occupied, port)
		}
	}
	if len(occupied) == 0 {
		return
	}

	// Longest prefix where every occupied port has a complete leader
	// frame. Live captures stop mid-frame, leaving ragged tails.
	common := 0
	for ; common < len(g.Frames); common++ {
		f := g.Frames[common]
		ok := true
		for _, port := range occupied {
			pd := f.Ports[port]
			if pd == nil || !pd.Leader.Complete() {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
	}

	for _, port := range occupied {
		p := &Player{Port: port, Start: g.Start.Players[port]}
		p.Frames = make([]PlayerFrame, common)
		hasFollower := false
		for i := 0; i < common; i++ {
			pd := g.Frames[i].Ports[port]
			p.Frames[i] = *pd.Leader
			if pd.Follower != nil {
				hasFollower = true
			}
		}
		if hasFollower {
			p.Follower = make([]PlayerFrame, common)
			for i := 0; i < common; i++ {
				if fw := g.Frames[i].Ports[port].Follower; fw != nil {
					p.Follower[i] = *fw
				}
			}
		}
		g.players = append(g.players, p)
	}
}

// Parse decodes a whole capture into a Game.
func Parse(r io.Reader, opts *DecodeOptions) (*Game, error) {
	src := "stream"
	if opts != nil && opts.Source != "" {
		src = opts.Source
	}
	g := &Game{Source: src}
	asm := newFrameAssembler()
	h := Handlers{
		GameStart:    func(gs *GameStart) error { g.Start = gs; return nil },
		PreFrame:     func(pf *PreFrame) error { return asm.addPre(pf) },
		PostFrame:    func(pf *PostFrame) error { return asm.addPost(pf) },
		ItemUpdate:   func(it *ItemUpdate) error { asm.addItem(it); return nil },
		FrameStart:   func(fs *FrameStart) error { asm.addStart(fs); return nil },
		FrameBookend: func(fb *FrameBookend) error { asm.addBookend(fb); return nil },
		GameEnd:      func(ge *GameEnd) error { g.End = ge; return nil },
		Metadata:     func(md *Metadata) error { g.Metadata = md; return nil },
	}
	if err := Decode(r, h, opts); err != nil {
		return nil, err
	}
	g.Frames = asm.finish()
	if g.Start == nil {
		return nil, parseErrf(src, 0, "capture has no game-start record")
	}
	g.buildPlayers()
	return g, nil
}

// ParseFile decodes the capture at path. The path becomes the error source
// label unless the options name one.
func ParseFile(path string, opts *DecodeOptions) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var o DecodeOptions
	if opts != nil {
		o = *opts
	}
	if o.Source == "" {
		o.Source = path
	}
	return Parse(f, &o)
}
