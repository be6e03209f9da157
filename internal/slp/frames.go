package slp

import "fmt"

// FirstFrameIndex is the engine's index for the first captured frame. The
// match clock reaches zero when "GO" appears, 123 frames later.
const FirstFrameIndex = -123

// Frame is everything the capture recorded for one engine frame.
type Frame struct {
	Index   int32
	Ports   [4]*PortData
	Items   []*ItemUpdate
	Start   *FrameStart
	Bookend *FrameBookend
}

// PortData splits one port into its leader and, for climber teams, the
// follower. Follower stays nil for everyone else.
type PortData struct {
	Leader   *PlayerFrame
	Follower *PlayerFrame
}

// PlayerFrame pairs the pre- and post-frame records of one character on one
// frame.
type PlayerFrame struct {
	Pre  *PreFrame
	Post *PostFrame
}

// Complete reports whether both halves of the frame arrived.
func (pf *PlayerFrame) Complete() bool {
	return pf != nil && pf.Pre != nil && pf.Post != nil
}

func (f *Frame) slot(port uint8, follower bool) *PlayerFrame {
	pd := f.Ports[port]
	if pd == nil {
		pd = &PortData{}
		f.Ports[port] = pd
	}
	if follower {
		if pd.Follower == nil {
			pd.Follower = &PlayerFrame{}
		}
		return pd.Follower
	}
	if pd.Leader == nil {
		pd.Leader = &PlayerFrame{}
	}
	return pd.Leader
}

// frameAssembler folds per-event records into ordered frames. A frame closes
// when the incoming index changes; bookend records are advisory and never
// drive lifecycle. Rollback captures re-emit indexes they rewound past, and
// the latest emission replaces the stale frame, so the finished slice still
// steps by exactly one.
type frameAssembler struct {
	frames []*Frame
	first  int32
	open   *Frame
}

func newFrameAssembler() *frameAssembler {
	return &frameAssembler{}
}

func (a *frameAssembler) frameFor(idx int32) *Frame {
	if a.open != nil {
		if a.open.Index == idx {
			return a.open
		}
		a.commit()
	}
	a.open = &Frame{Index: idx}
	return a.open
}

func (a *frameAssembler) commit() {
	f := a.open
	if f == nil {
		return
	}
	a.open = nil
	if len(a.frames) == 0 {
		a.first = f.Index
		a.frames = append(a.frames, f)
		return
	}
	pos := int(f.Index - a.first)
	switch {
	case pos < 0:
		// Rewound past the first frame we ever saw; nothing to replace.
	case pos < len(a.frames):
		// Re-emitted after a rollback. The latest simulation wins.
		a.frames[pos] = f
	case pos == len(a.frames):
		a.frames = append(a.frames, f)
	default:
		// A gap means the writer dropped events. Pad so positions stay
		// index-aligned.
		for len(a.frames) < pos {
			a.frames = append(a.frames, &Frame{Index: a.first + int32(len(a.frames))})
		}
		a.frames = append(a.frames, f)
	}
}

// finish commits the trailing open frame and returns the ordered slice.
func (a *frameAssembler) finish() []*Frame {
	a.commit()
	return a.frames
}

func (a *frameAssembler) addPre(pf *PreFrame) error {
	if pf.Port >= 4 {
		return fmt.Errorf("pre-frame names port %d", pf.Port)
	}
	a.frameFor(pf.FrameIndex).slot(pf.Port, pf.IsFollower).Pre = pf
	return nil
}

func (a *frameAssembler) addPost(pf *PostFrame) error {
	if pf.Port >= 4 {
		return fmt.Errorf("post-frame names port %d", pf.Port)
	}
	a.frameFor(pf.FrameIndex).slot(pf.Port, pf.IsFollower).Post = pf
	return nil
}

func (a *frameAssembler) addItem(it *ItemUpdate) {
	f := a.frameFor(it.FrameIndex)
	f.Items = append(f.Items, it)
}

func (a *frameAssembler) addStart(fs *FrameStart) {
	a.frameFor(fs.FrameIndex).Start = fs
}

func (a *frameAssembler) addBookend(fb *FrameBookend) {
	a.frameFor(fb.FrameIndex).Bookend = fb
}
