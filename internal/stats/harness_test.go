package stats

import (
	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// engineFrame converts a slice position into its engine frame index.
func engineFrame(i int) int32 {
	return int32(slp.FirstFrameIndex + i)
}

// testFrames builds n frames of grounded neutral with engine indexes
// starting at the capture origin.
func testFrames(n int) []slp.PlayerFrame {
	frames := make([]slp.PlayerFrame, n)
	for i := range frames {
		frames[i] = slp.PlayerFrame{
			Pre: &slp.PreFrame{FrameIndex: engineFrame(i)},
			Post: &slp.PostFrame{
				FrameIndex: engineFrame(i),
				State:      melee.Wait,
				Stocks:     4,
				Facing:     melee.DirectionRight,
			},
		}
	}
	return frames
}

// testGame wraps a start record for classifier calls that need version
// and stage context.
func testGame(major, minor uint8, stage melee.Stage) *slp.Game {
	return &slp.Game{
		Start: &slp.GameStart{
			Version: slp.Version{Major: major, Minor: minor},
			Stage:   stage,
		},
	}
}

// setStates assigns a state to a frame range, inclusive on both ends.
func setStates(frames []slp.PlayerFrame, from, to int, s melee.ActionState) {
	for i := from; i <= to; i++ {
		frames[i].Post.State = s
	}
}

// setPercent assigns the damage percent from a frame to the end of the
// slice.
func setPercent(frames []slp.PlayerFrame, from int, pct float32) {
	for i := from; i < len(frames); i++ {
		frames[i].Post.Percent = pct
	}
}
