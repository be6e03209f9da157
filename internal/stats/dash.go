package stats

import (
	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// ComputeDashes returns every dash the player performed, appended in
// the order they ended. A dash->turn->dash state pattern is a
// dashdance; both dashes involved get marked, which means a long
// dashdance chain marks every dash in it.
func ComputeDashes(player *slp.Player) []*DashData {
	frames := player.Frames

	var dashes []*DashData
	var dash *DashData
	for i := 2; i < len(frames); i++ {
		post := frames[i].Post
		state := post.State
		prevState := frames[i-1].Post.State
		prevPrevState := frames[i-2].Post.State

		if state == melee.Dash && prevState != melee.Dash {
			dash = &DashData{
				FrameIndex: post.FrameIndex,
				Stocks:     post.Stocks,
				Direction:  post.Facing.String(),
				StartPos:   post.Position.X,
			}

			if prevState == melee.Turn && prevPrevState == melee.Dash {
				dash.IsDashdance = true
				if len(dashes) > 0 {
					dashes[len(dashes)-1].IsDashdance = true
				}
			}
		}

		if state != melee.Dash && prevState == melee.Dash && dash != nil {
			dash.EndPos = post.Position.X
			dashes = append(dashes, dash)
			dash = nil
		}
	}
	return dashes
}
