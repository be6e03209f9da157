package stats

import (
	"log"

	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// ComputeLCancels returns one record per aerial landing that carried an
// L-cancel status, resolving the press timing that produced it. The
// timing is the most recent fresh L/R/Z press before the landing when
// one exists within the intentional window, otherwise the first press
// in the five frames after a failed landing. Requires replay version
// 2.0.0.
func ComputeLCancels(g *slp.Game, player *slp.Player) []*LCancelData {
	version := g.Version()
	if !version.AtLeast(2, 0, 0) {
		log.Printf("⚠️ stats: no L-cancel data, the L-cancel field needs replay version 2.0.0+, got %s", version)
		return nil
	}
	stage := g.Start.Stage
	frames := player.Frames

	var lcancels []*LCancelData
	lastPress := -1
	duringHitlag := false
	for i := 1; i < len(frames); i++ {
		post := frames[i].Post

		if justInputLCancel(frames[i].Pre, frames[i-1].Pre) {
			lastPress = i
			duringHitlag = post.Flags.Has(slp.FlagHitlag)
		}

		if post.LCancel == slp.LCancelNone {
			continue
		}
		success := post.LCancel == slp.LCancelSuccess

		// Press timing relative to landing, positive when early. A
		// press too far ahead to be intentional resolves to nil, with
		// hitlag stretching what counts as intentional.
		var offset *int
		if lastPress >= 0 {
			early := i - lastPress
			tooEarly := (early > 15 && !duringHitlag) || early >= 25
			if !tooEarly {
				offset = intPtr(early)
			}
		}

		// A failed landing without a usable early press can still have
		// a late one. Early input always wins over late.
		if !success && offset == nil {
			for j := 1; j <= 5 && i+j < len(frames); j++ {
				if justInputLCancel(frames[i+j].Pre, frames[i+j-1].Pre) {
					offset = intPtr(-j)
					break
				}
			}
		}

		prevPost := frames[i-1].Post
		lcancels = append(lcancels, &LCancelData{
			FrameIndex:        post.FrameIndex,
			Stocks:            post.Stocks,
			Success:           success,
			Move:              prevPost.State,
			MoveName:          prevPost.State.Name(),
			GroundID:          post.LastGroundID,
			Ground:            melee.GroundName(stage, post.LastGroundID),
			TriggerInputFrame: offset,
			DuringHitlag:      duringHitlag,
			FastFall:          prevPost.Flags.Has(slp.FlagFastFall),
		})
	}
	return lcancels
}
