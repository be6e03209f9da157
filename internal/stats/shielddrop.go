package stats

import (
	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// shieldstunScanWindow bounds the backward scan for the shield-release
// frame that marks a drop performed out of shieldstun.
const shieldstunScanWindow = 7

// ComputeShieldDrops returns every shield drop: a platform drop-through
// entered directly from an active shielding state. A drop entered from
// the guard-release animation is a regular platform drop and does not
// count.
func ComputeShieldDrops(g *slp.Game, player *slp.Player) []*ShieldDropData {
	stage := g.Start.Stage
	frames := player.Frames

	var drops []*ShieldDropData
	for i := 1; i < len(frames); i++ {
		post := frames[i].Post
		prevState := frames[i-1].Post.State

		wasShielding := prevState == melee.Guard ||
			prevState == melee.GuardOn ||
			prevState == melee.GuardReflect ||
			prevState == melee.GuardSetOff

		if post.State != melee.Pass || !wasShielding {
			continue
		}

		var ooShieldstun *int
		for j := 1; j <= shieldstunScanWindow && i-j >= 0; j++ {
			if frames[i-j].Post.State == melee.GuardSetOff {
				ooShieldstun = intPtr(j)
				break
			}
		}

		drops = append(drops, &ShieldDropData{
			FrameIndex:        post.FrameIndex,
			GroundID:          post.LastGroundID,
			Ground:            melee.GroundName(stage, post.LastGroundID),
			OOShieldstunFrame: ooShieldstun,
		})
	}
	return drops
}
