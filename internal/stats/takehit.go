package stats

import (
	"log"
	"math"

	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// ComputeTakeHits returns one record per hit the player took, each
// covering the hitlag window the hit caused. The stick history recorded
// during the window feeds the SDI filter, and the stick position on the
// first frame after hitlag decides DI and ASDI. Requires replay version
// 2.0.0 for the bitflag fields; knockback and DI values additionally
// need 3.5.0 and stay nil below that.
func ComputeTakeHits(g *slp.Game, player, opponent *slp.Player) []*TakeHitData {
	version := g.Version()
	if !version.AtLeast(2, 0, 0) {
		log.Printf("⚠️ stats: no take-hit data, bitflag fields need replay version 2.0.0+, got %s", version)
		return nil
	}
	knockbackCheck := version.AtLeast(3, 5, 0)
	if !knockbackCheck {
		log.Printf("⚠️ stats: partial take-hit data, knockback and DI fields need replay version 3.5.0+, got %s", version)
	}

	frames := player.Frames
	oppFrames := opponent.Frames

	var takeHits []*TakeHitData
	var hit *TakeHitData
	for i := 1; i < len(frames); i++ {
		pre := frames[i].Pre
		post := frames[i].Post
		prevPost := frames[i-1].Post

		// Shield hits cause hitlag too. Those are a different situation
		// with different escape options, so they stay out of these
		// records.
		inHitlag := post.Flags.Has(slp.FlagHitlag) && !prevPost.State.IsShielding()
		wasInHitlag := prevPost.Flags.Has(slp.FlagHitlag) && !prevPost.State.IsShielding()

		if !inHitlag {
			if wasInHitlag && hit != nil {
				closeTakeHit(hit, pre, prevPost, knockbackCheck)
				takeHits = append(takeHits, hit)
				hit = nil
			}
			continue
		}

		if !wasInHitlag && justTookDamage(post, prevPost) {
			hit = &TakeHitData{
				FrameIndex:     post.FrameIndex,
				StateBeforeHit: prevPost.State,
				Percent:        post.Percent,
				Grounded:       !post.Airborne,
				StartPos:       post.Position,
				CrouchCancel:   prevPost.State == melee.Squat || prevPost.State == melee.SquatWait,
			}
			if atk := oppFrames[i].Post.LastAttackLanded; atk != melee.AttackNone {
				hit.LastHitBy = atk
				hit.LastHitByName = atk.Name()
			}
			if knockbackCheck {
				kb := post.KnockbackVel
				hit.KBVelocity = &kb
				hit.KBAngle = float64Ptr(angleDegrees(float64(kb.X), float64(kb.Y)))
			}
		}

		if hit != nil {
			hit.StickRegions = append(hit.StickRegions, melee.StickRegion(pre.Joystick.X, pre.Joystick.Y))
			hit.HitlagFrames++
		}
	}
	return takeHits
}

// closeTakeHit fills the fields that only resolve once hitlag ends.
// exitPre holds the inputs of the first frame after hitlag, lastPost
// the state of the last frame inside it.
func closeTakeHit(hit *TakeHitData, exitPre *slp.PreFrame, lastPost *slp.PostFrame, knockbackCheck bool) {
	hit.EndPos = lastPost.Position
	hit.DIStickPos = effectiveDIStick(exitPre.Joystick)

	if knockbackCheck {
		kb := *hit.KBVelocity
		if kb.X != 0 || kb.Y != 0 {
			finalAngle := postDIAngle(hit.DIStickPos, kb)
			hit.FinalKBAngle = float64Ptr(finalAngle)
			hit.DIEfficacy = float64Ptr(truncate2(math.Abs(finalAngle-*hit.KBAngle) / maxDIAngle * 100))
		} else {
			hit.FinalKBAngle = float64Ptr(*hit.KBAngle)
		}
		final := postDIVelocity(*hit.FinalKBAngle, kb)
		hit.FinalKBVelocity = &final
	}

	// ASDI follows the C-stick when it is out of the dead zone, the
	// raw main stick otherwise.
	cstick := melee.StickRegion(exitPre.CStick.X, exitPre.CStick.Y)
	if cstick != melee.DeadZone {
		hit.ASDI = cstick
	} else {
		hit.ASDI = melee.StickRegion(exitPre.Joystick.X, exitPre.Joystick.Y)
	}

	hit.SDIInputs = findValidSDI(hit.StickRegions)
}
