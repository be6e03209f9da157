package stats

import (
	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// comboLeniency is how many consecutive neutral opponent frames an
// active combo survives before it times out.
const comboLeniency = 45

// ComputeCombos walks the aligned player/opponent frame pairs and
// returns every combo the player performed, in order. A combo opens
// when the opponent enters a damaged, grabbed or hitstun state, accrues
// one MoveLanded per distinct connecting animation, and ends on a stock
// loss on either side or after comboLeniency frames without pressure.
// The checks argument disables individual opponent-state conditions for
// captures whose format predates the corresponding fields.
func ComputeCombos(g *slp.Game, player, opponent *slp.Player, checks ComboChecks) []*ComboData {
	stage := g.Start.Stage
	frames := player.Frames
	oppFrames := opponent.Frames

	var (
		combos       []*ComboData
		combo        *ComboData
		move         *MoveLanded
		resetCounter int
		// Tracks the animation that last connected so a new instance of
		// the same move is counted separately from a continuing
		// multi-hit. State age resets expose back-to-back repeats of
		// the same animation.
		lastHitAnimation *melee.ActionState
	)

	for i := 1; i < len(frames); i++ {
		playerPost := frames[i].Post
		prevPlayerPost := frames[i-1].Post
		oppPost := oppFrames[i].Post
		prevOppPost := oppFrames[i-1].Post
		oppState := oppPost.State

		oppDamaged := oppState.IsDamaged()
		oppInHitstun := oppPost.Flags.Has(slp.FlagHitstun) && checks.Hitstun
		oppGrabbed := oppState.IsGrabbed()
		oppCmdGrabbed := oppState.IsCmdGrabbed()
		oppDamageTaken := damageTaken(oppPost, prevOppPost)

		if lastHitAnimation != nil &&
			(playerPost.State != *lastHitAnimation || playerPost.StateAge < prevPlayerPost.StateAge) {
			lastHitAnimation = nil
		}

		if oppDamaged || oppGrabbed || oppCmdGrabbed || oppInHitstun {
			if combo == nil {
				combo = &ComboData{
					PlayerStocks:   playerPost.Stocks,
					OpponentStocks: oppPost.Stocks,
					StartFrame:     playerPost.FrameIndex,
					StartPercent:   prevOppPost.Percent,
					CurrentPercent: oppPost.Percent,
					EndPercent:     oppPost.Percent,
				}
				combos = append(combos, combo)
			}

			if oppDamageTaken > 0 {
				if lastHitAnimation == nil {
					move = &MoveLanded{
						FrameIndex:       playerPost.FrameIndex,
						MoveID:           playerPost.LastAttackLanded,
						MoveName:         playerPost.LastAttackLanded.Name(),
						OpponentPosition: oppPost.Position,
					}
					combo.Moves = append(combo.Moves, move)
				}
				if move != nil {
					move.HitCount++
					move.Damage += float64(oppDamageTaken)
				}
				anim := prevPlayerPost.State
				lastHitAnimation = &anim
			}
		}

		if combo == nil {
			continue
		}

		oppInHitlag := oppPost.Flags.Has(slp.FlagHitlag) && checks.Hitlag
		oppTeching := oppState.IsTeching() && checks.Tech
		oppDowned := oppState.IsDowned() && checks.Downed
		oppDying := oppState.IsDying()
		oppOffstage := stage.IsOffstage(oppPost.Position.X, oppPost.Position.Y) && checks.Offstage
		oppDodging := oppState.IsDodging() && checks.Dodge && !isWavedashing(oppFrames, i)
		oppShielding := oppState.IsShielding() && checks.Shield
		oppShieldBroken := oppState.IsShieldBroken() && checks.ShieldBreak
		oppLostStock := didLoseStock(oppPost, prevOppPost)
		oppLedgeAction := oppState.IsLedgeAction() && checks.LedgeAction
		oppMaybeJuggled := stage.IsJuggleHeight(oppPost.Position.Y, oppPost.Airborne)
		oppSpecialFall := oppState.IsSpecialFall()
		oppUpBLag := melee.IsUpBLag(oppState, prevOppPost.State)

		if !oppLostStock {
			combo.CurrentPercent = oppPost.Percent
		}

		playerLostStock := didLoseStock(playerPost, prevPlayerPost)

		// Any of these keeps the pressure timer at zero. The list is
		// broader than pure hit states so shield pressure, edgeguards
		// and juggles hold a combo together.
		if oppDamaged || oppGrabbed || oppCmdGrabbed || oppInHitlag || oppInHitstun ||
			oppShielding || oppOffstage || oppDodging || oppDying || oppDowned ||
			oppTeching || oppLedgeAction || oppShieldBroken || oppMaybeJuggled ||
			oppSpecialFall || oppUpBLag {
			resetCounter = 0
		} else {
			resetCounter++
		}

		shouldTerminate := false

		if oppDying {
			if dir, ok := melee.DeathDirection(oppState); ok {
				combo.DeathDirection = dir.String()
			}
		}

		if oppLostStock {
			combo.DidKill = true
			if oppPost.Stocks == 0 {
				combo.DidEndGame = true
			}
			shouldTerminate = true
		}

		if resetCounter > comboLeniency || playerLostStock {
			shouldTerminate = true
		}

		if shouldTerminate {
			combo.EndFrame = playerPost.FrameIndex
			combo.EndPercent = prevOppPost.Percent
			combo = nil
			move = nil
		}
	}

	// A capture can stop mid-combo. Close the record against the last
	// frame so it is still well formed.
	if combo != nil {
		combo.EndFrame = frames[len(frames)-1].Post.FrameIndex
		combo.EndPercent = oppFrames[len(oppFrames)-1].Post.Percent
	}

	return combos
}
