package stats

import (
	"log"

	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// ComputeTechs returns every tech situation the player went through.
// One record spans the whole situation: from the first teching frame
// until the first frame outside the teching ranges, however many
// options (missed tech, roll, getup attack) the player chained inside
// it. Ground fields need replay version 2.0.0; older captures produce
// records without them.
func ComputeTechs(g *slp.Game, player, opponent *slp.Player) []*TechData {
	version := g.Version()
	groundCheck := version.AtLeast(2, 0, 0)
	if !groundCheck {
		log.Printf("⚠️ stats: partial tech data, ground fields need replay version 2.0.0+, got %s", version)
	}
	stage := g.Start.Stage
	frames := player.Frames
	oppFrames := opponent.Frames

	var techs []*TechData
	var tech *TechData
	for i := 1; i < len(frames); i++ {
		post := frames[i].Post
		state := post.State
		prevState := frames[i-1].Post.State

		currTeching := state.IsTeching()
		wasTeching := prevState.IsTeching()

		if !currTeching {
			if wasTeching && tech != nil {
				if state.IsDamaged() {
					tech.WasPunished = true
				}
				techs = append(techs, tech)
				tech = nil
			}
			continue
		}

		oppPost := oppFrames[i].Post

		if tech == nil {
			tech = &TechData{
				FrameIndex:   post.FrameIndex,
				Stocks:       post.Stocks,
				Position:     post.Position,
				IsOnPlatform: post.Position.Y > 5,
			}
			if oppPost.LastAttackLanded != melee.AttackNone {
				tech.LastHitBy = oppPost.LastAttackLanded
				tech.LastHitByName = oppPost.LastAttackLanded.Name()
			}
			if groundCheck {
				tech.GroundID = post.LastGroundID
				tech.Ground = melee.GroundName(stage, post.LastGroundID)
			}
		}

		// One update per decision. Positional fields are sampled on the
		// frame an option comes out, not on every frame of its
		// animation.
		if state == prevState {
			continue
		}

		techType, ok := melee.ClassifyTech(state, post.Facing)
		if !ok {
			continue
		}

		switch techType {
		case melee.MissedTech:
			tech.IsMissedTech = true
			tech.JabReset = boolPtr(false)
		case melee.JabReset:
			tech.JabReset = boolPtr(true)
		case melee.TechLeft, melee.MissedTechRollLeft:
			rel := oppPost.Position.X - post.Position.X
			tech.TowardsCenter = boolPtr(post.Facing == melee.DirectionRight)
			tech.TowardsOpponent = boolPtr(rel > 0)
		case melee.TechRight, melee.MissedTechRollRight:
			rel := oppPost.Position.X - post.Position.X
			tech.TowardsCenter = boolPtr(post.Facing != melee.DirectionRight)
			tech.TowardsOpponent = boolPtr(rel <= 0)
		}

		tech.TechType = techType.String()
	}
	return techs
}
