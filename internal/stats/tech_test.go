package stats

import (
	"testing"

	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// TestComputeTechsInPlace verifies the basic situation: hitstun into a
// tech in place, closed cleanly on the first neutral frame, with the
// ground and the move that caused it recorded.
func TestComputeTechsInPlace(t *testing.T) {
	g := testGame(3, 5, melee.YoshisStory)
	playerFrames := testFrames(12)
	oppFrames := testFrames(12)

	setStates(playerFrames, 1, 3, melee.DamageAir1)
	setStates(playerFrames, 4, 6, melee.Passive)
	for i := range playerFrames {
		playerFrames[i].Post.LastGroundID = 3
	}
	for i := range oppFrames {
		oppFrames[i].Post.LastAttackLanded = melee.FSmash
	}

	player := &slp.Player{Port: 0, Frames: playerFrames}
	opponent := &slp.Player{Port: 1, Frames: oppFrames}

	techs := ComputeTechs(g, player, opponent)
	if len(techs) != 1 {
		t.Fatalf("Expected 1 tech, got %d", len(techs))
	}
	tech := techs[0]
	if tech.TechType != "TECH_IN_PLACE" {
		t.Errorf("Expected TECH_IN_PLACE, got %s", tech.TechType)
	}
	if tech.FrameIndex != engineFrame(4) {
		t.Errorf("Expected frame %d, got %d", engineFrame(4), tech.FrameIndex)
	}
	if tech.WasPunished {
		t.Error("Clean getup should not be punished")
	}
	if tech.GroundID != 3 || tech.Ground != "MAIN_STAGE" {
		t.Errorf("Expected ground 3 MAIN_STAGE, got %d %s", tech.GroundID, tech.Ground)
	}
	if tech.IsOnPlatform {
		t.Error("Ground-level tech misread as a platform tech")
	}
	if tech.LastHitBy != melee.FSmash || tech.LastHitByName != "FSMASH" {
		t.Errorf("Expected FSMASH as the cause, got %s", tech.LastHitByName)
	}
	if tech.IsMissedTech {
		t.Error("Tech in place misread as a missed tech")
	}
}

// TestComputeTechsMissedChain verifies that a missed tech, the wait on
// the ground, a jab reset and the damage that follows all collapse into
// one punished record.
func TestComputeTechsMissedChain(t *testing.T) {
	g := testGame(3, 5, melee.Battlefield)
	playerFrames := testFrames(14)
	oppFrames := testFrames(14)

	setStates(playerFrames, 1, 3, melee.DamageN1)
	setStates(playerFrames, 4, 6, melee.DownBoundU)
	setStates(playerFrames, 7, 8, melee.DownWaitU)
	setStates(playerFrames, 9, 10, melee.DownDamageU)
	playerFrames[11].Post.State = melee.DamageN1

	player := &slp.Player{Port: 0, Frames: playerFrames}
	opponent := &slp.Player{Port: 1, Frames: oppFrames}

	techs := ComputeTechs(g, player, opponent)
	if len(techs) != 1 {
		t.Fatalf("Expected 1 record for the whole situation, got %d", len(techs))
	}
	tech := techs[0]
	if !tech.IsMissedTech {
		t.Error("Expected a missed tech")
	}
	if tech.JabReset == nil || !*tech.JabReset {
		t.Error("Expected a jab reset")
	}
	if !tech.WasPunished {
		t.Error("Getting hit out of the situation should mark it punished")
	}
	if tech.TechType != "JAB_RESET" {
		t.Errorf("Expected the last option JAB_RESET, got %s", tech.TechType)
	}
}

// TestComputeTechsRollDirections verifies the roll bookkeeping: the
// left/right resolution from facing, and the center/opponent flags
// sampled on the frame the roll comes out.
func TestComputeTechsRollDirections(t *testing.T) {
	g := testGame(3, 5, melee.FinalDestination)

	run := func(facing melee.Direction) *TechData {
		playerFrames := testFrames(10)
		oppFrames := testFrames(10)
		setStates(playerFrames, 1, 2, melee.DamageN1)
		setStates(playerFrames, 3, 6, melee.PassiveStandF)
		for i := range playerFrames {
			playerFrames[i].Post.Facing = facing
			playerFrames[i].Post.Position.X = 10
			oppFrames[i].Post.Position.X = 30
		}
		techs := ComputeTechs(g,
			&slp.Player{Port: 0, Frames: playerFrames},
			&slp.Player{Port: 1, Frames: oppFrames})
		if len(techs) != 1 {
			t.Fatalf("Expected 1 tech, got %d", len(techs))
		}
		return techs[0]
	}

	right := run(melee.DirectionRight)
	if right.TechType != "TECH_RIGHT" {
		t.Errorf("Forward roll facing right should be TECH_RIGHT, got %s", right.TechType)
	}
	if right.TowardsCenter == nil || *right.TowardsCenter {
		t.Error("Rolling right from the right side is away from center")
	}
	if right.TowardsOpponent == nil || *right.TowardsOpponent {
		t.Error("Expected towards-opponent false for a right roll with the opponent to the right")
	}

	left := run(melee.DirectionLeft)
	if left.TechType != "TECH_LEFT" {
		t.Errorf("Forward roll facing left should be TECH_LEFT, got %s", left.TechType)
	}
	if left.TowardsOpponent == nil || !*left.TowardsOpponent {
		t.Error("Expected towards-opponent true for a left roll with the opponent at higher x")
	}
}

// TestComputeTechsOldReplay verifies that captures older than 2.0.0
// still produce records, just without the ground fields.
func TestComputeTechsOldReplay(t *testing.T) {
	g := testGame(1, 0, melee.YoshisStory)
	playerFrames := testFrames(10)
	oppFrames := testFrames(10)
	setStates(playerFrames, 1, 2, melee.DamageN1)
	setStates(playerFrames, 3, 5, melee.Passive)
	for i := range playerFrames {
		playerFrames[i].Post.LastGroundID = 3
	}

	techs := ComputeTechs(g,
		&slp.Player{Port: 0, Frames: playerFrames},
		&slp.Player{Port: 1, Frames: oppFrames})
	if len(techs) != 1 {
		t.Fatalf("Expected 1 tech, got %d", len(techs))
	}
	if techs[0].Ground != "" || techs[0].GroundID != 0 {
		t.Errorf("Expected no ground fields on an old capture, got %d %q",
			techs[0].GroundID, techs[0].Ground)
	}
	if techs[0].TechType != "TECH_IN_PLACE" {
		t.Errorf("Expected TECH_IN_PLACE, got %s", techs[0].TechType)
	}
}
