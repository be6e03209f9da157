package stats

import (
	"testing"

	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// TestComputeLCancelsSuccess verifies a clean cancel: the early press
// offset, the aerial read from the frame before landing, and the
// fast-fall flag carried over.
func TestComputeLCancelsSuccess(t *testing.T) {
	g := testGame(3, 5, melee.FinalDestination)
	frames := testFrames(12)

	setStates(frames, 3, 7, melee.AttackAirLw)
	frames[7].Post.Flags = slp.FlagFastFall
	frames[8].Post.LCancel = slp.LCancelSuccess
	for i := 6; i <= 8; i++ {
		frames[i].Pre.PhysicalButtons = melee.ButtonL
	}

	lcancels := ComputeLCancels(g, &slp.Player{Port: 0, Frames: frames})
	if len(lcancels) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(lcancels))
	}
	lc := lcancels[0]
	if !lc.Success {
		t.Error("Expected a successful cancel")
	}
	if lc.FrameIndex != engineFrame(8) {
		t.Errorf("Expected landing frame %d, got %d", engineFrame(8), lc.FrameIndex)
	}
	if lc.Move != melee.AttackAirLw || lc.MoveName != "ATTACK_AIR_LW" {
		t.Errorf("Expected ATTACK_AIR_LW, got %s", lc.MoveName)
	}
	if lc.TriggerInputFrame == nil || *lc.TriggerInputFrame != 2 {
		t.Errorf("Expected press 2 frames before landing, got %v", lc.TriggerInputFrame)
	}
	if lc.DuringHitlag {
		t.Error("Press happened outside hitlag")
	}
	if !lc.FastFall {
		t.Error("Expected the fast fall flag from the falling frame")
	}
	if lc.Ground != "MAIN_STAGE" {
		t.Errorf("Expected MAIN_STAGE, got %s", lc.Ground)
	}
}

// TestComputeLCancelsLatePress verifies that a failed landing with no
// early press picks up the first press in the five frames after it as
// a negative offset.
func TestComputeLCancelsLatePress(t *testing.T) {
	g := testGame(3, 5, melee.FinalDestination)
	frames := testFrames(14)

	setStates(frames, 3, 6, melee.AttackAirN)
	frames[7].Post.LCancel = slp.LCancelFailure
	for i := 9; i <= 10; i++ {
		frames[i].Pre.PhysicalButtons = melee.ButtonR
	}

	lcancels := ComputeLCancels(g, &slp.Player{Port: 0, Frames: frames})
	if len(lcancels) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(lcancels))
	}
	lc := lcancels[0]
	if lc.Success {
		t.Error("Expected a failed cancel")
	}
	if lc.TriggerInputFrame == nil || *lc.TriggerInputFrame != -2 {
		t.Errorf("Expected press 2 frames after landing, got %v", lc.TriggerInputFrame)
	}
}

// TestComputeLCancelsUnintentionalPress verifies the intent window: a
// press more than 15 frames out only counts when it happened during
// hitlag, and never from 25 frames out.
func TestComputeLCancelsUnintentionalPress(t *testing.T) {
	g := testGame(3, 5, melee.FinalDestination)

	run := func(pressToLanding int, hitlag bool, status slp.LCancelStatus) *LCancelData {
		frames := testFrames(40)
		press := 5
		landing := press + pressToLanding
		frames[press].Pre.PhysicalButtons = melee.ButtonL
		frames[press+1].Pre.PhysicalButtons = melee.ButtonL
		if hitlag {
			frames[press].Post.Flags = slp.FlagHitlag
		}
		frames[landing].Post.LCancel = status
		lcancels := ComputeLCancels(g, &slp.Player{Port: 0, Frames: frames})
		if len(lcancels) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(lcancels))
		}
		return lcancels[0]
	}

	if lc := run(20, false, slp.LCancelFailure); lc.TriggerInputFrame != nil {
		t.Errorf("Press 20 frames out without hitlag should not resolve, got %v",
			*lc.TriggerInputFrame)
	}
	lc := run(20, true, slp.LCancelSuccess)
	if lc.TriggerInputFrame == nil || *lc.TriggerInputFrame != 20 {
		t.Errorf("Press 20 frames out during hitlag should resolve, got %v", lc.TriggerInputFrame)
	}
	if !lc.DuringHitlag {
		t.Error("Expected the hitlag mark on the press")
	}
	if lc := run(25, true, slp.LCancelFailure); lc.TriggerInputFrame != nil {
		t.Errorf("Press 25 frames out should never resolve, got %v", *lc.TriggerInputFrame)
	}
}

// TestComputeLCancelsOffsetBounds verifies resolved offsets across a
// mixed sequence stay inside the plausible input window.
func TestComputeLCancelsOffsetBounds(t *testing.T) {
	g := testGame(3, 5, melee.FinalDestination)
	frames := testFrames(60)

	press := func(i int) {
		frames[i].Pre.PhysicalButtons = melee.ButtonL
		frames[i+1].Pre.PhysicalButtons = melee.ButtonL
	}
	press(3)
	press(26)
	press(40)
	frames[5].Post.LCancel = slp.LCancelSuccess
	frames[24].Post.LCancel = slp.LCancelFailure
	frames[52].Post.LCancel = slp.LCancelFailure

	lcancels := ComputeLCancels(g, &slp.Player{Port: 0, Frames: frames})
	if len(lcancels) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(lcancels))
	}
	want := []int{2, -2, 12}
	for i, lc := range lcancels {
		if lc.TriggerInputFrame == nil || *lc.TriggerInputFrame != want[i] {
			t.Errorf("Record %d offset = %v, want %d", i, lc.TriggerInputFrame, want[i])
			continue
		}
		if off := *lc.TriggerInputFrame; off < -15 || off > 25 {
			t.Errorf("Record %d offset %d outside the input window", i, off)
		}
	}
}

// TestComputeLCancelsOldReplay verifies that captures below 2.0.0
// produce no records.
func TestComputeLCancelsOldReplay(t *testing.T) {
	g := testGame(1, 5, melee.FinalDestination)
	frames := testFrames(10)
	frames[5].Post.LCancel = slp.LCancelSuccess

	if lcancels := ComputeLCancels(g, &slp.Player{Port: 0, Frames: frames}); lcancels != nil {
		t.Fatalf("Expected no data below 2.0.0, got %d records", len(lcancels))
	}
}
