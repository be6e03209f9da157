package melee

import "testing"

// TestStickRegionBoundaries probes the dead-zone threshold on both axes.
func TestStickRegionBoundaries(t *testing.T) {
	cases := []struct {
		x, y float32
		want JoystickRegion
	}{
		{0, 0, DeadZone},
		{0.28, 0.0, DeadZone},
		{0.2875, 0, RegionRight},
		{-0.2875, 0, RegionLeft},
		{0, 0.2875, RegionUp},
		{0, -0.2875, RegionDown},
		{0.5, 0.5, RegionUpRight},
		{-0.5, 0.5, RegionUpLeft},
		{0.5, -0.5, RegionDownRight},
		{-0.5, -0.5, RegionDownLeft},
		{0.2874, 0.2874, DeadZone},
		{1.0, 0.1, RegionRight},
	}
	for _, c := range cases {
		if got := StickRegion(c.x, c.y); got != c.want {
			t.Errorf("StickRegion(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

// TestRegionParity verifies cardinals are even and diagonals odd, which the
// SDI adjacency rule relies on.
func TestRegionParity(t *testing.T) {
	for _, r := range []JoystickRegion{RegionUp, RegionRight, RegionDown, RegionLeft} {
		if !r.IsCardinal() || r.IsDiagonal() {
			t.Errorf("region %v should be cardinal", r)
		}
	}
	for _, r := range []JoystickRegion{RegionUpRight, RegionDownRight, RegionDownLeft, RegionUpLeft} {
		if !r.IsDiagonal() || r.IsCardinal() {
			t.Errorf("region %v should be diagonal", r)
		}
	}
	if DeadZone.IsCardinal() || DeadZone.IsDiagonal() {
		t.Error("dead zone is neither cardinal nor diagonal")
	}
}

// TestButtonMasks checks the held-button group test used for trigger edges.
func TestButtonMasks(t *testing.T) {
	held := ButtonL | ButtonA
	if !held.Any(ButtonL | ButtonR | ButtonZ) {
		t.Error("L should register in the trigger group")
	}
	if (ButtonA | ButtonB).Any(ButtonL | ButtonR | ButtonZ) {
		t.Error("A+B should not register in the trigger group")
	}
}

// TestOffstageBounds checks the per-stage horizontal bound and the shared
// depth bound.
func TestOffstageBounds(t *testing.T) {
	if !Battlefield.IsOffstage(70, 10) {
		t.Error("x=70 on Battlefield should be offstage")
	}
	if Battlefield.IsOffstage(60, 10) {
		t.Error("x=60 on Battlefield should be onstage")
	}
	if !Battlefield.IsOffstage(0, -6) {
		t.Error("y=-6 should be offstage on any stage")
	}
	if FinalDestination.IsOffstage(88, 0) {
		t.Error("x=88 on Final Destination should be onstage")
	}
}
