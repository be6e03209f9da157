package stats

import (
	"math"

	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// lCancelMask covers every button that registers an L-cancel input.
const lCancelMask = melee.ButtonL | melee.ButtonR | melee.ButtonZ

// maxDIAngle is the largest deflection, in degrees, that directional
// influence can apply to a knockback trajectory.
const maxDIAngle = 18.0

// justInputLCancel reports a fresh shield or Z press: one of L/R/Z held
// this frame with none of them held on the previous frame. Holding R
// and then adding L is not a new input.
func justInputLCancel(cur, prev *slp.PreFrame) bool {
	return cur.PhysicalButtons.Any(lCancelMask) && !prev.PhysicalButtons.Any(lCancelMask)
}

// justTookDamage reports a percent increase between two post frames.
func justTookDamage(cur, prev *slp.PostFrame) bool {
	return cur.Percent > prev.Percent
}

// damageTaken is the percent gained this frame, clamped at zero so the
// percent reset on a respawn does not read as negative damage.
func damageTaken(cur, prev *slp.PostFrame) float32 {
	d := cur.Percent - prev.Percent
	if d < 0 {
		return 0
	}
	return d
}

// didLoseStock reports a stock drop between two post frames.
func didLoseStock(cur, prev *slp.PostFrame) bool {
	return prev.Stocks > cur.Stocks
}

// isWavedashing reports whether a dodge state at index i is actually a
// wavedash: an air dodge within three frames of leaving jump squat.
func isWavedashing(frames []slp.PlayerFrame, i int) bool {
	if frames[i].Post.State != melee.EscapeAir {
		return false
	}
	for j := 1; j <= 3 && i-j >= 0; j++ {
		if frames[i-j].Post.State == melee.KneeBend {
			return true
		}
	}
	return false
}

// angleDegrees converts a vector to its angle in degrees, normalized
// into [0, 360).
func angleDegrees(x, y float64) float64 {
	deg := math.Atan2(y, x) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// effectiveDIStick zeroes the stick axis that cannot influence
// trajectory for the region the stick sits in. Cardinal inputs only
// deflect along their own axis and a dead-zone stick contributes
// nothing; diagonals pass through unchanged.
func effectiveDIStick(stick slp.StickPos) slp.StickPos {
	switch melee.StickRegion(stick.X, stick.Y) {
	case melee.RegionUp, melee.RegionDown:
		stick.X = 0
	case melee.RegionLeft, melee.RegionRight:
		stick.Y = 0
	case melee.DeadZone:
		stick.X = 0
		stick.Y = 0
	}
	return stick
}

// postDIAngle returns the knockback angle, in degrees, after applying
// directional influence from the given stick position. The deflection
// scales with the square of the sine of the stick/trajectory angle
// difference, peaking at maxDIAngle for a perpendicular stick.
func postDIAngle(stick slp.StickPos, kb slp.Velocity) float64 {
	kbAngle := angleDegrees(float64(kb.X), float64(kb.Y))
	stickAngle := angleDegrees(float64(stick.X), float64(stick.Y))
	perp := math.Sin((stickAngle - kbAngle) * math.Pi / 180)
	return kbAngle + perp*math.Abs(perp)*maxDIAngle
}

// postDIVelocity rebuilds a knockback velocity vector from the post-DI
// angle and the original knockback speed.
func postDIVelocity(angleDeg float64, kb slp.Velocity) slp.Velocity {
	speed := math.Hypot(float64(kb.X), float64(kb.Y))
	rad := angleDeg * math.Pi / 180
	return slp.Velocity{
		X: float32(speed * math.Cos(rad)),
		Y: float32(speed * math.Sin(rad)),
	}
}

// truncate2 drops everything past two decimal places without rounding.
func truncate2(v float64) float64 {
	return v - math.Mod(v, 0.01)
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func float64Ptr(f float64) *float64 { return &f }

// findValidSDI filters a per-frame stick region history down to the
// region changes that register as SDI inputs. The first sample and
// dead-zone samples never count; a repeated region never counts twice;
// leaving the dead zone or a cardinal always counts; leaving a diagonal
// counts for another diagonal, but for a cardinal only when it borders
// the opposite quadrant, which in region ordering is a numeric distance
// of 3 to 6.
func findValidSDI(history []melee.JoystickRegion) []melee.JoystickRegion {
	var inputs []melee.JoystickRegion
	for i, region := range history {
		if i == 0 || region == melee.DeadZone {
			continue
		}
		prev := history[i-1]
		if region == prev {
			continue
		}
		if prev == melee.DeadZone || prev.IsCardinal() {
			inputs = append(inputs, region)
			continue
		}
		if region.IsDiagonal() {
			inputs = append(inputs, region)
			continue
		}
		diff := int(region) - int(prev)
		if diff < 0 {
			diff = -diff
		}
		if diff >= 3 && diff < 7 {
			inputs = append(inputs, region)
		}
	}
	return inputs
}
