package stats

import (
	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// wavedashTriggerMask covers the digital trigger presses that start an
// air dodge. Z is excluded because it grabs in the air.
const wavedashTriggerMask = melee.ButtonL | melee.ButtonR

// wavedashWindow bounds both backward scans: trigger press to landing,
// and jump squat to trigger press.
const wavedashWindow = 5

// ComputeWavedashes returns every wavedash and waveland the player
// performed. A landing in special landing lag is matched backwards to
// the trigger press that started the air dodge, and from there to the
// jump squat frame that preceded it. No jump squat within the window
// means the air dodge started from a regular fall, which makes the
// event a waveland.
func ComputeWavedashes(player *slp.Player) []*WavedashData {
	frames := player.Frames

	var wavedashes []*WavedashData
	for i := 1; i < len(frames); i++ {
		if frames[i].Post.State != melee.LandFallSpecial {
			continue
		}
		if frames[i-1].Post.State == melee.LandFallSpecial {
			continue
		}

		for j := 0; j < wavedashWindow && i-j >= 1; j++ {
			if !justPressedTrigger(frames, i-j) {
				continue
			}

			angle, direction := wavedashAngle(frames[i-j].Pre.Joystick)
			wd := &WavedashData{
				FrameIndex:     frames[i].Post.FrameIndex,
				Stocks:         frames[i].Post.Stocks,
				Angle:          angle,
				Direction:      direction,
				AirdodgeFrames: j,
				Waveland:       true,
			}
			for k := 0; k < wavedashWindow && i-j-k >= 0; k++ {
				if frames[i-j-k].Post.State == melee.KneeBend {
					wd.TriggerFrame = k
					wd.Waveland = false
					break
				}
			}
			wavedashes = append(wavedashes, wd)
			break
		}
	}
	return wavedashes
}

// justPressedTrigger reports a fresh L or R press on frame i.
func justPressedTrigger(frames []slp.PlayerFrame, i int) bool {
	return frames[i].Pre.PhysicalButtons.Any(wavedashTriggerMask) &&
		!frames[i-1].Pre.PhysicalButtons.Any(wavedashTriggerMask)
}

// wavedashAngle normalizes a stick angle into degrees below horizontal
// and a LEFT/RIGHT/DOWN direction. An upward stick has no
// below-horizontal reading, so the raw angle comes back with no
// direction.
func wavedashAngle(stick slp.StickPos) (float64, string) {
	a := angleDegrees(float64(stick.X), float64(stick.Y))
	switch {
	case a > 180 && a < 270:
		return a - 180, "LEFT"
	case a > 270:
		return 360 - a, "RIGHT"
	case a == 180:
		return 0, "LEFT"
	case a == 0:
		return 0, "RIGHT"
	case a == 270:
		return 90, "DOWN"
	}
	return a, ""
}
