package melee

// Direction is a facing or knockback direction on the horizontal axis.
// The engine reports it as a float; DOWN only appears in a handful of warp
// animations.
type Direction int8

const (
	DirectionLeft  Direction = -1
	DirectionDown  Direction = 0
	DirectionRight Direction = 1

	// DirectionUp never appears as a facing; deaths off the top blast zone
	// resolve to it.
	DirectionUp Direction = 2
)

// DirectionFromFloat converts the raw facing float into a Direction.
func DirectionFromFloat(f float32) Direction {
	switch {
	case f < 0:
		return DirectionLeft
	case f > 0:
		return DirectionRight
	}
	return DirectionDown
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "LEFT"
	case DirectionRight:
		return "RIGHT"
	case DirectionUp:
		return "UP"
	}
	return "DOWN"
}
