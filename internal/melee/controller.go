package melee

// PhysicalButtons is the raw button bitmask from the controller poll.
type PhysicalButtons uint16

const (
	PadLeft  PhysicalButtons = 0x0001
	PadRight PhysicalButtons = 0x0002
	PadDown  PhysicalButtons = 0x0004
	PadUp    PhysicalButtons = 0x0008
	ButtonZ  PhysicalButtons = 0x0010
	ButtonR  PhysicalButtons = 0x0020
	ButtonL  PhysicalButtons = 0x0040
	ButtonA  PhysicalButtons = 0x0100
	ButtonB  PhysicalButtons = 0x0200
	ButtonX  PhysicalButtons = 0x0400
	ButtonY  PhysicalButtons = 0x0800
	Start    PhysicalButtons = 0x1000
)

// Any reports whether any button of the mask is held.
func (b PhysicalButtons) Any(mask PhysicalButtons) bool {
	return b&mask != 0
}

// LogicalButtons is the engine-processed button bitmask, which folds analog
// stick and trigger positions into extra bits.
type LogicalButtons uint32

const (
	LogicalJoystickUp    LogicalButtons = 0x00010000
	LogicalJoystickDown  LogicalButtons = 0x00020000
	LogicalJoystickLeft  LogicalButtons = 0x00040000
	LogicalJoystickRight LogicalButtons = 0x00080000
	LogicalCStickUp      LogicalButtons = 0x00100000
	LogicalCStickDown    LogicalButtons = 0x00200000
	LogicalCStickLeft    LogicalButtons = 0x00400000
	LogicalCStickRight   LogicalButtons = 0x00800000
	LogicalTriggerAnalog LogicalButtons = 0x80000000
)

// Any reports whether any button of the mask is active.
func (b LogicalButtons) Any(mask LogicalButtons) bool {
	return b&mask != 0
}

// JoystickRegion is one of nine discretized stick zones. Cardinals are even,
// diagonals odd; the ordering is the circular walk UP, UP_RIGHT, RIGHT, ...
// UP_LEFT, which the SDI adjacency rule depends on.
type JoystickRegion int8

const (
	DeadZone JoystickRegion = iota - 1
	RegionUp
	RegionUpRight
	RegionRight
	RegionDownRight
	RegionDown
	RegionDownLeft
	RegionLeft
	RegionUpLeft
)

// DeadZoneSize is the axis magnitude below which an input does not register.
const DeadZoneSize float32 = 0.2875

// StickRegion classifies a stick position into a joystick region.
func StickRegion(x, y float32) JoystickRegion {
	right := x >= DeadZoneSize
	left := x <= -DeadZoneSize
	up := y >= DeadZoneSize
	down := y <= -DeadZoneSize

	switch {
	case up && right:
		return RegionUpRight
	case up && left:
		return RegionUpLeft
	case down && right:
		return RegionDownRight
	case down && left:
		return RegionDownLeft
	case up:
		return RegionUp
	case down:
		return RegionDown
	case right:
		return RegionRight
	case left:
		return RegionLeft
	}
	return DeadZone
}

// IsCardinal reports whether the region is a straight up/down/left/right
// zone.
func (r JoystickRegion) IsCardinal() bool {
	return r >= 0 && r%2 == 0
}

// IsDiagonal reports whether the region is a corner zone.
func (r JoystickRegion) IsDiagonal() bool {
	return r >= 0 && r%2 == 1
}

// String returns the region name.
func (r JoystickRegion) String() string {
	switch r {
	case DeadZone:
		return "DEAD_ZONE"
	case RegionUp:
		return "UP"
	case RegionUpRight:
		return "UP_RIGHT"
	case RegionRight:
		return "RIGHT"
	case RegionDownRight:
		return "DOWN_RIGHT"
	case RegionDown:
		return "DOWN"
	case RegionDownLeft:
		return "DOWN_LEFT"
	case RegionLeft:
		return "LEFT"
	case RegionUpLeft:
		return "UP_LEFT"
	}
	return "DEAD_ZONE"
}
