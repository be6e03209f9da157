package melee

import "fmt"

// ActionState is the per-frame animation/behavior id reported by the engine.
// Values below CharacterStateBase are shared by every character; values at or
// above it are character-specific and resolve through the character tables.
type ActionState uint16

// CharacterStateBase is the first character-specific action state id.
const CharacterStateBase ActionState = 341

// Common action states referenced by the classifiers.
const (
	DeadDown            ActionState = 0
	DeadLeft            ActionState = 1
	DeadRight           ActionState = 2
	DeadUp              ActionState = 3
	Sleep               ActionState = 11
	Rebirth             ActionState = 12
	RebirthWait         ActionState = 13
	Wait                ActionState = 14
	Turn                ActionState = 18
	TurnRun             ActionState = 19
	Dash                ActionState = 20
	Run                 ActionState = 21
	KneeBend            ActionState = 24
	JumpF               ActionState = 25
	JumpB               ActionState = 26
	Fall                ActionState = 29
	FallSpecial         ActionState = 35
	FallSpecialF        ActionState = 36
	FallSpecialB        ActionState = 37
	DamageFall          ActionState = 38
	Squat               ActionState = 39
	SquatWait           ActionState = 40
	SquatRv             ActionState = 41
	Land                ActionState = 42
	LandFallSpecial     ActionState = 43
	AttackAirN          ActionState = 65
	AttackAirF          ActionState = 66
	AttackAirB          ActionState = 67
	AttackAirHi         ActionState = 68
	AttackAirLw         ActionState = 69
	LandingAirN         ActionState = 70
	LandingAirF         ActionState = 71
	LandingAirB         ActionState = 72
	LandingAirHi        ActionState = 73
	LandingAirLw        ActionState = 74
	DamageHi1           ActionState = 75
	DamageN1            ActionState = 78
	DamageN2            ActionState = 79
	DamageAir1          ActionState = 84
	DamageFlyHi         ActionState = 87
	DamageFlyN          ActionState = 88
	DamageFlyRoll       ActionState = 91
	GuardOn             ActionState = 178
	Guard               ActionState = 179
	GuardOff            ActionState = 180
	GuardSetOff         ActionState = 181
	GuardReflect        ActionState = 182
	DownBoundU          ActionState = 183
	DownWaitU           ActionState = 184
	DownDamageU         ActionState = 185
	DownStandU          ActionState = 186
	DownAttackU         ActionState = 187
	DownFowardU         ActionState = 188
	DownBackU           ActionState = 189
	DownSpotU           ActionState = 190
	DownBoundD          ActionState = 191
	DownWaitD           ActionState = 192
	DownDamageD         ActionState = 193
	DownStandD          ActionState = 194
	DownAttackD         ActionState = 195
	DownFowardD         ActionState = 196
	DownBackD           ActionState = 197
	DownSpotD           ActionState = 198
	Passive             ActionState = 199
	PassiveStandF       ActionState = 200
	PassiveStandB       ActionState = 201
	PassiveWall         ActionState = 202
	PassiveWallJump     ActionState = 203
	PassiveCeil         ActionState = 204
	ShieldBreakFly      ActionState = 205
	FuraFura            ActionState = 211
	Catch               ActionState = 212
	CatchDash           ActionState = 214
	EscapeF             ActionState = 233
	EscapeB             ActionState = 234
	Escape              ActionState = 235
	EscapeAir           ActionState = 236
	Pass                ActionState = 244
	FlyReflectWall      ActionState = 247
	FlyReflectCeil      ActionState = 248
	CliffCatch          ActionState = 252
	CliffWait           ActionState = 253
	BarrelWait          ActionState = 293
)

// Action state ranges. Bounds are inclusive on both ends.
const (
	dyingStart            ActionState = 0
	dyingEnd              ActionState = 10
	groundedControlStart  ActionState = 14
	groundedControlEnd    ActionState = 24
	controlledJumpStart   ActionState = 24
	controlledJumpEnd     ActionState = 34
	fallSpecialStart      ActionState = 35
	fallSpecialEnd        ActionState = 37
	squatStart            ActionState = 39
	squatEnd              ActionState = 41
	groundAttackStart     ActionState = 44
	groundAttackEnd       ActionState = 64
	aerialAttackStart     ActionState = 65
	aerialAttackEnd       ActionState = 69
	aerialLandLagStart    ActionState = 70
	aerialLandLagEnd      ActionState = 74
	damageStart           ActionState = 75
	damageEnd             ActionState = 91
	guardStart            ActionState = 178
	guardEnd              ActionState = 182
	downStart             ActionState = 183
	downEnd               ActionState = 198
	techStart             ActionState = 199
	techEnd               ActionState = 204
	guardBreakStart       ActionState = 205
	guardBreakEnd         ActionState = 211
	captureStart          ActionState = 223
	captureEnd            ActionState = 232
	dodgeStart            ActionState = 233
	dodgeEnd              ActionState = 236
	ledgeActionStart      ActionState = 252
	ledgeActionEnd        ActionState = 263
	commandGrabOneStart   ActionState = 266
	commandGrabOneEnd     ActionState = 304
	commandGrabTwoStart   ActionState = 327
	commandGrabTwoEnd     ActionState = 338
)

// IsDamaged reports whether the state is a hit reaction. Damage-fall and the
// grounded jab-reset reactions count even though they sit outside the main
// damage range.
func (s ActionState) IsDamaged() bool {
	return (s >= damageStart && s <= damageEnd) ||
		s == DamageFall || s == DownDamageU || s == DownDamageD
}

// IsGrabbed reports whether the state is a standard grab capture.
func (s ActionState) IsGrabbed() bool {
	return s >= captureStart && s <= captureEnd
}

// IsCmdGrabbed reports whether the state is a command-grab capture
// (Falcon dive, Koopa klaw, swallow, ...). The DK barrel ride is excluded.
func (s ActionState) IsCmdGrabbed() bool {
	if s == BarrelWait {
		return false
	}
	return (s >= commandGrabOneStart && s <= commandGrabOneEnd) ||
		(s >= commandGrabTwoStart && s <= commandGrabTwoEnd)
}

// IsTeching reports whether the state is any knockdown, tech, or wall/ceiling
// bounce reaction.
func (s ActionState) IsTeching() bool {
	return (s >= techStart && s <= techEnd) ||
		(s >= downStart && s <= downEnd) ||
		s == FlyReflectWall || s == FlyReflectCeil
}

// IsDowned reports whether the state is a grounded knockdown.
func (s ActionState) IsDowned() bool {
	return s >= downStart && s <= downEnd
}

// IsDying reports whether the state is a blast-zone death animation.
func (s ActionState) IsDying() bool {
	return s <= dyingEnd // dyingStart is 0
}

// IsDodging reports whether the state is a roll, spot dodge, or air dodge.
func (s ActionState) IsDodging() bool {
	return s >= dodgeStart && s <= dodgeEnd
}

// IsShielding reports whether the state is any shield state, shieldstun
// included.
func (s ActionState) IsShielding() bool {
	return s >= guardStart && s <= guardEnd
}

// IsShieldBroken reports whether the state is part of the shield-break
// sequence, dizzy included.
func (s ActionState) IsShieldBroken() bool {
	return s >= guardBreakStart && s <= guardBreakEnd
}

// IsLedgeAction reports whether the state is a ledge hang, climb, attack, or
// ledge jump.
func (s ActionState) IsLedgeAction() bool {
	return s >= ledgeActionStart && s <= ledgeActionEnd
}

// IsSpecialFall reports whether the state is helpless fall.
func (s ActionState) IsSpecialFall() bool {
	return s >= fallSpecialStart && s <= fallSpecialEnd
}

// IsAerialAttack reports whether the state is an aerial attack.
func (s ActionState) IsAerialAttack() bool {
	return s >= aerialAttackStart && s <= aerialAttackEnd
}

// IsAerialLanding reports whether the state is an aerial attack's landing lag.
func (s ActionState) IsAerialLanding() bool {
	return s >= aerialLandLagStart && s <= aerialLandLagEnd
}

// IsSquatting reports whether the state is any crouch state.
func (s ActionState) IsSquatting() bool {
	return s >= squatStart && s <= squatEnd
}

// IsUpBLag reports whether a special-landing state follows an up-B rather
// than an air dodge or jump, i.e. the previous state was neither special
// landing itself, an air dodge, nor a controlled jump.
func IsUpBLag(state, prev ActionState) bool {
	if state != LandFallSpecial {
		return false
	}
	if prev == LandFallSpecial || prev == EscapeAir {
		return false
	}
	if prev >= controlledJumpStart && prev <= controlledJumpEnd {
		return false
	}
	return true
}

// DeathDirection returns the blast zone a dying state belongs to, or ok=false
// for a non-dying state.
func DeathDirection(s ActionState) (Direction, bool) {
	switch {
	case s == DeadDown:
		return DirectionDown, true
	case s == DeadLeft:
		return DirectionLeft, true
	case s == DeadRight:
		return DirectionRight, true
	case s <= dyingEnd:
		return DirectionUp, true
	}
	return 0, false
}

// TechType is the classified flavor of a tech or missed-tech situation.
type TechType uint8

const (
	TechInPlace TechType = iota
	TechLeft
	TechRight
	MissedTech
	MissedTechRollLeft
	MissedTechRollRight
	JabReset
	GetUpAttack
	WallTech
	WallJumpTech
	CeilingTech
	MissedWallTech
	MissedCeilingTech
)

// String returns the tech type name.
func (t TechType) String() string {
	switch t {
	case TechInPlace:
		return "TECH_IN_PLACE"
	case TechLeft:
		return "TECH_LEFT"
	case TechRight:
		return "TECH_RIGHT"
	case MissedTech:
		return "MISSED_TECH"
	case MissedTechRollLeft:
		return "MISSED_TECH_ROLL_LEFT"
	case MissedTechRollRight:
		return "MISSED_TECH_ROLL_RIGHT"
	case JabReset:
		return "JAB_RESET"
	case GetUpAttack:
		return "GET_UP_ATTACK"
	case WallTech:
		return "WALL_TECH"
	case WallJumpTech:
		return "WALL_JUMP_TECH"
	case CeilingTech:
		return "CEILING_TECH"
	case MissedWallTech:
		return "MISSED_WALL_TECH"
	case MissedCeilingTech:
		return "MISSED_CEILING_TECH"
	}
	return fmt.Sprintf("TECH_TYPE_%d", uint8(t))
}

// ClassifyTech maps a teching action state and the player's facing direction
// to a tech flavor. Directional rolls resolve left/right from facing, so a
// forward roll while facing left is a left tech. ok is false when the state
// is not a tech situation.
func ClassifyTech(s ActionState, facing Direction) (TechType, bool) {
	switch s {
	case Passive, DownStandU, DownStandD:
		return TechInPlace, true
	case PassiveStandF:
		if facing == DirectionRight {
			return TechRight, true
		}
		return TechLeft, true
	case PassiveStandB:
		if facing == DirectionRight {
			return TechLeft, true
		}
		return TechRight, true
	case DownFowardU, DownFowardD:
		if facing == DirectionRight {
			return MissedTechRollRight, true
		}
		return MissedTechRollLeft, true
	case DownBackU, DownBackD:
		if facing == DirectionRight {
			return MissedTechRollLeft, true
		}
		return MissedTechRollRight, true
	case DownBoundU, DownBoundD, DownWaitU, DownWaitD, DownSpotU, DownSpotD:
		return MissedTech, true
	case DownDamageU, DownDamageD:
		return JabReset, true
	case DownAttackU, DownAttackD:
		return GetUpAttack, true
	case PassiveWall:
		return WallTech, true
	case PassiveWallJump:
		return WallJumpTech, true
	case PassiveCeil:
		return CeilingTech, true
	case FlyReflectWall:
		return MissedWallTech, true
	case FlyReflectCeil:
		return MissedCeilingTech, true
	}
	return 0, false
}
