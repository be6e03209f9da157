package slp

import (
	"fmt"

	"slp-lab/internal/melee"
)

// EventCode identifies one low-level record type in the event stream.
type EventCode uint8

const (
	EventMessageSplitter EventCode = 0x10
	EventPayloads        EventCode = 0x35
	EventGameStart       EventCode = 0x36
	EventPreFrame        EventCode = 0x37
	EventPostFrame       EventCode = 0x38
	EventGameEnd         EventCode = 0x39
	EventFrameStart      EventCode = 0x3A
	EventItemUpdate      EventCode = 0x3B
	EventFrameBookend    EventCode = 0x3C
	EventGeckoList       EventCode = 0x3D
)

// String returns the event name.
func (c EventCode) String() string {
	switch c {
	case EventMessageSplitter:
		return "MESSAGE_SPLITTER"
	case EventPayloads:
		return "EVENT_PAYLOADS"
	case EventGameStart:
		return "GAME_START"
	case EventPreFrame:
		return "PRE_FRAME"
	case EventPostFrame:
		return "POST_FRAME"
	case EventGameEnd:
		return "GAME_END"
	case EventFrameStart:
		return "FRAME_START"
	case EventItemUpdate:
		return "ITEM_UPDATE"
	case EventFrameBookend:
		return "FRAME_BOOKEND"
	case EventGeckoList:
		return "GECKO_LIST"
	}
	return fmt.Sprintf("EVENT_0x%02X", uint8(c))
}

// Version is the capture-format version from the game-start record. Older
// captures lack newer fields; feature gates compare against it.
type Version struct {
	Major uint8
	Minor uint8
	Build uint8
}

// AtLeast reports whether the version is at or above major.minor.build.
func (v Version) AtLeast(major, minor, build uint8) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Build >= build
}

// String formats the version as major.minor.build.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// Position is a stage-space coordinate pair.
type Position struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Velocity is a per-frame speed pair.
type Velocity struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// StickPos is an analog stick deflection, both axes in [-1, 1].
type StickPos struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// StateFlags packs the five post-frame bit fields into one value, low byte
// first. Unknown bits stay set so round-trips lose nothing.
type StateFlags uint64

const (
	FlagAbsorbBubble   StateFlags = 1 << 1
	FlagReflectNoSteal StateFlags = 1 << 3
	FlagReflectBubble  StateFlags = 1 << 4
	FlagIntangible     StateFlags = 1 << 10
	FlagFastFall       StateFlags = 1 << 11
	FlagDefenderHitlag StateFlags = 1 << 12
	FlagHitlag         StateFlags = 1 << 13
	FlagHoldingBody    StateFlags = 1 << 18
	FlagShielding      StateFlags = 1 << 23
	FlagHitstun        StateFlags = 1 << 25
	FlagShieldTouch    StateFlags = 1 << 26
	FlagPowershield    StateFlags = 1 << 29
	FlagFollower       StateFlags = 1 << 35
	FlagSleep          StateFlags = 1 << 36
	FlagDead           StateFlags = 1 << 38
	FlagOffscreen      StateFlags = 1 << 39
)

// Has reports whether any bit of the mask is set.
func (f StateFlags) Has(mask StateFlags) bool {
	return f&mask != 0
}

// LCancelStatus is the post-frame aerial-landing cancel result.
type LCancelStatus uint8

const (
	LCancelNone    LCancelStatus = 0
	LCancelSuccess LCancelStatus = 1
	LCancelFailure LCancelStatus = 2
)

// PlayerType classifies a port in the game-start record.
type PlayerType uint8

const (
	PlayerHuman PlayerType = 0
	PlayerCPU   PlayerType = 1
	PlayerDemo  PlayerType = 2
	PlayerEmpty PlayerType = 3
)

// UCFToggle is one Universal Controller Fix setting.
type UCFToggle uint32

const (
	UCFOff     UCFToggle = 0
	UCFOn      UCFToggle = 1
	UCFArduino UCFToggle = 2
)

// EndMethod is how the game concluded.
type EndMethod uint8

const (
	EndUnresolved EndMethod = 0
	EndTime       EndMethod = 1
	EndGame       EndMethod = 2
	EndResolved   EndMethod = 3
	EndNoContest  EndMethod = 7
)

// GameStart is the decoded game-start record.
type GameStart struct {
	Version    Version
	IsTeams    bool
	Stage      melee.Stage
	IsPAL      bool
	IsFrozenPS bool
	RandomSeed uint32
	Players    [4]*StartPlayer

	// Online session identity, zero-valued before 3.14.0.
	MatchID        string
	GameNumber     uint32
	TiebreakNumber uint32
	Language       uint8
}

// StartPlayer is one occupied port's game-start configuration.
type StartPlayer struct {
	Port          uint8
	Character     melee.CSSCharacter
	Type          PlayerType
	Stocks        uint8
	Costume       uint8
	Team          uint8
	DashbackFix   UCFToggle
	ShieldDropFix UCFToggle
	Nametag       string
	DisplayName   string
	ConnectCode   string
	SlippiUID     string
}

// PreFrame is the decoded pre-frame update: controller state sampled before
// the engine advances.
type PreFrame struct {
	FrameIndex      int32
	Port            uint8
	IsFollower      bool
	RandomSeed      uint32
	State           melee.ActionState
	Position        Position
	Facing          melee.Direction
	Joystick        StickPos
	CStick          StickPos
	Trigger         float32
	Buttons         melee.LogicalButtons
	PhysicalButtons melee.PhysicalButtons
	PhysicalL       float32
	PhysicalR       float32
	RawAnalogX      uint8
	Percent         float32
}

// PostFrame is the decoded post-frame update: the engine state after the
// frame resolved.
type PostFrame struct {
	FrameIndex       int32
	Port             uint8
	IsFollower       bool
	Character        melee.InGameCharacter
	State            melee.ActionState
	Position         Position
	Facing           melee.Direction
	Percent          float32
	ShieldHealth     float32
	LastAttackLanded melee.Attack
	ComboCount       uint8
	LastHitBy        uint8
	Stocks           uint8
	StateAge         float32
	Flags            StateFlags
	MiscAS           float32
	Airborne         bool
	LastGroundID     melee.GroundID
	JumpsRemaining   uint8
	LCancel          LCancelStatus
	HurtboxState     uint8
	SelfAirVel       Velocity
	KnockbackVel     Velocity
	SelfGroundVelX   float32
	HitlagRemaining  float32
	AnimationIndex   uint32
}

// ItemUpdate is one spawned item's per-frame record.
type ItemUpdate struct {
	FrameIndex      int32
	Type            melee.ItemType
	State           uint8
	Facing          melee.Direction
	Velocity        Velocity
	Position        Position
	DamageTaken     uint16
	ExpirationTimer float32
	SpawnID         uint32
	MissileType     uint8
	TurnipFace      uint8
	IsShotLaunched  uint8
	ChargePower     uint8
	Owner           int8
	InstanceID      uint16
}

// FrameStart is the rollback-era frame bookend opener.
type FrameStart struct {
	FrameIndex        int32
	RandomSeed        uint32
	SceneFrameCounter uint32
}

// FrameBookend is the rollback-era frame bookend closer.
type FrameBookend struct {
	FrameIndex           int32
	LatestFinalizedFrame int32
}

// GameEnd is the decoded game-end record.
type GameEnd struct {
	Method        EndMethod
	LRASInitiator int8
	Placements    [4]int8
}
