package slp

import (
	"encoding/binary"
	"fmt"
	"math"

	"slp-lab/internal/melee"
)

// cursor reads big-endian fields at fixed offsets inside one event payload.
// Offsets are relative to the byte after the command byte. Required fields
// are covered by a single length check up front; version-gated fields go
// through has so older captures decode with zero values.
type cursor []byte

func (c cursor) has(off, n int) bool { return off+n <= len(c) }
func (c cursor) u8(off int) uint8    { return c[off] }
func (c cursor) i8(off int) int8     { return int8(c[off]) }
func (c cursor) u16(off int) uint16  { return binary.BigEndian.Uint16(c[off:]) }
func (c cursor) u32(off int) uint32  { return binary.BigEndian.Uint32(c[off:]) }
func (c cursor) i32(off int) int32   { return int32(binary.BigEndian.Uint32(c[off:])) }
func (c cursor) f32(off int) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(c[off:]))
}

// Minimum payload lengths for the oldest capture version each event
// appears in. Anything shorter is a corrupt stream, not an old one.
const (
	gameStartBaseLen  = 0x140
	preFrameBaseLen   = 0x3A
	postFrameBaseLen  = 0x21
	itemUpdateBaseLen = 0x25
	frameStartBaseLen = 0x8
	bookendBaseLen    = 0x4
	gameEndBaseLen    = 0x1
)

func shortPayload(code EventCode, n int) error {
	return fmt.Errorf("%w: %s payload is %d bytes", ErrTruncated, code, n)
}

func decodeGameStart(p []byte) (*GameStart, error) {
	c := cursor(p)
	if !c.has(0, gameStartBaseLen) {
		return nil, shortPayload(EventGameStart, len(p))
	}
	gs := &GameStart{
		Version:    Version{Major: c.u8(0x0), Minor: c.u8(0x1), Build: c.u8(0x2)},
		IsTeams:    c.u8(0xC) != 0,
		Stage:      melee.Stage(c.u16(0x12)),
		RandomSeed: c.u32(0x13C),
	}
	for i := 0; i < 4; i++ {
		base := 0x64 + 0x24*i
		if PlayerType(c.u8(base+1)) == PlayerEmpty {
			continue
		}
		sp := &StartPlayer{
			Port:      uint8(i),
			Character: melee.CSSCharacter(c.u8(base)),
			Type:      PlayerType(c.u8(base + 1)),
			Stocks:    c.u8(base + 2),
			Costume:   c.u8(base + 3),
			Team:      c.u8(base + 9),
		}
		if c.has(0x140+8*i, 4) {
			sp.DashbackFix = UCFToggle(c.u32(0x140 + 8*i))
		}
		if c.has(0x144+8*i, 4) {
			sp.ShieldDropFix = UCFToggle(c.u32(0x144 + 8*i))
		}
		if off := 0x160 + 0x10*i; c.has(off, 0x10) {
			sp.Nametag = decodeShiftJIS(p[off : off+0x10])
		}
		if off := 0x1A4 + 0x1F*i; c.has(off, 0x1F) {
			sp.DisplayName = decodeShiftJIS(p[off : off+0x1F])
		}
		if off := 0x220 + 0xA*i; c.has(off, 0xA) {
			sp.ConnectCode = decodeShiftJIS(p[off : off+0xA])
		}
		if off := 0x248 + 0x1D*i; c.has(off, 0x1D) {
			sp.SlippiUID = trimNul(string(p[off : off+0x1D]))
		}
		gs.Players[i] = sp
	}
	if c.has(0x1A0, 1) {
		gs.IsPAL = c.u8(0x1A0) != 0
	}
	if c.has(0x1A1, 1) {
		gs.IsFrozenPS = c.u8(0x1A1) != 0
	}
	if c.has(0x2BC, 1) {
		gs.Language = c.u8(0x2BC)
	}
	if c.has(0x2BD, 51) {
		gs.MatchID = trimNul(string(p[0x2BD : 0x2BD+51]))
	}
	if c.has(0x2F0, 4) {
		gs.GameNumber = c.u32(0x2F0)
	}
	if c.has(0x2F4, 4) {
		gs.TiebreakNumber = c.u32(0x2F4)
	}
	return gs, nil
}

func decodePreFrame(p []byte) (*PreFrame, error) {
	c := cursor(p)
	if !c.has(0, preFrameBaseLen) {
		return nil, shortPayload(EventPreFrame, len(p))
	}
	pf := &PreFrame{
		FrameIndex:      c.i32(0x0),
		Port:            c.u8(0x4),
		IsFollower:      c.u8(0x5) != 0,
		RandomSeed:      c.u32(0x6),
		State:           melee.ActionState(c.u16(0xA)),
		Position:        Position{X: c.f32(0xC), Y: c.f32(0x10)},
		Facing:          melee.DirectionFromFloat(c.f32(0x14)),
		Joystick:        StickPos{X: c.f32(0x18), Y: c.f32(0x1C)},
		CStick:          StickPos{X: c.f32(0x20), Y: c.f32(0x24)},
		Trigger:         c.f32(0x28),
		Buttons:         melee.LogicalButtons(c.u32(0x2C)),
		PhysicalButtons: melee.PhysicalButtons(c.u16(0x30)),
		PhysicalL:       c.f32(0x32),
		PhysicalR:       c.f32(0x36),
	}
	if c.has(0x3A, 1) {
		pf.RawAnalogX = c.u8(0x3A)
	}
	if c.has(0x3B, 4) {
		pf.Percent = c.f32(0x3B)
	}
	return pf, nil
}

func decodePostFrame(p []byte) (*PostFrame, error) {
	c := cursor(p)
	if !c.has(0, postFrameBaseLen) {
		return nil, shortPayload(EventPostFrame, len(p))
	}
	pf := &PostFrame{
		FrameIndex:       c.i32(0x0),
		Port:             c.u8(0x4),
		IsFollower:       c.u8(0x5) != 0,
		Character:        melee.InGameCharacter(c.u8(0x6)),
		State:            melee.ActionState(c.u16(0x7)),
		Position:         Position{X: c.f32(0x9), Y: c.f32(0xD)},
		Facing:           melee.DirectionFromFloat(c.f32(0x11)),
		Percent:          c.f32(0x15),
		ShieldHealth:     c.f32(0x19),
		LastAttackLanded: melee.Attack(c.u8(0x1D)),
		ComboCount:       c.u8(0x1E),
		LastHitBy:        c.u8(0x1F),
		Stocks:           c.u8(0x20),
	}
	if c.has(0x21, 4) {
		pf.StateAge = c.f32(0x21)
	}
	if c.has(0x25, 5) {
		pf.Flags = packStateFlags(p[0x25:0x2A])
	}
	if c.has(0x2A, 4) {
		pf.MiscAS = c.f32(0x2A)
	}
	if c.has(0x2E, 1) {
		pf.Airborne = c.u8(0x2E) != 0
	}
	if c.has(0x2F, 2) {
		pf.LastGroundID = melee.GroundID(c.u16(0x2F))
	}
	if c.has(0x31, 1) {
		pf.JumpsRemaining = c.u8(0x31)
	}
	if c.has(0x32, 1) {
		pf.LCancel = LCancelStatus(c.u8(0x32))
	}
	if c.has(0x33, 1) {
		pf.HurtboxState = c.u8(0x33)
	}
	if c.has(0x34, 16) {
		pf.SelfAirVel = Velocity{X: c.f32(0x34), Y: c.f32(0x38)}
		pf.KnockbackVel = Velocity{X: c.f32(0x3C), Y: c.f32(0x40)}
	}
	if c.has(0x44, 4) {
		pf.SelfGroundVelX = c.f32(0x44)
	}
	if c.has(0x48, 4) {
		pf.HitlagRemaining = c.f32(0x48)
	}
	if c.has(0x4C, 4) {
		pf.AnimationIndex = c.u32(0x4C)
	}
	return pf, nil
}

// packStateFlags folds the five raw flag bytes into one value, first byte
// in the low bits.
func packStateFlags(b []byte) StateFlags {
	var f StateFlags
	for i, v := range b {
		f |= StateFlags(v) << (8 * i)
	}
	return f
}

func decodeItemUpdate(p []byte) (*ItemUpdate, error) {
	c := cursor(p)
	if !c.has(0, itemUpdateBaseLen) {
		return nil, shortPayload(EventItemUpdate, len(p))
	}
	it := &ItemUpdate{
		FrameIndex:      c.i32(0x0),
		Type:            melee.ItemType(c.u16(0x4)),
		State:           c.u8(0x6),
		Facing:          melee.DirectionFromFloat(c.f32(0x7)),
		Velocity:        Velocity{X: c.f32(0xB), Y: c.f32(0xF)},
		Position:        Position{X: c.f32(0x13), Y: c.f32(0x17)},
		DamageTaken:     c.u16(0x1B),
		ExpirationTimer: c.f32(0x1D),
		SpawnID:         c.u32(0x21),
		Owner:           -1,
	}
	if c.has(0x25, 4) {
		it.MissileType = c.u8(0x25)
		it.TurnipFace = c.u8(0x26)
		it.IsShotLaunched = c.u8(0x27)
		it.ChargePower = c.u8(0x28)
	}
	if c.has(0x29, 1) {
		it.Owner = c.i8(0x29)
	}
	if c.has(0x2A, 2) {
		it.InstanceID = c.u16(0x2A)
	}
	return it, nil
}

func decodeFrameStart(p []byte) (*FrameStart, error) {
	c := cursor(p)
	if !c.has(0, frameStartBaseLen) {
		return nil, shortPayload(EventFrameStart, len(p))
	}
	fs := &FrameStart{
		FrameIndex: c.i32(0x0),
		RandomSeed: c.u32(0x4),
	}
	if c.has(0x8, 4) {
		fs.SceneFrameCounter = c.u32(0x8)
	}
	return fs, nil
}

func decodeFrameBookend(p []byte) (*FrameBookend, error) {
	c := cursor(p)
	if !c.has(0, bookendBaseLen) {
		return nil, shortPayload(EventFrameBookend, len(p))
	}
	fb := &FrameBookend{
		FrameIndex:           c.i32(0x0),
		LatestFinalizedFrame: -1,
	}
	if c.has(0x4, 4) {
		fb.LatestFinalizedFrame = c.i32(0x4)
	}
	return fb, nil
}

func decodeGameEnd(p []byte) (*GameEnd, error) {
	c := cursor(p)
	if !c.has(0, gameEndBaseLen) {
		return nil, shortPayload(EventGameEnd, len(p))
	}
	ge := &GameEnd{
		Method:        EndMethod(c.u8(0x0)),
		LRASInitiator: -1,
		Placements:    [4]int8{-1, -1, -1, -1},
	}
	if c.has(0x1, 1) {
		ge.LRASInitiator = c.i8(0x1)
	}
	if c.has(0x2, 4) {
		for i := range ge.Placements {
			ge.Placements[i] = c.i8(0x2 + i)
		}
	}
	return ge, nil
}
