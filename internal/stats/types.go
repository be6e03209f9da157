package stats

import (
	"math"

	"slp-lab/internal/melee"
	"slp-lab/internal/slp"
)

// ComboChecks selects which opponent conditions keep a combo alive.
// Disabling a check makes the detector ignore that condition, which
// matters for old captures that lack some of the bitflag fields. The
// zero value disables every check; use DefaultComboChecks for normal
// analysis.
type ComboChecks struct {
	Hitstun     bool
	Hitlag      bool
	Tech        bool
	Downed      bool
	Offstage    bool
	Dodge       bool
	Shield      bool
	ShieldBreak bool
	LedgeAction bool
}

// DefaultComboChecks enables every opponent-state check.
func DefaultComboChecks() ComboChecks {
	return ComboChecks{
		Hitstun:     true,
		Hitlag:      true,
		Tech:        true,
		Downed:      true,
		Offstage:    true,
		Dodge:       true,
		Shield:      true,
		ShieldBreak: true,
		LedgeAction: true,
	}
}

// Options configure a full-game analysis pass.
type Options struct {
	ComboChecks ComboChecks
}

// DefaultOptions returns the options used when Analyze receives nil.
func DefaultOptions() *Options {
	return &Options{ComboChecks: DefaultComboChecks()}
}

// MoveLanded records one attack that connected during a combo. A
// multi-hit move stays open while the attacker's animation continues,
// so HitCount can exceed one.
type MoveLanded struct {
	FrameIndex       int32        `json:"frameIndex"`
	MoveID           melee.Attack `json:"moveId"`
	MoveName         string       `json:"moveName"`
	HitCount         int          `json:"hitCount"`
	Damage           float64      `json:"damage"`
	OpponentPosition slp.Position `json:"opponentPosition"`
}

// ComboData is one combo string: an ordered list of landed moves plus
// the percent and stock context at both ends. Frame indexes are engine
// frame numbers, so a combo opening on the first captured frame starts
// at -123.
type ComboData struct {
	StartFrame     int32         `json:"startFrame"`
	EndFrame       int32         `json:"endFrame"`
	StartPercent   float32       `json:"startPercent"`
	CurrentPercent float32       `json:"currentPercent"`
	EndPercent     float32       `json:"endPercent"`
	PlayerStocks   uint8         `json:"playerStocks"`
	OpponentStocks uint8         `json:"opponentStocks"`
	DidKill        bool          `json:"didKill"`
	DidEndGame     bool          `json:"didEndGame"`
	DeathDirection string        `json:"deathDirection,omitempty"`
	Moves          []*MoveLanded `json:"moves"`
}

// TotalDamage is the percent dealt across the whole combo.
func (c *ComboData) TotalDamage() float32 {
	return c.EndPercent - c.StartPercent
}

// MinimumLength reports whether the combo landed at least n moves.
func (c *ComboData) MinimumLength(n int) bool {
	return len(c.Moves) >= n
}

// MinimumDamage reports whether the combo dealt at least d percent.
func (c *ComboData) MinimumDamage(d float32) bool {
	return c.TotalDamage() >= d
}

// WavedashData is one wavedash or waveland. Angle is in degrees below
// horizontal for LEFT, RIGHT and DOWN inputs; an upward stick keeps its
// raw angle and no direction. TriggerFrame counts frames from the last
// jump-squat frame to the trigger press, AirdodgeFrames from the press
// to landing, both capped at 5 by the detection windows.
type WavedashData struct {
	FrameIndex     int32   `json:"frameIndex"`
	Stocks         uint8   `json:"stocks"`
	Angle          float64 `json:"angle"`
	Direction      string  `json:"direction,omitempty"`
	TriggerFrame   int     `json:"triggerFrame"`
	AirdodgeFrames int     `json:"airdodgeFrames"`
	Waveland       bool    `json:"waveland"`
}

// TotalStartup is the frame count from the last jump-squat frame to the
// landing frame.
func (w *WavedashData) TotalStartup() int {
	return w.TriggerFrame + w.AirdodgeFrames
}

// DashData is one dash: entry frame, x extent, and whether it belongs
// to a dashdance.
type DashData struct {
	FrameIndex  int32   `json:"frameIndex"`
	Stocks      uint8   `json:"stocks"`
	StartPos    float32 `json:"startPos"`
	EndPos      float32 `json:"endPos"`
	Direction   string  `json:"direction,omitempty"`
	IsDashdance bool    `json:"isDashdance"`
}

// Distance is the absolute x distance covered by the dash.
func (d *DashData) Distance() float64 {
	return math.Abs(float64(d.EndPos) - float64(d.StartPos))
}

// TechData covers one continuous teching situation, from the first
// teching frame to the first non-teching frame. TechType tracks the
// most recent classification, so a missed tech rolled into a getup
// attack reports the getup attack with IsMissedTech still set.
type TechData struct {
	FrameIndex      int32          `json:"frameIndex"`
	Stocks          uint8          `json:"stocks"`
	TechType        string         `json:"techType,omitempty"`
	WasPunished     bool           `json:"wasPunished"`
	Position        slp.Position   `json:"position"`
	GroundID        melee.GroundID `json:"groundId"`
	Ground          string         `json:"ground,omitempty"`
	IsOnPlatform    bool           `json:"isOnPlatform"`
	IsMissedTech    bool           `json:"isMissedTech"`
	TowardsCenter   *bool          `json:"towardsCenter"`
	TowardsOpponent *bool          `json:"towardsOpponent"`
	JabReset        *bool          `json:"jabReset"`
	LastHitBy       melee.Attack   `json:"lastHitBy"`
	LastHitByName   string         `json:"lastHitByName,omitempty"`
}

// TakeHitData covers one hitlag window caused by getting hit: the
// stick history during hitlag, the SDI inputs filtered from it, and the
// DI outcome computed at hitlag exit. Knockback fields are nil for
// captures older than 3.5.0.
type TakeHitData struct {
	FrameIndex      int32                  `json:"frameIndex"`
	LastHitBy       melee.Attack           `json:"lastHitBy"`
	LastHitByName   string                 `json:"lastHitByName,omitempty"`
	StateBeforeHit  melee.ActionState      `json:"stateBeforeHit"`
	Percent         float32                `json:"percent"`
	Grounded        bool                   `json:"grounded"`
	CrouchCancel    bool                   `json:"crouchCancel"`
	HitlagFrames    int                    `json:"hitlagFrames"`
	StickRegions    []melee.JoystickRegion `json:"stickRegionsDuringHitlag"`
	SDIInputs       []melee.JoystickRegion `json:"sdiInputs"`
	ASDI            melee.JoystickRegion   `json:"asdi"`
	DIStickPos      slp.StickPos           `json:"diStickPos"`
	KBVelocity      *slp.Velocity          `json:"kbVelocity"`
	KBAngle         *float64               `json:"kbAngle"`
	FinalKBVelocity *slp.Velocity          `json:"finalKbVelocity"`
	FinalKBAngle    *float64               `json:"finalKbAngle"`
	DIEfficacy      *float64               `json:"diEfficacy"`
	StartPos        slp.Position           `json:"startPos"`
	EndPos          slp.Position           `json:"endPos"`
}

// Distance is the straight-line distance between the hit position and
// the hitlag exit position.
func (t *TakeHitData) Distance() float64 {
	dx := float64(t.EndPos.X) - float64(t.StartPos.X)
	dy := float64(t.EndPos.Y) - float64(t.StartPos.Y)
	return math.Hypot(dx, dy)
}

// LCancelData is one aerial landing with a non-default L-cancel status.
// TriggerInputFrame is the press timing relative to landing: positive
// values are frames early, negative values are frames late, nil means
// no intentional press was found.
type LCancelData struct {
	FrameIndex        int32             `json:"frameIndex"`
	Stocks            uint8             `json:"stocks"`
	Success           bool              `json:"success"`
	Move              melee.ActionState `json:"move"`
	MoveName          string            `json:"moveName,omitempty"`
	GroundID          melee.GroundID    `json:"groundId"`
	Ground            string            `json:"ground,omitempty"`
	TriggerInputFrame *int              `json:"triggerInputFrame"`
	DuringHitlag      bool              `json:"duringHitlag"`
	FastFall          bool              `json:"fastFall"`
}

// ShieldDropData is one shield drop: a platform drop entered directly
// from a shielding state. OOShieldstunFrame counts back to the last
// shield-release frame when the drop came out of shieldstun, nil
// otherwise.
type ShieldDropData struct {
	FrameIndex        int32          `json:"frameIndex"`
	GroundID          melee.GroundID `json:"groundId"`
	Ground            string         `json:"ground,omitempty"`
	OOShieldstunFrame *int           `json:"ooShieldstunFrame"`
}
