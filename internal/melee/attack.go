package melee

import "fmt"

// Attack is the id of the most recent attack that connected, as reported in
// post-frame data.
type Attack uint8

const (
	AttackNone Attack = 0
	NonStaff   Attack = 1
	Jab1       Attack = 2
	Jab2       Attack = 3
	Jab3       Attack = 4
	RapidJabs  Attack = 5
	DashAttack Attack = 6
	FTilt      Attack = 7
	UTilt      Attack = 8
	DTilt      Attack = 9
	FSmash     Attack = 10
	USmash     Attack = 11
	DSmash     Attack = 12
	Nair       Attack = 13
	Fair       Attack = 14
	Bair       Attack = 15
	Uair       Attack = 16
	Dair       Attack = 17
	NeutralB   Attack = 18
	SideB      Attack = 19
	UpB        Attack = 20
	DownB      Attack = 21

	GetUpAttackBack  Attack = 50
	GetUpAttackFront Attack = 51
	Pummel           Attack = 52
	FThrow           Attack = 53
	BThrow           Attack = 54
	UThrow           Attack = 55
	DThrow           Attack = 56
	EdgeAttackSlow   Attack = 61
	EdgeAttackQuick  Attack = 62
)

var attackNames = map[Attack]string{
	AttackNone: "NONE", NonStaff: "NON_STAFF", Jab1: "JAB_1", Jab2: "JAB_2",
	Jab3: "JAB_3", RapidJabs: "RAPID_JABS", DashAttack: "DASH_ATTACK",
	FTilt: "FTILT", UTilt: "UTILT", DTilt: "DTILT", FSmash: "FSMASH",
	USmash: "USMASH", DSmash: "DSMASH", Nair: "NAIR", Fair: "FAIR",
	Bair: "BAIR", Uair: "UAIR", Dair: "DAIR", NeutralB: "NEUTRAL_B",
	SideB: "SIDE_B", UpB: "UP_B", DownB: "DOWN_B",
	GetUpAttackBack: "GET_UP_ATTACK_BACK",
	GetUpAttackFront: "GET_UP_ATTACK_FRONT", Pummel: "PUMMEL",
	FThrow: "FTHROW", BThrow: "BTHROW", UThrow: "UTHROW", DThrow: "DTHROW",
	EdgeAttackSlow: "EDGE_ATTACK_SLOW", EdgeAttackQuick: "EDGE_ATTACK_QUICK",
}

// Name returns the attack name.
func (a Attack) Name() string {
	if n, ok := attackNames[a]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_ATTACK_%d", uint8(a))
}
