package melee

import "fmt"

// ItemType is the spawned-item id from item update records. The full id
// space also covers character projectiles and stage hazards; those fall back
// to a hex placeholder name.
type ItemType uint16

const (
	Capsule        ItemType = 0
	Box            ItemType = 1
	Barrel         ItemType = 2
	Egg            ItemType = 3
	PartyBall      ItemType = 4
	BarrelCannon   ItemType = 5
	BobOmb         ItemType = 6
	MrSaturn       ItemType = 7
	HeartContainer ItemType = 8
	MaximTomato    ItemType = 9
	Starman        ItemType = 10
	HomeRunBat     ItemType = 11
	BeamSword      ItemType = 12
	Parasol        ItemType = 13
	GreenShell     ItemType = 14
	RedShell       ItemType = 15
	RayGun         ItemType = 16
	Freezie        ItemType = 17
	Food           ItemType = 18
	ProximityMine  ItemType = 19
	Flipper        ItemType = 20
	SuperScope     ItemType = 21
	StarRod        ItemType = 22
	LipStick       ItemType = 23
	Fan            ItemType = 24
	FireFlower     ItemType = 25
	SuperMushroom  ItemType = 26
	PoisonMushroom ItemType = 27
	Hammer         ItemType = 28
	WarpStar       ItemType = 29
	ScrewAttack    ItemType = 30
	BunnyHood      ItemType = 31
	MetalBox       ItemType = 32
	CloakingDevice ItemType = 33
	PokeBall       ItemType = 34
)

var itemNames = map[ItemType]string{
	Capsule: "CAPSULE", Box: "BOX", Barrel: "BARREL", Egg: "EGG",
	PartyBall: "PARTY_BALL", BarrelCannon: "BARREL_CANNON",
	BobOmb: "BOB_OMB", MrSaturn: "MR_SATURN",
	HeartContainer: "HEART_CONTAINER", MaximTomato: "MAXIM_TOMATO",
	Starman: "STARMAN", HomeRunBat: "HOME_RUN_BAT", BeamSword: "BEAM_SWORD",
	Parasol: "PARASOL", GreenShell: "GREEN_SHELL", RedShell: "RED_SHELL",
	RayGun: "RAY_GUN", Freezie: "FREEZIE", Food: "FOOD",
	ProximityMine: "PROXIMITY_MINE", Flipper: "FLIPPER",
	SuperScope: "SUPER_SCOPE", StarRod: "STAR_ROD", LipStick: "LIP_STICK",
	Fan: "FAN", FireFlower: "FIRE_FLOWER", SuperMushroom: "SUPER_MUSHROOM",
	PoisonMushroom: "POISON_MUSHROOM", Hammer: "HAMMER",
	WarpStar: "WARP_STAR", ScrewAttack: "SCREW_ATTACK",
	BunnyHood: "BUNNY_HOOD", MetalBox: "METAL_BOX",
	CloakingDevice: "CLOAKING_DEVICE", PokeBall: "POKE_BALL",
}

// Name returns the item name.
func (i ItemType) Name() string {
	if n, ok := itemNames[i]; ok {
		return n
	}
	return fmt.Sprintf("ITEM_0x%X", uint16(i))
}
