package melee

import "fmt"

// Stage is the stage id from the game-start record.
type Stage uint16

const (
	FountainOfDreams   Stage = 2
	PokemonStadium     Stage = 3
	PrincessPeachCastle Stage = 4
	KongoJungle        Stage = 5
	Brinstar           Stage = 6
	Corneria           Stage = 7
	YoshisStory        Stage = 8
	Onett              Stage = 9
	MuteCity           Stage = 10
	RainbowCruise      Stage = 11
	JungleJapes        Stage = 12
	GreatBay           Stage = 13
	HyruleTemple       Stage = 14
	BrinstarDepths     Stage = 15
	YoshisIsland       Stage = 16
	GreenGreens        Stage = 17
	Fourside           Stage = 18
	MushroomKingdomI   Stage = 19
	MushroomKingdomII  Stage = 20
	Venom              Stage = 22
	PokeFloats         Stage = 23
	BigBlue            Stage = 24
	IcicleMountain     Stage = 25
	FlatZone           Stage = 27
	DreamLand          Stage = 28
	YoshisIslandN64    Stage = 29
	KongoJungleN64     Stage = 30
	Battlefield        Stage = 31
	FinalDestination   Stage = 32
)

var stageNames = map[Stage]string{
	FountainOfDreams: "FOUNTAIN_OF_DREAMS", PokemonStadium: "POKEMON_STADIUM",
	PrincessPeachCastle: "PRINCESS_PEACH_CASTLE", KongoJungle: "KONGO_JUNGLE",
	Brinstar: "BRINSTAR", Corneria: "CORNERIA", YoshisStory: "YOSHIS_STORY",
	Onett: "ONETT", MuteCity: "MUTE_CITY", RainbowCruise: "RAINBOW_CRUISE",
	JungleJapes: "JUNGLE_JAPES", GreatBay: "GREAT_BAY",
	HyruleTemple: "HYRULE_TEMPLE", BrinstarDepths: "BRINSTAR_DEPTHS",
	YoshisIsland: "YOSHIS_ISLAND", GreenGreens: "GREEN_GREENS",
	Fourside: "FOURSIDE", MushroomKingdomI: "MUSHROOM_KINGDOM_I",
	MushroomKingdomII: "MUSHROOM_KINGDOM_II", Venom: "VENOM",
	PokeFloats: "POKE_FLOATS", BigBlue: "BIG_BLUE",
	IcicleMountain: "ICICLE_MOUNTAIN", FlatZone: "FLAT_ZONE",
	DreamLand: "DREAM_LAND_N64", YoshisIslandN64: "YOSHIS_ISLAND_N64",
	KongoJungleN64: "KONGO_JUNGLE_N64", Battlefield: "BATTLEFIELD",
	FinalDestination: "FINAL_DESTINATION",
}

// Name returns the stage name.
func (s Stage) Name() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_STAGE_%d", uint16(s))
}

// StageGeometry holds the per-stage measurements the positional heuristics
// use. LedgeX is the horizontal distance to the ledge, TopPlatformY the
// height above which an airborne opponent counts as juggled. Stages without
// an entry fail both heuristics closed.
type StageGeometry struct {
	LedgeX       float32
	TopPlatformY float32
}

// Tournament-legal stages only. TopPlatformY is a best-effort juggle line;
// flat stages use a comparable height even with no platform there.
var stageGeometry = map[Stage]StageGeometry{
	FountainOfDreams: {LedgeX: 63.35, TopPlatformY: 42.75},
	PokemonStadium:   {LedgeX: 87.75, TopPlatformY: 25.0},
	YoshisStory:      {LedgeX: 56.0, TopPlatformY: 42.0},
	DreamLand:        {LedgeX: 73.0, TopPlatformY: 51.43},
	Battlefield:      {LedgeX: 66.75, TopPlatformY: 54.4},
	FinalDestination: {LedgeX: 88.5, TopPlatformY: 35.0},
}

// Geometry returns the stage measurements, ok=false for stages without data.
func (s Stage) Geometry() (StageGeometry, bool) {
	g, ok := stageGeometry[s]
	return g, ok
}

// IsOffstage reports whether a position is beyond the ledge or below the
// stage surface. Stages without geometry data never report offstage.
func (s Stage) IsOffstage(x, y float32) bool {
	if y < -5 {
		return true
	}
	g, ok := stageGeometry[s]
	if !ok {
		return false
	}
	if x < 0 {
		x = -x
	}
	return x > g.LedgeX
}

// IsJuggleHeight reports whether an airborne position sits above the stage's
// top-platform line. This is a heuristic: off-screen captures above the
// camera bound can report positions that satisfy it without a real juggle.
func (s Stage) IsJuggleHeight(y float32, airborne bool) bool {
	if !airborne {
		return false
	}
	g, ok := stageGeometry[s]
	if !ok {
		return false
	}
	return y >= g.TopPlatformY
}
