package melee

import "fmt"

// GroundID is the id of the last ground a character touched, from post-frame
// data. Ids are meaningful only per stage.
type GroundID uint16

// Ground names for the tournament-legal stages; other combinations fall back
// to a numeric placeholder.
var groundNames = map[Stage]map[GroundID]string{
	FountainOfDreams: {
		0: "MAIN_STAGE", 1: "LEFT_PLATFORM", 2: "RIGHT_PLATFORM",
		3: "TOP_PLATFORM",
	},
	PokemonStadium: {
		0: "MAIN_STAGE", 1: "LEFT_PLATFORM", 2: "RIGHT_PLATFORM",
	},
	YoshisStory: {
		0: "RANDALL", 1: "LEFT_PLATFORM", 2: "LEFT_SLANT", 3: "MAIN_STAGE",
		4: "TOP_PLATFORM", 5: "RIGHT_PLATFORM", 6: "RIGHT_SLANT",
	},
	DreamLand: {
		0: "MAIN_STAGE", 1: "LEFT_PLATFORM", 2: "RIGHT_PLATFORM",
		3: "TOP_PLATFORM",
	},
	Battlefield: {
		0: "MAIN_STAGE", 1: "LEFT_EDGE", 2: "RIGHT_EDGE",
		3: "LEFT_PLATFORM", 4: "RIGHT_PLATFORM", 5: "TOP_PLATFORM",
	},
	FinalDestination: {
		0: "MAIN_STAGE", 1: "LEFT_EDGE", 2: "RIGHT_EDGE",
	},
}

// GroundName names a ground id on a stage.
func GroundName(stage Stage, id GroundID) string {
	if tbl, ok := groundNames[stage]; ok {
		if n, ok := tbl[id]; ok {
			return n
		}
	}
	return fmt.Sprintf("GROUND_%d", uint16(id))
}
