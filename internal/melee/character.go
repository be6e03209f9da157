package melee

import "fmt"

// CSSCharacter is the character id as picked on the character select screen.
// Game-start records use this numbering.
type CSSCharacter uint8

const (
	CSSCaptainFalcon CSSCharacter = iota
	CSSDonkeyKong
	CSSFox
	CSSGameAndWatch
	CSSKirby
	CSSBowser
	CSSLink
	CSSLuigi
	CSSMario
	CSSMarth
	CSSMewtwo
	CSSNess
	CSSPeach
	CSSPikachu
	CSSIceClimbers
	CSSJigglypuff
	CSSSamus
	CSSYoshi
	CSSZelda
	CSSSheik
	CSSFalco
	CSSYoungLink
	CSSDrMario
	CSSRoy
	CSSPichu
	CSSGanondorf
)

// InGameCharacter is the character id as it appears in frame data. Zelda and
// Sheik are distinct here, and the Ice Climbers split into Popo and Nana.
type InGameCharacter uint8

const (
	Mario InGameCharacter = iota
	Fox
	CaptainFalcon
	DonkeyKong
	Kirby
	Bowser
	Link
	Sheik
	Ness
	Peach
	Popo
	Nana
	Pikachu
	Samus
	Yoshi
	Jigglypuff
	Mewtwo
	Luigi
	Marth
	Zelda
	YoungLink
	DrMario
	Falco
	Pichu
	GameAndWatch
	Ganondorf
	Roy
	MasterHand
	CrazyHand
	WireFrameMale
	WireFrameFemale
	GigaBowser
	Sandbag
)

var cssCharacterNames = map[CSSCharacter]string{
	CSSCaptainFalcon: "CAPTAIN_FALCON", CSSDonkeyKong: "DONKEY_KONG",
	CSSFox: "FOX", CSSGameAndWatch: "GAME_AND_WATCH", CSSKirby: "KIRBY",
	CSSBowser: "BOWSER", CSSLink: "LINK", CSSLuigi: "LUIGI",
	CSSMario: "MARIO", CSSMarth: "MARTH", CSSMewtwo: "MEWTWO",
	CSSNess: "NESS", CSSPeach: "PEACH", CSSPikachu: "PIKACHU",
	CSSIceClimbers: "ICE_CLIMBERS", CSSJigglypuff: "JIGGLYPUFF",
	CSSSamus: "SAMUS", CSSYoshi: "YOSHI", CSSZelda: "ZELDA",
	CSSSheik: "SHEIK", CSSFalco: "FALCO", CSSYoungLink: "YOUNG_LINK",
	CSSDrMario: "DR_MARIO", CSSRoy: "ROY", CSSPichu: "PICHU",
	CSSGanondorf: "GANONDORF",
}

var inGameCharacterNames = map[InGameCharacter]string{
	Mario: "MARIO", Fox: "FOX", CaptainFalcon: "CAPTAIN_FALCON",
	DonkeyKong: "DONKEY_KONG", Kirby: "KIRBY", Bowser: "BOWSER",
	Link: "LINK", Sheik: "SHEIK", Ness: "NESS", Peach: "PEACH",
	Popo: "POPO", Nana: "NANA", Pikachu: "PIKACHU", Samus: "SAMUS",
	Yoshi: "YOSHI", Jigglypuff: "JIGGLYPUFF", Mewtwo: "MEWTWO",
	Luigi: "LUIGI", Marth: "MARTH", Zelda: "ZELDA",
	YoungLink: "YOUNG_LINK", DrMario: "DR_MARIO", Falco: "FALCO",
	Pichu: "PICHU", GameAndWatch: "GAME_AND_WATCH", Ganondorf: "GANONDORF",
	Roy: "ROY", MasterHand: "MASTER_HAND", CrazyHand: "CRAZY_HAND",
	WireFrameMale: "WIRE_FRAME_MALE", WireFrameFemale: "WIRE_FRAME_FEMALE",
	GigaBowser: "GIGA_BOWSER", Sandbag: "SANDBAG",
}

// Name returns the select-screen character name.
func (c CSSCharacter) Name() string {
	if n, ok := cssCharacterNames[c]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_CHARACTER_%d", uint8(c))
}

// Name returns the in-game character name.
func (c InGameCharacter) Name() string {
	if n, ok := inGameCharacterNames[c]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_CHARACTER_%d", uint8(c))
}
