package slp

import (
	"strconv"
	"time"

	"slp-lab/internal/melee"
)

// Metadata is the typed view of the trailing UBJSON document. Raw keeps the
// whole decoded document for anything not lifted out.
type Metadata struct {
	StartAt     string
	LastFrame   int32
	PlayedOn    string
	ConsoleNick string
	Players     map[uint8]*MetadataPlayer
	Raw         map[string]any
}

// MetadataPlayer carries one port's naming and character-usage block.
type MetadataPlayer struct {
	NetplayName string
	ConnectCode string

	// Characters maps in-game character ids to frames spent as them.
	Characters map[melee.InGameCharacter]int32
}

// StartTime parses the recorded start timestamp, zero when absent or
// malformed.
func (m *Metadata) StartTime() time.Time {
	if m == nil || m.StartAt == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, m.StartAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// metadataFromRaw lifts the well-known keys out of the decoded document,
// tolerating any of them being absent or oddly typed.
func metadataFromRaw(doc map[string]any) *Metadata {
	md := &Metadata{Raw: doc}
	md.StartAt, _ = doc["startAt"].(string)
	md.PlayedOn, _ = doc["playedOn"].(string)
	md.ConsoleNick, _ = doc["consoleNick"].(string)
	if v, ok := doc["lastFrame"].(int64); ok {
		md.LastFrame = int32(v)
	}
	players, ok := doc["players"].(map[string]any)
	if !ok {
		return md
	}
	md.Players = make(map[uint8]*MetadataPlayer, len(players))
	for key, pv := range players {
		port, err := strconv.Atoi(key)
		if err != nil || port < 0 || port > 3 {
			continue
		}
		pm, ok := pv.(map[string]any)
		if !ok {
			continue
		}
		mp := &MetadataPlayer{}
		if names, ok := pm["names"].(map[string]any); ok {
			mp.NetplayName, _ = names["netplay"].(string)
			mp.ConnectCode, _ = names["code"].(string)
		}
		if chars, ok := pm["characters"].(map[string]any); ok {
			mp.Characters = make(map[melee.InGameCharacter]int32, len(chars))
			for ck, cv := range chars {
				id, err := strconv.Atoi(ck)
				n, isInt := cv.(int64)
				if err != nil || !isInt {
					continue
				}
				mp.Characters[melee.InGameCharacter(id)] = int32(n)
			}
		}
		md.Players[uint8(port)] = mp
	}
	return md
}
