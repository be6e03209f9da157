// Package stats derives typed gameplay events from a decoded capture:
// combos, wavedashes, dashes, techs, hits taken, L-cancels and shield
// drops, plus per-player aggregates. Every classifier is a read-only
// forward pass over the frame views built by the slp package, so a
// Game can be analyzed repeatedly and concurrently.
package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"slp-lab/internal/slp"
)

// ErrPlayerNotFound reports a connect code that matches no occupied
// port.
var ErrPlayerNotFound = errors.New("stats: player not found")

// GameHeader carries the game-level context every consumer wants next
// to the event lists.
type GameHeader struct {
	Source         string    `json:"source,omitempty"`
	StartedAt      time.Time `json:"startedAt"`
	SlippiVersion  string    `json:"slippiVersion"`
	MatchID        string    `json:"matchId,omitempty"`
	MatchType      string    `json:"matchType,omitempty"`
	GameNumber     uint32    `json:"gameNumber,omitempty"`
	TiebreakNumber uint32    `json:"tiebreakNumber,omitempty"`
	Stage          string    `json:"stage"`
	IsTeams        bool      `json:"isTeams"`
	IsPAL          bool      `json:"isPal"`
	DurationFrames int       `json:"durationFrames"`
	PlayedOn       string    `json:"playedOn,omitempty"`
	ConsoleNick    string    `json:"consoleNick,omitempty"`
}

// PlayerStats bundles one player's identity, their event lists and the
// aggregates over them. OpponentPort is -1 when no opponent could be
// paired; the opponent-dependent lists stay nil in that case.
type PlayerStats struct {
	Port              uint8             `json:"port"`
	ConnectCode       string            `json:"connectCode,omitempty"`
	DisplayName       string            `json:"displayName,omitempty"`
	Character         string            `json:"character"`
	Costume           uint8             `json:"costume"`
	Team              uint8             `json:"team"`
	OpponentPort      int               `json:"opponentPort"`
	OpponentCharacter string            `json:"opponentCharacter,omitempty"`
	Result            string            `json:"result"`
	Combos            []*ComboData      `json:"combos"`
	Wavedashes        []*WavedashData   `json:"wavedashes"`
	Dashes            []*DashData       `json:"dashes"`
	Techs             []*TechData       `json:"techs"`
	TakeHits          []*TakeHitData    `json:"takeHits"`
	LCancels          []*LCancelData    `json:"lCancels"`
	ShieldDrops       []*ShieldDropData `json:"shieldDrops"`
	Summary           *PlayerSummary    `json:"summary"`
}

// Report is the full analysis of one game.
type Report struct {
	Header  GameHeader     `json:"header"`
	Players []*PlayerStats `json:"players"`
}

// Analyze runs every classifier for every occupied port. A nil opts
// analyzes with DefaultOptions.
func Analyze(g *slp.Game, opts *Options) (*Report, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	players := g.Players()
	if len(players) == 0 {
		return nil, errors.New("stats: no player frames decoded")
	}

	report := &Report{Header: buildHeader(g)}
	for _, p := range players {
		opp := opponentFor(players, p, g.Start.IsTeams)
		report.Players = append(report.Players, analyzePlayer(g, p, opp, opts))
	}
	return report, nil
}

// AnalyzePlayer analyzes the single player using the given connect
// code. The match is case-insensitive.
func AnalyzePlayer(g *slp.Game, connectCode string, opts *Options) (*PlayerStats, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	players := g.Players()
	player := findByConnectCode(players, connectCode)
	if player == nil {
		return nil, fmt.Errorf("%w: no port uses connect code %q", ErrPlayerNotFound, connectCode)
	}
	opp := opponentFor(players, player, g.Start.IsTeams)
	return analyzePlayer(g, player, opp, opts), nil
}

func findByConnectCode(players []*slp.Player, code string) *slp.Player {
	for _, p := range players {
		if p.Start != nil && p.Start.ConnectCode != "" && strings.EqualFold(p.Start.ConnectCode, code) {
			return p
		}
	}
	return nil
}

// opponentFor picks the analysis opponent: the lowest other occupied
// port, preferring an opposing team in a teams game and falling back
// to a teammate only when no enemy port decoded.
func opponentFor(players []*slp.Player, me *slp.Player, teams bool) *slp.Player {
	var fallback *slp.Player
	for _, p := range players {
		if p.Port == me.Port {
			continue
		}
		if fallback == nil {
			fallback = p
		}
		if !teams || p.Start == nil || me.Start == nil || p.Start.Team != me.Start.Team {
			return p
		}
	}
	return fallback
}

func analyzePlayer(g *slp.Game, player, opponent *slp.Player, opts *Options) *PlayerStats {
	ps := &PlayerStats{
		Port:         player.Port,
		Character:    player.Character().Name(),
		OpponentPort: -1,
	}
	if player.Start != nil {
		ps.ConnectCode = player.Start.ConnectCode
		ps.DisplayName = player.Start.DisplayName
		ps.Costume = player.Start.Costume
		ps.Team = player.Start.Team
	}

	ps.Wavedashes = ComputeWavedashes(player)
	ps.Dashes = ComputeDashes(player)
	ps.LCancels = ComputeLCancels(g, player)
	ps.ShieldDrops = ComputeShieldDrops(g, player)

	if opponent != nil {
		ps.OpponentPort = int(opponent.Port)
		ps.OpponentCharacter = opponent.Character().Name()
		ps.Combos = ComputeCombos(g, player, opponent, opts.ComboChecks)
		ps.Techs = ComputeTechs(g, player, opponent)
		ps.TakeHits = ComputeTakeHits(g, player, opponent)
	}

	ps.Result = resolveResult(g, player, opponent)
	ps.Summary = buildSummary(ps, g.FrameCount())
	return ps
}

func buildHeader(g *slp.Game) GameHeader {
	h := GameHeader{
		Source:         g.Source,
		SlippiVersion:  g.Version().String(),
		DurationFrames: g.FrameCount(),
	}
	if g.Start != nil {
		h.MatchID = g.Start.MatchID
		h.MatchType = matchType(g.Start.MatchID)
		h.GameNumber = g.Start.GameNumber
		h.TiebreakNumber = g.Start.TiebreakNumber
		h.Stage = g.Start.Stage.Name()
		h.IsTeams = g.Start.IsTeams
		h.IsPAL = g.Start.IsPAL
	}
	if g.Metadata != nil {
		h.StartedAt = g.Metadata.StartTime()
		h.PlayedOn = g.Metadata.PlayedOn
		h.ConsoleNick = g.Metadata.ConsoleNick
	}
	return h
}

// matchType extracts the queue name from a match id like
// "mode.unranked-2022-12-27T01:04:44.19-0".
func matchType(matchID string) string {
	s, ok := strings.CutPrefix(matchID, "mode.")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[:i]
	}
	return s
}

// resolveResult names the outcome from this player's perspective.
// Placement data decides when the capture carries it; older captures
// fall back to comparing the final frame's stocks and percent, the
// same tiebreak order the game itself uses.
func resolveResult(g *slp.Game, player, opponent *slp.Player) string {
	if g.End == nil {
		return "UNRESOLVED"
	}
	if g.End.Method == slp.EndNoContest {
		return "NO_CONTEST"
	}
	if g.Version().AtLeast(3, 13, 0) {
		if g.End.Placements[player.Port] == 0 {
			return "WIN"
		}
		return "LOSS"
	}
	if opponent == nil || len(player.Frames) == 0 || len(opponent.Frames) == 0 {
		return "UNRESOLVED"
	}
	mine := player.Frames[len(player.Frames)-1].Post
	theirs := opponent.Frames[len(opponent.Frames)-1].Post
	switch {
	case mine.Stocks > theirs.Stocks:
		return "WIN"
	case theirs.Stocks > mine.Stocks:
		return "LOSS"
	case mine.Percent < theirs.Percent:
		return "WIN"
	case theirs.Percent < mine.Percent:
		return "LOSS"
	}
	return "UNRESOLVED"
}
