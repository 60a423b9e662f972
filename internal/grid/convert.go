package grid

import (
	"strings"

	"github.com/assistantcoach/coach-api/internal/models"
)

// MatchPayload is the subset of a GRID match response the converter
// reads. Field names vary between series formats, so the common
// aliases are accepted.
type MatchPayload struct {
	Map     string          `json:"map"`
	MapName string          `json:"map_name"`
	Players []PlayerPayload `json:"players"`
}

// PlayerPayload is one player's entry with per-phase segments.
type PlayerPayload struct {
	ID       string           `json:"id"`
	PlayerID string           `json:"player_id"`
	Segments []SegmentPayload `json:"segments"`
}

// SegmentPayload is one time segment (early/mid/late cluster) of a
// player's match.
type SegmentPayload struct {
	Phase        string  `json:"phase"`
	Kills        float64 `json:"kills"`
	Deaths       float64 `json:"deaths"`
	Assists      float64 `json:"assists"`
	Damage       float64 `json:"damage"`
	KAST         float64 `json:"kast"`
	RoundsPlayed float64 `json:"rounds_played"`
	RoundsWon    float64 `json:"rounds_won"`
}

func (p *MatchPayload) mapName(game string) string {
	if p.Map != "" {
		return p.Map
	}
	if p.MapName != "" {
		return p.MapName
	}
	if game == "lol" {
		return "SummonersRift"
	}
	return "Unknown"
}

func (p *PlayerPayload) playerID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.PlayerID
}

// ToRows converts a GRID match payload into the per-player/per-phase
// rows the analysis engine consumes. Players without an id and
// segments without a phase fall back the same way the demo loaders do:
// unknown phase becomes mid, players without any id are skipped.
func ToRows(payload *MatchPayload, game, matchID string) []models.MatchStatRow {
	game = strings.ToLower(game)
	mapName := payload.mapName(game)

	rows := make([]models.MatchStatRow, 0, len(payload.Players)*len(models.Phases))
	for _, player := range payload.Players {
		pid := player.playerID()
		if pid == "" {
			continue
		}
		for _, seg := range player.Segments {
			phase := models.GamePhase(strings.ToLower(seg.Phase))
			if !phase.Valid() {
				phase = models.PhaseMid
			}
			rows = append(rows, models.MatchStatRow{
				MatchID:      matchID,
				PlayerID:     pid,
				Map:          mapName,
				GamePhase:    phase,
				Kills:        seg.Kills,
				Deaths:       seg.Deaths,
				Assists:      seg.Assists,
				DamageDealt:  seg.Damage,
				KAST:         seg.KAST,
				RoundsPlayed: seg.RoundsPlayed,
				RoundsWon:    seg.RoundsWon,
			})
		}
	}
	return rows
}
