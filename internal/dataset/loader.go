// Package dataset loads the per-phase match stats tables and owns the
// in-memory snapshots the analysis engine reads. Loading validates the
// column contract once, at startup; the core never re-validates.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/assistantcoach/coach-api/internal/models"
)

// LoadGame resolves the dataset file for a game under dir and loads it.
// valorant falls back to the legacy match_stats.csv filename when the
// newer file is absent.
func LoadGame(dir, game string) ([]models.MatchStatRow, error) {
	game = strings.ToLower(game)
	var path string
	if game == "lol" {
		path = filepath.Join(dir, "lol_match_stats.csv")
	} else {
		path = filepath.Join(dir, "valorant_match_stats.csv")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = filepath.Join(dir, "match_stats.csv")
		}
	}
	return LoadFile(path)
}

// LoadFile loads a match stats table from a CSV or JSON file.
func LoadFile(path string) ([]models.MatchStatRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSON(path)
	}
	return loadCSV(path)
}

// fieldParser accumulates the first parse error across a row, in the
// style of a sticky error scanner, so each row reports one clear error.
type fieldParser struct {
	err error
}

func (p *fieldParser) float(field, s string) float64 {
	if p.err != nil || s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", field, s, err)
		return 0
	}
	return f
}

func (p *fieldParser) optionalFloat(field, s string) *float64 {
	if p.err != nil || s == "" {
		return nil
	}
	f := p.float(field, s)
	if p.err != nil {
		return nil
	}
	return &f
}

func loadCSV(path string) ([]models.MatchStatRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	// Historical demo CSV used `round_won`; the engine expects `rounds_won`.
	if _, ok := header["rounds_won"]; !ok {
		if i, ok := header["round_won"]; ok {
			header["rounds_won"] = i
		}
	}
	for _, col := range []string{"player_id", "match_id"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	get := func(record []string, col string) string {
		i, ok := header[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]models.MatchStatRow, 0, len(records)-1)
	for n, record := range records[1:] {
		p := &fieldParser{}
		row := models.MatchStatRow{
			MatchID:         get(record, "match_id"),
			PlayerID:        get(record, "player_id"),
			Map:             get(record, "map"),
			GamePhase:       models.GamePhase(strings.ToLower(get(record, "game_phase"))),
			Kills:           p.float("kills", get(record, "kills")),
			Deaths:          p.float("deaths", get(record, "deaths")),
			Assists:         p.float("assists", get(record, "assists")),
			DamageDealt:     p.float("damage_dealt", get(record, "damage_dealt")),
			KAST:            p.float("kast", get(record, "kast")),
			RoundsPlayed:    p.float("rounds_played", get(record, "rounds_played")),
			RoundsWon:       p.float("rounds_won", get(record, "rounds_won")),
			GoldDiffAtPhase: p.optionalFloat("gold_diff_at_phase", get(record, "gold_diff_at_phase")),
			ObjectiveScore:  p.optionalFloat("objective_score", get(record, "objective_score")),
		}
		if p.err != nil {
			return nil, fmt.Errorf("dataset %s row %d: %w", path, n+2, p.err)
		}
		if err := validateRow(&row); err != nil {
			return nil, fmt.Errorf("dataset %s row %d: %w", path, n+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// jsonRow mirrors the tabular contract for JSON array files, with the
// legacy round_won field accepted as an alias.
type jsonRow struct {
	MatchID         string   `json:"match_id"`
	PlayerID        string   `json:"player_id"`
	Map             string   `json:"map"`
	GamePhase       string   `json:"game_phase"`
	Kills           float64  `json:"kills"`
	Deaths          float64  `json:"deaths"`
	Assists         float64  `json:"assists"`
	DamageDealt     float64  `json:"damage_dealt"`
	KAST            float64  `json:"kast"`
	RoundsPlayed    float64  `json:"rounds_played"`
	RoundsWon       *float64 `json:"rounds_won"`
	RoundWon        *float64 `json:"round_won"`
	GoldDiffAtPhase *float64 `json:"gold_diff_at_phase"`
	ObjectiveScore  *float64 `json:"objective_score"`
}

func loadJSON(path string) ([]models.MatchStatRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	var raw []jsonRow
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	rows := make([]models.MatchStatRow, 0, len(raw))
	for n, jr := range raw {
		row := models.MatchStatRow{
			MatchID:         jr.MatchID,
			PlayerID:        jr.PlayerID,
			Map:             jr.Map,
			GamePhase:       models.GamePhase(strings.ToLower(jr.GamePhase)),
			Kills:           jr.Kills,
			Deaths:          jr.Deaths,
			Assists:         jr.Assists,
			DamageDealt:     jr.DamageDealt,
			KAST:            jr.KAST,
			RoundsPlayed:    jr.RoundsPlayed,
			GoldDiffAtPhase: jr.GoldDiffAtPhase,
			ObjectiveScore:  jr.ObjectiveScore,
		}
		if jr.RoundsWon != nil {
			row.RoundsWon = *jr.RoundsWon
		} else if jr.RoundWon != nil {
			row.RoundsWon = *jr.RoundWon
		}
		if err := validateRow(&row); err != nil {
			return nil, fmt.Errorf("dataset %s row %d: %w", path, n, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// validateRow enforces the load-time column contract so downstream
// analysis can assume well-formed rows.
func validateRow(row *models.MatchStatRow) error {
	if row.PlayerID == "" {
		return fmt.Errorf("missing player_id")
	}
	if row.MatchID == "" {
		return fmt.Errorf("missing match_id")
	}
	if !row.GamePhase.Valid() {
		return fmt.Errorf("invalid game_phase %q", row.GamePhase)
	}
	if row.Kills < 0 || row.Deaths < 0 || row.Assists < 0 || row.DamageDealt < 0 {
		return fmt.Errorf("negative stat value")
	}
	if row.KAST < 0 || row.KAST > 1 {
		return fmt.Errorf("kast %v outside [0,1]", row.KAST)
	}
	if row.RoundsPlayed < 0 || row.RoundsWon < 0 || row.RoundsWon > row.RoundsPlayed {
		return fmt.Errorf("rounds_won %v exceeds rounds_played %v", row.RoundsWon, row.RoundsPlayed)
	}
	return nil
}

// Players lists the distinct players in rows, sorted by id. The id is
// reused as the display name, matching the demo datasets.
func Players(rows []models.MatchStatRow) []models.PlayerRef {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range rows {
		if !seen[r.PlayerID] {
			seen[r.PlayerID] = true
			ids = append(ids, r.PlayerID)
		}
	}
	sort.Strings(ids)
	out := make([]models.PlayerRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.PlayerRef{ID: id, Name: id})
	}
	return out
}

// Matches lists the distinct match ids in rows, sorted.
func Matches(rows []models.MatchStatRow) []models.MatchRef {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range rows {
		if !seen[r.MatchID] {
			seen[r.MatchID] = true
			ids = append(ids, r.MatchID)
		}
	}
	sort.Strings(ids)
	out := make([]models.MatchRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.MatchRef{ID: id})
	}
	return out
}
