package dataset

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/assistantcoach/coach-api/internal/models"
)

// Loader produces the initial row set for a game.
type Loader func(game string) ([]models.MatchStatRow, error)

// gameData holds one game's snapshot behind an atomic pointer so reads
// never block and never observe a partially appended match.
type gameData struct {
	snapshot atomic.Pointer[[]models.MatchStatRow]
}

// Store owns the in-memory datasets, one per game, loaded lazily on
// first access. Appends build the combined slice aside and publish it
// with a single pointer swap; rows are never mutated in place.
type Store struct {
	loader Loader
	logger *zap.SugaredLogger

	mu    sync.Mutex // guards games map and serializes appends
	games map[string]*gameData
}

// NewStore creates a store backed by the given loader.
func NewStore(loader Loader, logger *zap.Logger) *Store {
	return &Store{
		loader: loader,
		logger: logger.Sugar(),
		games:  map[string]*gameData{},
	}
}

func normalizeGame(game string) string {
	g := strings.ToLower(strings.TrimSpace(game))
	if g == "" {
		g = "valorant"
	}
	return g
}

// Rows returns the current snapshot for a game, loading it on first
// access. The returned slice is shared and must not be mutated.
func (s *Store) Rows(game string) ([]models.MatchStatRow, error) {
	g, err := s.game(normalizeGame(game))
	if err != nil {
		return nil, err
	}
	return *g.snapshot.Load(), nil
}

// Preload forces a game's dataset to load, so startup can fail fast on
// a malformed file.
func (s *Store) Preload(game string) error {
	_, err := s.game(normalizeGame(game))
	return err
}

func (s *Store) game(game string) (*gameData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameLocked(game)
}

func (s *Store) gameLocked(game string) (*gameData, error) {
	if g, ok := s.games[game]; ok {
		return g, nil
	}
	rows, err := s.loader(game)
	if err != nil {
		return nil, fmt.Errorf("load dataset for %s: %w", game, err)
	}
	g := &gameData{}
	g.snapshot.Store(&rows)
	s.games[game] = g
	s.logger.Infow("Dataset loaded", "game", game, "rows", len(rows))
	return g, nil
}

// Append publishes new rows for a game atomically: concurrent readers
// see either the old snapshot or the full combined one, never a
// partially appended match.
func (s *Store) Append(game string, rows []models.MatchStatRow) error {
	if len(rows) == 0 {
		return nil
	}
	game = normalizeGame(game)

	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.gameLocked(game)
	if err != nil {
		return err
	}
	current := *g.snapshot.Load()
	combined := make([]models.MatchStatRow, 0, len(current)+len(rows))
	combined = append(combined, current...)
	combined = append(combined, rows...)
	g.snapshot.Store(&combined)
	s.logger.Infow("Dataset appended", "game", game, "rowsAdded", len(rows), "totalRows", len(combined))
	return nil
}
