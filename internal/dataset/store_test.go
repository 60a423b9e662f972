package dataset

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/assistantcoach/coach-api/internal/models"
)

func testStore(loader Loader) *Store {
	return NewStore(loader, zap.NewNop())
}

func TestStoreRowsLoadsLazily(t *testing.T) {
	calls := 0
	store := testStore(func(game string) ([]models.MatchStatRow, error) {
		calls++
		return []models.MatchStatRow{{PlayerID: "oxy", MatchID: "m1"}}, nil
	})

	for i := 0; i < 3; i++ {
		rows, err := store.Rows("valorant")
		if err != nil {
			t.Fatalf("Rows() error = %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Rows() returned %d rows, want 1", len(rows))
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestStoreNormalizesGame(t *testing.T) {
	var got []string
	store := testStore(func(game string) ([]models.MatchStatRow, error) {
		got = append(got, game)
		return nil, nil
	})

	store.Rows("")
	store.Rows("VALORANT")
	store.Rows(" lol ")

	if len(got) != 2 {
		t.Fatalf("loader saw %v, want two distinct games", got)
	}
	if got[0] != "valorant" || got[1] != "lol" {
		t.Errorf("loader saw %v, want [valorant lol]", got)
	}
}

func TestStoreLoaderError(t *testing.T) {
	wantErr := errors.New("no such file")
	store := testStore(func(game string) ([]models.MatchStatRow, error) {
		return nil, wantErr
	})

	if _, err := store.Rows("valorant"); !errors.Is(err, wantErr) {
		t.Errorf("Rows() error = %v, want wrapped %v", err, wantErr)
	}
	if err := store.Preload("valorant"); !errors.Is(err, wantErr) {
		t.Errorf("Preload() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestStoreAppend(t *testing.T) {
	store := testStore(func(game string) ([]models.MatchStatRow, error) {
		return []models.MatchStatRow{{PlayerID: "oxy", MatchID: "m1"}}, nil
	})

	before, _ := store.Rows("valorant")

	err := store.Append("valorant", []models.MatchStatRow{
		{PlayerID: "oxy", MatchID: "m2"},
		{PlayerID: "leaf", MatchID: "m2"},
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	after, _ := store.Rows("valorant")
	if len(after) != 3 {
		t.Errorf("Rows() after append = %d rows, want 3", len(after))
	}
	// The pre-append snapshot must be untouched.
	if len(before) != 1 {
		t.Errorf("old snapshot grew to %d rows, want 1", len(before))
	}
}

func TestStoreAppendEmptyIsNoop(t *testing.T) {
	calls := 0
	store := testStore(func(game string) ([]models.MatchStatRow, error) {
		calls++
		return nil, nil
	})
	if err := store.Append("valorant", nil); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if calls != 0 {
		t.Error("empty append should not force a load")
	}
}

func TestStoreConcurrentReadsAndAppends(t *testing.T) {
	store := testStore(func(game string) ([]models.MatchStatRow, error) {
		return []models.MatchStatRow{{PlayerID: "oxy", MatchID: "m1"}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rows, err := store.Rows("valorant")
				if err != nil {
					t.Errorf("Rows() error = %v", err)
					return
				}
				if len(rows) < 1 {
					t.Error("observed empty snapshot")
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := store.Append("valorant", []models.MatchStatRow{{PlayerID: "leaf", MatchID: "m2"}}); err != nil {
					t.Errorf("Append() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	rows, _ := store.Rows("valorant")
	if len(rows) != 1+8*10 {
		t.Errorf("final snapshot has %d rows, want %d", len(rows), 1+8*10)
	}
}
