package state

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sukalov/lyricle/internal/logger"
	"github.com/sukalov/lyricle/internal/puzzle"
)

// Store persists the curated batch
type Store interface {
	SetList(ctx context.Context, list []puzzle.Record) error
	GetList(ctx context.Context) ([]puzzle.Record, error)
}

// StateManager keeps the batch of accepted records of the current run in
// memory and mirrors every change to the store
type StateManager struct {
	mu    sync.RWMutex
	list  []puzzle.Record
	store Store
}

type BySpotifyID []puzzle.Record

func (a BySpotifyID) Len() int           { return len(a) }
func (a BySpotifyID) Less(i, j int) bool { return a[i].SpotifyID < a[j].SpotifyID }
func (a BySpotifyID) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }

// NewStateManager creates a manager; a nil store keeps the batch in memory only
func NewStateManager(store Store) *StateManager {
	return &StateManager{
		list:  []puzzle.Record{},
		store: store,
	}
}

// Init loads the previously stored batch
func (sm *StateManager) Init(ctx context.Context) error {
	if sm.store == nil {
		return nil
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	list, err := sm.store.GetList(ctx)
	if err != nil {
		return err
	}
	sm.list = list
	return nil
}

// AddRecord adds or replaces the record with the same SpotifyID
func (sm *StateManager) AddRecord(ctx context.Context, record puzzle.Record) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	replaced := false
	for i, r := range sm.list {
		if r.SpotifyID == record.SpotifyID {
			sm.list[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		sm.list = append(sm.list, record)
	}
	return sm.persist(ctx, "adding to")
}

func (sm *StateManager) GetAll() []puzzle.Record {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]puzzle.Record(nil), sm.list...)
}

// Sorted returns the batch ordered by SpotifyID
func (sm *StateManager) Sorted() []puzzle.Record {
	list := sm.GetAll()
	sort.Sort(BySpotifyID(list))
	return list
}

func (sm *StateManager) Find(spotifyID string) (puzzle.Record, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, r := range sm.list {
		if r.SpotifyID == spotifyID {
			return r, true
		}
	}
	return puzzle.Record{}, false
}

func (sm *StateManager) RemoveRecord(ctx context.Context, spotifyID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	result := []puzzle.Record{}
	for _, r := range sm.list {
		if r.SpotifyID != spotifyID {
			result = append(result, r)
		}
	}
	if len(result) == len(sm.list) {
		return fmt.Errorf("record with ID %s not found", spotifyID)
	}
	sm.list = result
	return sm.persist(ctx, "removing from")
}

func (sm *StateManager) Clear(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.list = []puzzle.Record{}
	return sm.persist(ctx, "clearing")
}

// persist must be called with mu held
func (sm *StateManager) persist(ctx context.Context, action string) error {
	if sm.store == nil {
		return nil
	}
	if err := sm.store.SetList(ctx, sm.list); err != nil {
		logger.Error(fmt.Sprintf("error happened while %s the stored batch: %s", action, err))
		return err
	}
	return nil
}
