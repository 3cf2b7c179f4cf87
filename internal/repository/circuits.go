package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/crux/internal/domain"
)

// Fixed byte-store keys. One saved store per database, no profiles.
const (
	circuitsKey    = "boulderingCircuits"
	lastCircuitKey = "lastCircuitId"
)

// storedProblem mirrors the persisted JSON layout. The legacy
// mapLocation field held raw pixel pairs ("x,y") relative to the map
// image's natural size; without the image there is no way to convert
// those, so they load as no pin.
type storedProblem struct {
	ID          int              `json:"id"`
	Status      domain.Status    `json:"status"`
	Note        string           `json:"note"`
	Location    *domain.Location `json:"location,omitempty"`
	MapLocation *string          `json:"mapLocation,omitempty"`
}

// storedCircuit mirrors the persisted JSON layout. LastViewed is
// milliseconds since epoch, null when never viewed; saves written
// before the field existed omit it entirely and are back-filled to
// null on load.
type storedCircuit struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	ColorKey   domain.ColorKey `json:"colorKey"`
	Problems   []storedProblem `json:"problems"`
	LastViewed *int64          `json:"lastViewed"`
}

// KVCircuitRepo implements CircuitRepo on a KV byte store, persisting
// the circuit list as one JSON document plus a separate last-circuit
// pointer.
type KVCircuitRepo struct {
	kv KV

	// Warnf receives non-fatal load problems (e.g. a corrupt save).
	// Defaults to stderr.
	Warnf func(format string, args ...any)
}

// NewKVCircuitRepo creates a new KVCircuitRepo.
func NewKVCircuitRepo(kv KV) *KVCircuitRepo {
	return &KVCircuitRepo{
		kv: kv,
		Warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
}

func (r *KVCircuitRepo) Load(ctx context.Context) (*domain.Store, error) {
	store := &domain.Store{}

	raw, found, err := r.kv.Get(ctx, circuitsKey)
	if err != nil {
		return nil, fmt.Errorf("loading circuits: %w", err)
	}
	if found {
		var stored []storedCircuit
		if err := json.Unmarshal(raw, &stored); err != nil {
			// A corrupt save must not take the whole app down.
			r.Warnf("saved circuits are unreadable, starting empty: %v", err)
			return store, nil
		}
		for i := range stored {
			store.Circuits = append(store.Circuits, fromStored(&stored[i]))
		}
	}

	last, found, err := r.kv.Get(ctx, lastCircuitKey)
	if err != nil {
		return nil, fmt.Errorf("loading last circuit id: %w", err)
	}
	if found && store.HasID(string(last)) {
		store.CurrentCircuitID = string(last)
	}

	return store, nil
}

func (r *KVCircuitRepo) Save(ctx context.Context, store *domain.Store) error {
	stored := make([]storedCircuit, 0, len(store.Circuits))
	for _, c := range store.Circuits {
		stored = append(stored, toStored(c))
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encoding circuits: %w", err)
	}
	if err := r.kv.Put(ctx, circuitsKey, raw); err != nil {
		return fmt.Errorf("saving circuits: %w", err)
	}

	if store.CurrentCircuitID == "" {
		if err := r.kv.Delete(ctx, lastCircuitKey); err != nil {
			return fmt.Errorf("clearing last circuit id: %w", err)
		}
		return nil
	}
	if err := r.kv.Put(ctx, lastCircuitKey, []byte(store.CurrentCircuitID)); err != nil {
		return fmt.Errorf("saving last circuit id: %w", err)
	}
	return nil
}

func fromStored(sc *storedCircuit) *domain.Circuit {
	c := &domain.Circuit{
		ID:         sc.ID,
		Name:       sc.Name,
		Color:      sc.ColorKey,
		LastViewed: millisToTime(sc.LastViewed),
	}
	for _, sp := range sc.Problems {
		c.Problems = append(c.Problems, &domain.Problem{
			ID:       sp.ID,
			Status:   sp.Status,
			Note:     sp.Note,
			Location: sp.Location,
		})
	}
	return c
}

func toStored(c *domain.Circuit) storedCircuit {
	sc := storedCircuit{
		ID:         c.ID,
		Name:       c.Name,
		ColorKey:   c.Color,
		Problems:   make([]storedProblem, 0, len(c.Problems)),
		LastViewed: timeToMillis(c.LastViewed),
	}
	for _, p := range c.Problems {
		sc.Problems = append(sc.Problems, storedProblem{
			ID:       p.ID,
			Status:   p.Status,
			Note:     p.Note,
			Location: p.Location,
		})
	}
	return sc
}

func millisToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func timeToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
