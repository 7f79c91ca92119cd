package kb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/aero-simulator/model"
)

// EventType indicates what kind of change happened in the fleet store.
type EventType int

const (
	EventAircraftAdded EventType = iota
	EventAircraftUpdated
)

// Event is emitted to subscribers when a preset changes.
type Event struct {
	Type   EventType
	Name   string
	Params model.AircraftParams
}

// Fleet is an in-memory, thread-safe store of named aircraft parameter
// presets. Params are stored by value, so a caller can never mutate a
// preset behind the store's back.
type Fleet struct {
	mu sync.RWMutex

	aircraft map[string]model.AircraftParams

	subs []func(Event)
}

// NewFleet constructs an empty store.
func NewFleet() *Fleet {
	return &Fleet{
		aircraft: make(map[string]model.AircraftParams),
	}
}

// AddAircraft registers a preset. It returns an error if the name is empty
// or already taken.
func (f *Fleet) AddAircraft(name string, p model.AircraftParams) error {
	if name == "" {
		return fmt.Errorf("aircraft name must not be empty")
	}

	f.mu.Lock()
	if _, exists := f.aircraft[name]; exists {
		f.mu.Unlock()
		return fmt.Errorf("aircraft %q already exists", name)
	}
	f.aircraft[name] = p
	subs := append([]func(Event){}, f.subs...)
	f.mu.Unlock()

	notify(subs, Event{Type: EventAircraftAdded, Name: name, Params: p})
	return nil
}

// GetAircraft returns the preset with the given name.
func (f *Fleet) GetAircraft(name string) (model.AircraftParams, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.aircraft[name]
	return p, ok
}

// ListAircraft returns the preset names in sorted order.
func (f *Fleet) ListAircraft() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.aircraft))
	for name := range f.aircraft {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateAircraft derives a new preset from the stored one by applying the
// overrides, stores it, and notifies subscribers. It returns the updated
// params.
func (f *Fleet) UpdateAircraft(name string, o model.Overrides) (model.AircraftParams, error) {
	f.mu.Lock()
	p, ok := f.aircraft[name]
	if !ok {
		f.mu.Unlock()
		return model.AircraftParams{}, fmt.Errorf("aircraft %q not found", name)
	}
	p = p.Derive(o)
	f.aircraft[name] = p
	subs := append([]func(Event){}, f.subs...)
	f.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	notify(subs, Event{Type: EventAircraftUpdated, Name: name, Params: p})
	return p, nil
}

// Subscribe registers a callback for store events. It returns an
// unsubscribe function.
func (f *Fleet) Subscribe(fn func(Event)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	idx := len(f.subs) - 1

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if idx < 0 || idx >= len(f.subs) {
			return
		}
		f.subs = append(f.subs[:idx], f.subs[idx+1:]...)
		idx = -1
	}
}

func notify(subs []func(Event), ev Event) {
	for _, sub := range subs {
		sub(ev)
	}
}
