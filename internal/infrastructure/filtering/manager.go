package filtering

import (
	"context"
	"sync"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"

	"github.com/bnema/medusa/internal/logging"
)

// FilterState represents the compile state of one list.
type FilterState string

const (
	StatePending FilterState = "pending"
	StateActive  FilterState = "active"
	StateError   FilterState = "error"
)

// Manager compiles the session lists once and installs them on content
// managers on request. Install may run before compilation finishes; the
// requested set is applied as soon as the filters are ready.
type Manager struct {
	store *Store
	lists *Lists

	mu       sync.Mutex
	filters  map[ListKind]*webkit.UserContentFilter
	states   map[ListKind]FilterState
	targets  map[*webkit.UserContentManager][]ListKind
	onChange func(ListKind, FilterState)
}

// NewManager creates a Manager for lists backed by store.
func NewManager(store *Store, lists *Lists) *Manager {
	return &Manager{
		store:   store,
		lists:   lists,
		filters: make(map[ListKind]*webkit.UserContentFilter),
		states:  map[ListKind]FilterState{ListAds: StatePending, ListTrackers: StatePending},
		targets: make(map[*webkit.UserContentManager][]ListKind),
	}
}

// OnStateChange registers a callback for compile results.
func (m *Manager) OnStateChange(cb func(ListKind, FilterState)) {
	m.mu.Lock()
	m.onChange = cb
	m.mu.Unlock()
}

// State returns the compile state of kind.
func (m *Manager) State(kind ListKind) FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[kind]
}

// Compile starts compiling every list. Must run with the GTK main loop alive.
func (m *Manager) Compile(ctx context.Context) {
	log := logging.FromContext(ctx).With().Str("component", "filter-manager").Logger()

	for _, kind := range []ListKind{ListAds, ListTrackers} {
		list := m.lists.Get(kind)
		data, err := list.CompileJSON()
		if err != nil {
			log.Error().Err(err).Str("list", string(kind)).Msg("failed to encode block list")
			m.finish(kind, nil, StateError)
			continue
		}
		m.store.Compile(ctx, kind.Identifier(), data, func(filter *webkit.UserContentFilter, err error) {
			if err != nil {
				m.finish(kind, nil, StateError)
				return
			}
			m.finish(kind, filter, StateActive)
		})
	}
}

func (m *Manager) finish(kind ListKind, filter *webkit.UserContentFilter, state FilterState) {
	m.mu.Lock()
	if filter != nil {
		m.filters[kind] = filter
	}
	m.states[kind] = state
	cb := m.onChange
	targets := make(map[*webkit.UserContentManager][]ListKind, len(m.targets))
	for ucm, kinds := range m.targets {
		targets[ucm] = kinds
	}
	m.mu.Unlock()

	for ucm, kinds := range targets {
		m.apply(ucm, kinds)
	}
	if cb != nil {
		cb(kind, state)
	}
}

// Install makes ucm carry exactly the given lists. Passing no kinds removes
// every filter. Safe to call repeatedly.
func (m *Manager) Install(ucm *webkit.UserContentManager, kinds ...ListKind) {
	if ucm == nil {
		return
	}
	m.mu.Lock()
	m.targets[ucm] = append([]ListKind(nil), kinds...)
	m.mu.Unlock()

	m.apply(ucm, kinds)
}

func (m *Manager) apply(ucm *webkit.UserContentManager, kinds []ListKind) {
	m.mu.Lock()
	filters := make([]*webkit.UserContentFilter, 0, len(kinds))
	for _, kind := range kinds {
		if f := m.filters[kind]; f != nil {
			filters = append(filters, f)
		}
	}
	m.mu.Unlock()

	ucm.RemoveAllFilters()
	for _, f := range filters {
		ucm.AddFilter(f)
	}
}
