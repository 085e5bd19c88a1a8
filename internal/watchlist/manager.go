package watchlist

import (
	"fmt"
	"slices"
	"sync"

	"Canari/internal/model"
)

var popularStocks = []model.PopularStock{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "TSLA", Name: "Tesla Inc."},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corp."},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
}

// PopularStocks returns the ticker tabs shown on the dashboard.
func PopularStocks() []model.PopularStock {
	return slices.Clone(popularStocks)
}

// DefaultSymbols returns the popular-stock tickers, used to seed a fresh watchlist.
func DefaultSymbols() []string {
	symbols := make([]string, len(popularStocks))
	for i, p := range popularStocks {
		symbols[i] = p.Symbol
	}
	return symbols
}

// Manager handles watchlist operations with concurrency safety.
// An empty filePath keeps the list in memory only.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, defaults []string) (*Manager, error) {
	var state *model.WatchlistState
	if filePath != "" {
		loaded, err := LoadState(filePath)
		if err != nil {
			return nil, err
		}
		state = loaded
	}

	if state == nil {
		state = &model.WatchlistState{}
		for _, s := range defaults {
			sym, err := model.ParseSymbol(s)
			if err != nil {
				return nil, fmt.Errorf("default watchlist: %w", err)
			}
			if !slices.Contains(state.Symbols, sym) {
				state.Symbols = append(state.Symbols, sym)
			}
		}
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(state); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns a copy of the watched symbols in insertion order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Symbols)
}

// Contains reports whether symbol is watched.
func (m *Manager) Contains(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.state.Symbols, model.NormalizeSymbol(symbol))
}

// Add watches symbol. It reports false when the symbol was already present.
func (m *Manager) Add(symbol string) (bool, error) {
	sym, err := model.ParseSymbol(symbol)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.state.Symbols, sym) {
		return false, nil
	}
	next := &model.WatchlistState{Symbols: append(slices.Clone(m.state.Symbols), sym)}
	if err := m.save(next); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	m.state = next
	return true, nil
}

// Remove stops watching symbol. It reports false when the symbol was not present.
func (m *Manager) Remove(symbol string) (bool, error) {
	sym := model.NormalizeSymbol(symbol)

	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.Index(m.state.Symbols, sym)
	if idx < 0 {
		return false, nil
	}
	next := &model.WatchlistState{Symbols: slices.Delete(slices.Clone(m.state.Symbols), idx, idx+1)}
	if err := m.save(next); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	m.state = next
	return true, nil
}

// save writes state to disk. Callers swap state in only after it succeeds.
func (m *Manager) save(state *model.WatchlistState) error {
	if m.filePath == "" {
		return nil
	}
	return SaveState(m.filePath, state)
}
