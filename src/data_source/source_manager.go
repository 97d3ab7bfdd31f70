package datasource

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sales-forecast/src/interfaces"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
)

// SourceManager keeps one record source per product line.
type SourceManager struct {
	Sources map[string]interfaces.IRecordSource
	Logger  *logger.Logger
	mu      sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewSourceManager(sources []interfaces.IRecordSource, log *logger.Logger) *SourceManager {
	m := &SourceManager{
		Sources: make(map[string]interfaces.IRecordSource),
		Logger:  log,
	}

	for _, s := range sources {
		m.Sources[s.Name()] = s
	}

	return m
}

// -----------------------------------------------------------------------------

// AddSource registers a source under its name
func (m *SourceManager) AddSource(source interfaces.IRecordSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := source.Name()
	if _, exists := m.Sources[name]; exists {
		return fmt.Errorf("source %s already exists", name)
	}

	m.Sources[name] = source
	m.Logger.Debug("Added source: %s", name)
	return nil
}

// -----------------------------------------------------------------------------

// RemoveSource unregisters a source
func (m *SourceManager) RemoveSource(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Sources[name]; !exists {
		return fmt.Errorf("source %s not found", name)
	}

	delete(m.Sources, name)
	m.Logger.Debug("Removed source: %s", name)
	return nil
}

// -----------------------------------------------------------------------------

// GetSource retrieves a source by name
func (m *SourceManager) GetSource(name string) (interfaces.IRecordSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	source, exists := m.Sources[name]
	if !exists {
		return nil, fmt.Errorf("source %s not found", name)
	}
	return source, nil
}

// -----------------------------------------------------------------------------

// Names returns the registered source names in sorted order
func (m *SourceManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.Sources))
	for name := range m.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// Load reads the rows of the named source
func (m *SourceManager) Load(ctx context.Context, name string) ([]models.MRawRow, error) {
	source, err := m.GetSource(name)
	if err != nil {
		return nil, err
	}

	rows, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	m.Logger.Debug("Loaded %d rows from %s", len(rows), name)
	return rows, nil
}

// -----------------------------------------------------------------------------

// Name returns "SourceManager"
func (m *SourceManager) Name() string {
	return "SourceManager"
}
