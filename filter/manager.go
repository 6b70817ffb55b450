package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager holds named filter presets and compiles ad-hoc expressions
// through a shared cache.
type Manager struct {
	compiler  *Compiler
	evaluator *Evaluator
	presets   map[string]*Filter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler *Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator *Evaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler:  NewCompiler(WithCache(100)),
		evaluator: NewEvaluator(),
		presets:   make(map[string]*Filter),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Evaluator returns the evaluator used with this manager's filters.
func (m *Manager) Evaluator() *Evaluator {
	return m.evaluator
}

// RegisterPresets compiles and registers presets. Nothing is registered
// unless every expression compiles.
func (m *Manager) RegisterPresets(presets map[string]string) error {
	compiled := make(map[string]*Filter, len(presets))
	for name, expression := range presets {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()

	return nil
}

// Preset returns a compiled preset by name
func (m *Manager) Preset(name string) (*Filter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.presets[name]
	return f, ok
}

// Presets returns the registered preset names in sorted order
func (m *Manager) Presets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.presets))
}

// Resolve returns the filter for a preset name or an expression. The
// preset wins when both are set; nil is returned when neither is.
func (m *Manager) Resolve(preset, expression string) (*Filter, error) {
	if preset != "" {
		f, ok := m.Preset(preset)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
		}
		return f, nil
	}
	if expression == "" {
		return nil, nil
	}
	return m.compiler.Compile(expression)
}
