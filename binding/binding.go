// Package binding maps gesture kinds to named actions loaded from YAML.
package binding

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dshills/gesturekit/gesture"
)

// Map resolves classified gestures to named actions. What an action means
// is up to the consumer; the map only carries the names.
type Map struct {
	actions map[gesture.Kind]string
}

// file is the YAML document shape:
//
//	bindings:
//	  single-tap: select
//	  double-tap: open
//	  scale: zoom
type file struct {
	Bindings map[string]string `yaml:"bindings"`
}

// New returns an empty binding map.
func New() *Map {
	return &Map{actions: make(map[gesture.Kind]string)}
}

// Parse reads a YAML binding document. Keys are gesture kind names as
// printed by gesture.Kind ("single-tap", "long-press", ...); unknown kinds
// and empty actions are errors.
func Parse(data []byte) (*Map, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing bindings: %w", err)
	}

	m := New()
	for key, action := range f.Bindings {
		kind, err := gesture.ParseKind(key)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		if action == "" {
			return nil, fmt.Errorf("binding %q: action must not be empty", key)
		}
		m.actions[kind] = action
	}
	return m, nil
}

// LoadFile reads a YAML binding file.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bindings file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Bind sets the action for a gesture kind, replacing any existing binding.
func (m *Map) Bind(k gesture.Kind, action string) {
	m.actions[k] = action
}

// Resolve returns the action bound to a gesture kind.
func (m *Map) Resolve(k gesture.Kind) (string, bool) {
	action, ok := m.actions[k]
	return action, ok
}

// Len returns the number of bindings.
func (m *Map) Len() int {
	return len(m.actions)
}

// Kinds returns the bound gesture kinds in declaration order of the Kind
// constants.
func (m *Map) Kinds() []gesture.Kind {
	kinds := make([]gesture.Kind, 0, len(m.actions))
	for k := range m.actions {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
