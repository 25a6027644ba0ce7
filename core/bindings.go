package core

import (
	"fmt"
	"strings"
	"sync"
)

// BindingTable is the explicit registration table behind AttributeIndex:
// entity type to ordered candidate context names, populated during wiring
// instead of being discovered through runtime struct-tag reflection. Entries
// are immutable once bound.
type BindingTable struct {
	mu      sync.RWMutex
	entries map[EntityType][]string
}

func NewBindingTable() *BindingTable {
	return &BindingTable{entries: make(map[EntityType][]string)}
}

// BindType declares the ordered candidate context names for entityType.
// List order is priority order.
func (t *BindingTable) BindType(entityType EntityType, names ...string) error {
	if t == nil {
		return fmt.Errorf("core: binding table is nil")
	}
	if entityType == nil {
		return ErrNilEntityType
	}
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("core: candidate context name is required for %s", entityType)
		}
		cleaned = append(cleaned, name)
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("core: at least one candidate context name is required for %s", entityType)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[entityType]; exists {
		return fmt.Errorf("core: entity type already bound: %s", entityType)
	}
	t.entries[entityType] = cleaned
	return nil
}

// Bind is the generic form of BindType.
func Bind[T any](t *BindingTable, names ...string) error {
	return t.BindType(EntityTypeFor[T](), names...)
}

func (t *BindingTable) CandidateNames(entityType EntityType) []string {
	if t == nil || entityType == nil {
		return nil
	}
	t.mu.RLock()
	names, ok := t.entries[entityType]
	t.mu.RUnlock()
	if !ok {
		return nil
	}
	return append([]string(nil), names...)
}

func (t *BindingTable) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
