package core

import (
	"fmt"
	"strings"
	"sync"
)

// ContextRegistry is the explicit descriptor set handed to a Resolver at
// construction. Enumeration order is registration order; the containment scan
// relies on that being stable.
type ContextRegistry struct {
	mu          sync.RWMutex
	descriptors map[string]ContextDescriptor
	order       []string
	defaultName string
}

func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{descriptors: make(map[string]ContextDescriptor)}
}

func (r *ContextRegistry) Register(descriptor ContextDescriptor) error {
	if descriptor == nil {
		return fmt.Errorf("core: context descriptor is nil")
	}
	name := strings.TrimSpace(descriptor.Name())
	if name == "" {
		return fmt.Errorf("core: context descriptor name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[name]; exists {
		return fmt.Errorf("core: context already registered: %s", name)
	}
	r.descriptors[name] = descriptor
	r.order = append(r.order, name)
	return nil
}

// RegisterDefault registers descriptor and designates it as the process
// default used by the unqualified fallback path.
func (r *ContextRegistry) RegisterDefault(descriptor ContextDescriptor) error {
	if descriptor == nil {
		return fmt.Errorf("core: context descriptor is nil")
	}
	name := strings.TrimSpace(descriptor.Name())
	if name == "" {
		return fmt.Errorf("core: context descriptor name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.defaultName != "" {
		return fmt.Errorf("core: default context already designated: %s", r.defaultName)
	}
	if _, exists := r.descriptors[name]; exists {
		return fmt.Errorf("core: context already registered: %s", name)
	}
	r.descriptors[name] = descriptor
	r.order = append(r.order, name)
	r.defaultName = name
	return nil
}

// Unregister removes a descriptor by name. Existing cached resolutions held by
// resolvers are intentionally untouched; first successful resolution wins for
// the process lifetime.
func (r *ContextRegistry) Unregister(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[name]; !exists {
		return false
	}
	delete(r.descriptors, name)
	for index, existing := range r.order {
		if existing == name {
			r.order = append(r.order[:index], r.order[index+1:]...)
			break
		}
	}
	if r.defaultName == name {
		r.defaultName = ""
	}
	return true
}

// List returns the registered descriptors in registration order.
func (r *ContextRegistry) List() []ContextDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listed := make([]ContextDescriptor, 0, len(r.order))
	for _, name := range r.order {
		listed = append(listed, r.descriptors[name])
	}
	return listed
}

func (r *ContextRegistry) ByName(name string) (ContextDescriptor, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	r.mu.RLock()
	descriptor, ok := r.descriptors[name]
	r.mu.RUnlock()
	return descriptor, ok
}

// Default returns the designated default descriptor, or the singular
// registered descriptor when exactly one context exists and none was
// designated.
func (r *ContextRegistry) Default() (ContextDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultName != "" {
		descriptor, ok := r.descriptors[r.defaultName]
		return descriptor, ok
	}
	if len(r.order) == 1 {
		descriptor, ok := r.descriptors[r.order[0]]
		return descriptor, ok
	}
	return nil, false
}

func (r *ContextRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
