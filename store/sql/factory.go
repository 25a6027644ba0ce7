package sqlstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-datacontext/core"
)

// Lifetime selects how the factory reuses materialized context instances.
type Lifetime string

const (
	// LifetimeTransient materializes a fresh instance on every request.
	LifetimeTransient Lifetime = "transient"
	// LifetimeScoped reuses instances within a scope carried on the
	// context.Context, e.g. one scope per request or per unit of work.
	LifetimeScoped Lifetime = "scoped"
	// LifetimeSingleton reuses one instance per descriptor for the factory's
	// whole life.
	LifetimeSingleton Lifetime = "singleton"
)

func (l Lifetime) valid() bool {
	switch l {
	case LifetimeTransient, LifetimeScoped, LifetimeSingleton:
		return true
	}
	return false
}

type scopeKey struct{}

// ContextWithScope tags ctx with a scope identifier for scoped lifetimes.
func ContextWithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFrom reports the scope identifier carried on ctx, if any.
func ScopeFrom(ctx context.Context) (string, bool) {
	scope, ok := ctx.Value(scopeKey{}).(string)
	return scope, ok && scope != ""
}

// ContextFactory materializes live contexts from sqlstore descriptors,
// applying its configured lifetime policy. Concurrent requests during a
// cold materialization may race the opener; the first stored instance wins
// and later racers see it.
type ContextFactory struct {
	lifetime Lifetime

	mu         sync.Mutex
	singletons map[string]core.DataContext
	scoped     map[string]map[string]core.DataContext
}

func NewContextFactory(lifetime Lifetime) (*ContextFactory, error) {
	if lifetime == "" {
		lifetime = LifetimeTransient
	}
	if !lifetime.valid() {
		return nil, fmt.Errorf("sqlstore: unknown lifetime %q", lifetime)
	}
	return &ContextFactory{
		lifetime:   lifetime,
		singletons: make(map[string]core.DataContext),
		scoped:     make(map[string]map[string]core.DataContext),
	}, nil
}

func (f *ContextFactory) Lifetime() Lifetime {
	if f == nil {
		return ""
	}
	return f.lifetime
}

func (f *ContextFactory) InstanceFor(ctx context.Context, descriptor core.ContextDescriptor) (core.DataContext, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: context factory is nil")
	}
	if descriptor == nil {
		return nil, fmt.Errorf("sqlstore: descriptor is required")
	}
	materializer, ok := descriptor.(Materializer)
	if !ok {
		return nil, fmt.Errorf("sqlstore: descriptor %s does not support materialization", descriptor.Name())
	}

	switch f.lifetime {
	case LifetimeSingleton:
		return f.singletonFor(ctx, descriptor.Name(), materializer)
	case LifetimeScoped:
		scope, ok := ScopeFrom(ctx)
		if !ok {
			return nil, fmt.Errorf(
				"sqlstore: scoped lifetime requires a scope on the context for descriptor %s",
				descriptor.Name(),
			)
		}
		return f.scopedFor(ctx, scope, descriptor.Name(), materializer)
	default:
		return materializer.Materialize(ctx)
	}
}

func (f *ContextFactory) singletonFor(ctx context.Context, name string, materializer Materializer) (core.DataContext, error) {
	f.mu.Lock()
	if instance, ok := f.singletons[name]; ok {
		f.mu.Unlock()
		return instance, nil
	}
	f.mu.Unlock()

	instance, err := materializer.Materialize(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if winner, ok := f.singletons[name]; ok {
		return winner, nil
	}
	f.singletons[name] = instance
	return instance, nil
}

func (f *ContextFactory) scopedFor(ctx context.Context, scope, name string, materializer Materializer) (core.DataContext, error) {
	f.mu.Lock()
	if instances, ok := f.scoped[scope]; ok {
		if instance, ok := instances[name]; ok {
			f.mu.Unlock()
			return instance, nil
		}
	}
	f.mu.Unlock()

	instance, err := materializer.Materialize(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	instances, ok := f.scoped[scope]
	if !ok {
		instances = make(map[string]core.DataContext)
		f.scoped[scope] = instances
	}
	if winner, ok := instances[name]; ok {
		return winner, nil
	}
	instances[name] = instance
	return instance, nil
}

// ReleaseScope drops every instance cached for the scope. Callers own
// closing the underlying databases; the factory only forgets references.
func (f *ContextFactory) ReleaseScope(scope string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	delete(f.scoped, scope)
	f.mu.Unlock()
}
