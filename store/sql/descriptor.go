package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-datacontext/core"
)

// ContextOpener materializes a live BunContext. Opening may dial a database
// and is allowed to fail; callers treat failures as recoverable per attempt.
type ContextOpener func(ctx context.Context) (*BunContext, error)

// Materializer is the capability the sqlstore ContextFactory needs from a
// descriptor to produce instances.
type Materializer interface {
	Materialize(ctx context.Context) (core.DataContext, error)
}

// Descriptor identifies a bun-backed context that is materialized on demand.
// The model snapshot is memoized after the first successful introspection
// (context models are fixed at construction); failed attempts are not
// memoized so transient open errors retry on the next call.
type Descriptor struct {
	name string
	open ContextOpener

	mu          sync.Mutex
	model       []core.EntityType
	modelLoaded bool
}

func NewDescriptor(name string, open ContextOpener) (*Descriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("sqlstore: descriptor name is required")
	}
	if open == nil {
		return nil, fmt.Errorf("sqlstore: descriptor %s requires a context opener", name)
	}
	return &Descriptor{name: name, open: open}, nil
}

// StaticDescriptor wraps an already-open context.
func StaticDescriptor(dataContext *BunContext) (*Descriptor, error) {
	if dataContext == nil {
		return nil, fmt.Errorf("sqlstore: static descriptor requires a context")
	}
	return NewDescriptor(dataContext.Name(), func(context.Context) (*BunContext, error) {
		return dataContext, nil
	})
}

func (d *Descriptor) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Model returns the entity types the described context owns, materializing
// the context on the first call.
func (d *Descriptor) Model(ctx context.Context) ([]core.EntityType, error) {
	if d == nil {
		return nil, fmt.Errorf("sqlstore: descriptor is nil")
	}
	d.mu.Lock()
	if d.modelLoaded {
		model := append([]core.EntityType(nil), d.model...)
		d.mu.Unlock()
		return model, nil
	}
	d.mu.Unlock()

	// Open outside the lock; materialization may block on I/O.
	instance, err := d.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: materialize context %s: %w", d.name, err)
	}
	if instance == nil {
		return nil, fmt.Errorf("sqlstore: materialize context %s: opener returned nil", d.name)
	}

	model := instance.Model()
	d.mu.Lock()
	if !d.modelLoaded {
		d.model = append([]core.EntityType(nil), model...)
		d.modelLoaded = true
	}
	model = append([]core.EntityType(nil), d.model...)
	d.mu.Unlock()
	return model, nil
}

// Materialize opens a fresh context instance. Instance reuse is the
// factory's concern, not the descriptor's.
func (d *Descriptor) Materialize(ctx context.Context) (core.DataContext, error) {
	if d == nil {
		return nil, fmt.Errorf("sqlstore: descriptor is nil")
	}
	instance, err := d.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: materialize context %s: %w", d.name, err)
	}
	if instance == nil {
		return nil, fmt.Errorf("sqlstore: materialize context %s: opener returned nil", d.name)
	}

	d.mu.Lock()
	if !d.modelLoaded {
		d.model = instance.Model()
		d.modelLoaded = true
	}
	d.mu.Unlock()
	return instance, nil
}
