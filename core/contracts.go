package core

import (
	"context"
	"reflect"

	glog "github.com/goliatone/go-logger/glog"
)

// EntityType identifies a persisted domain type. Identity is type identity,
// not data; two values of the same struct share one EntityType.
type EntityType = reflect.Type

// EntityTypeOf returns the EntityType for a model value, unwrapping pointers
// so that *User and User map to the same entry.
func EntityTypeOf(model any) EntityType {
	if model == nil {
		return nil
	}
	entityType := reflect.TypeOf(model)
	for entityType != nil && entityType.Kind() == reflect.Pointer {
		entityType = entityType.Elem()
	}
	return entityType
}

// EntityTypeFor is the generic form of EntityTypeOf.
func EntityTypeFor[T any]() EntityType {
	entityType := reflect.TypeFor[T]()
	for entityType.Kind() == reflect.Pointer {
		entityType = entityType.Elem()
	}
	return entityType
}

// DataContext is a live persistence context instance: a unit-of-work/session
// boundary owning a set of entity types. Instances returned by a resolver are
// owned by the caller; the resolver never holds or disposes them.
type DataContext interface {
	Name() string
	Model() []EntityType
	Contains(entityType EntityType) bool
}

// ContextDescriptor identifies a registered persistence context without
// requiring a live instance. Model may need to materialize the context to
// introspect it and is therefore allowed to fail.
type ContextDescriptor interface {
	Name() string
	Model(ctx context.Context) ([]EntityType, error)
}

// ContextFactory obtains an instance for a resolved descriptor. Lifetime
// policy (transient, scoped, singleton) is the factory's contract; the
// resolver treats this as a pass-through call and caches nothing.
type ContextFactory interface {
	InstanceFor(ctx context.Context, descriptor ContextDescriptor) (DataContext, error)
}

// AttributeIndex exposes statically declared candidate context names for an
// entity type, in priority order. Empty means no declaration.
type AttributeIndex interface {
	CandidateNames(entityType EntityType) []string
}

// DescriptorSource enumerates the persistence contexts currently registered.
// Implemented by ContextRegistry; passed explicitly at construction instead of
// being discovered through a service container.
type DescriptorSource interface {
	List() []ContextDescriptor
	ByName(name string) (ContextDescriptor, bool)
	Default() (ContextDescriptor, bool)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
