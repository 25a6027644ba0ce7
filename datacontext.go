package datacontext

import (
	"context"

	"github.com/goliatone/go-datacontext/core"
)

type Config = core.Config

type Option = core.Option

type Resolver = core.Resolver

type EntityType = core.EntityType
type DataContext = core.DataContext
type ContextDescriptor = core.ContextDescriptor
type ContextFactory = core.ContextFactory
type AttributeIndex = core.AttributeIndex
type DescriptorSource = core.DescriptorSource
type MetricsRecorder = core.MetricsRecorder

type ContextRegistry = core.ContextRegistry
type BindingTable = core.BindingTable
type ResolutionCache = core.ResolutionCache

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorFactory    = core.WithErrorFactory
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithAttributeIndex  = core.WithAttributeIndex
	WithRegistry        = core.WithRegistry
	WithContextFactory  = core.WithContextFactory

	NewContextRegistry = core.NewContextRegistry
	NewBindingTable    = core.NewBindingTable

	EntityTypeOf = core.EntityTypeOf
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewResolver(cfg Config, opts ...Option) (*Resolver, error) {
	return core.NewResolver(cfg, opts...)
}

// EntityTypeFor returns the entity type key for T, unwrapping pointers.
func EntityTypeFor[T any]() EntityType {
	return core.EntityTypeFor[T]()
}

// ResolveFor resolves a live context instance for the entity type T.
func ResolveFor[T any](ctx context.Context, r *Resolver) (DataContext, error) {
	return core.ResolveFor[T](ctx, r)
}

// HasContextFor reports whether the entity type T resolves to a context.
func HasContextFor[T any](ctx context.Context, r *Resolver) bool {
	return core.HasContextFor[T](ctx, r)
}

// Bind declares candidate context names for the entity type T.
func Bind[T any](t *BindingTable, names ...string) error {
	return core.Bind[T](t, names...)
}
