package core

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

type resolutionSource string

const (
	resolutionSourceCache     resolutionSource = "cache"
	resolutionSourceAttribute resolutionSource = "attribute"
	resolutionSourceScan      resolutionSource = "scan"
	resolutionSourceDefault   resolutionSource = "default"
)

// Resolver decides which registered persistence context owns a given entity
// type. Lookup order: resolution cache, declared candidate names, containment
// scan over registered models, unqualified default fallback. The first three
// outcomes are memoized for the process lifetime; fallback results never are,
// so later registry changes stay observable.
//
// Safe for concurrent use. Redundant first-time resolutions of one entity
// type may each compute the answer, but all converge on the first cached
// descriptor.
type Resolver struct {
	config          Config
	logger          Logger
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	index           AttributeIndex
	registry        DescriptorSource
	factory         ContextFactory
	cache           *ResolutionCache
}

func NewResolver(cfg Config, options ...Option) (*Resolver, error) {
	builder := defaultResolverBuilder(cfg)
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&builder)
	}

	provider, logger := glog.Resolve("datacontext", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("datacontext"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewContextRegistry()
	}
	if builder.index == nil {
		builder.index = NewBindingTable()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	resolver := &Resolver{
		config:          finalConfig,
		logger:          logger,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		index:           builder.index,
		registry:        builder.registry,
		factory:         builder.factory,
		cache:           NewResolutionCache(),
	}

	if !finalConfig.DisableEagerPopulate {
		resolver.Populate(context.Background())
	}

	return resolver, nil
}

// Config returns the resolved configuration snapshot.
func (r *Resolver) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.config
}

// Resolve returns the descriptor of the context owning entityType. Fails with
// a bad-input envelope for a nil entity type and a not-found envelope when no
// strategy produces a context.
func (r *Resolver) Resolve(ctx context.Context, entityType EntityType) (ContextDescriptor, error) {
	if r == nil {
		return nil, newResolutionError("core: resolver is not configured", goerrors.CategoryInternal, ResolutionErrorInternal)
	}
	startedAt := time.Now()
	if entityType == nil {
		err := r.errorMapper(ErrNilEntityType)
		r.observeResolution(ctx, startedAt, "", "", err)
		return nil, err
	}

	descriptor, source, ok := r.lookup(ctx, entityType)
	if !ok {
		err := newResolutionError(
			"core: no persistence context owns entity type "+entityType.String(),
			goerrors.CategoryNotFound,
			ResolutionErrorNotFound,
		)
		r.observeResolution(ctx, startedAt, entityType.String(), "", err)
		return nil, err
	}

	r.observeResolution(ctx, startedAt, entityType.String(), source, nil)
	return descriptor, nil
}

// ResolveContext resolves entityType and obtains a live instance from the
// context factory. Instance identity and freshness are the factory's
// contract.
func (r *Resolver) ResolveContext(ctx context.Context, entityType EntityType) (DataContext, error) {
	descriptor, err := r.Resolve(ctx, entityType)
	if err != nil {
		return nil, err
	}
	if r.factory == nil {
		return nil, newResolutionError("core: context factory is not configured", goerrors.CategoryInternal, ResolutionErrorInternal)
	}
	instance, err := r.factory.InstanceFor(ctx, descriptor)
	if err != nil {
		return nil, r.errorMapper(err)
	}
	if instance == nil {
		return nil, newResolutionError(
			"core: context factory returned no instance for "+descriptor.Name(),
			goerrors.CategoryInternal,
			ResolutionErrorInternal,
		)
	}
	return instance, nil
}

// HasContext reports whether a resolution attempt for entityType would
// succeed. It runs the same decision chain as Resolve through a non-throwing
// path and never fails; a nil entity type is simply false.
func (r *Resolver) HasContext(ctx context.Context, entityType EntityType) bool {
	if r == nil || entityType == nil {
		return false
	}
	_, _, ok := r.lookup(ctx, entityType)
	return ok
}

// Populate eagerly caches entity-to-context mappings for every registered
// descriptor. A descriptor whose introspection fails is logged and skipped;
// it never aborts population of the rest, and the resolver stays fully usable
// with a partial cache. Returns the number of entity types cached.
func (r *Resolver) Populate(ctx context.Context) int {
	if r == nil || r.registry == nil {
		return 0
	}
	cached := 0
	for _, descriptor := range r.registry.List() {
		model, err := descriptor.Model(ctx)
		if err != nil {
			r.logWarn(ctx, "context model introspection failed during eager population", map[string]any{
				"context":   descriptor.Name(),
				"error":     err.Error(),
				"text_code": ResolutionErrorIntrospectionFailed,
			})
			continue
		}
		for _, entityType := range model {
			if entityType == nil {
				continue
			}
			if winner := r.cache.PutIfAbsent(entityType, descriptor); winner == descriptor {
				cached++
			}
		}
	}
	r.logDebug(ctx, "eager population completed", map[string]any{
		"cached_entity_types": cached,
	})
	return cached
}

// lookup runs the decision chain without surfacing errors; scan-time
// introspection failures are absorbed and logged.
func (r *Resolver) lookup(ctx context.Context, entityType EntityType) (ContextDescriptor, resolutionSource, bool) {
	if descriptor, ok := r.cache.Get(entityType); ok {
		return descriptor, resolutionSourceCache, true
	}

	if descriptor, ok := r.matchCandidates(ctx, entityType); ok {
		return r.cache.PutIfAbsent(entityType, descriptor), resolutionSourceAttribute, true
	}

	if descriptor, ok := r.scanModels(ctx, entityType); ok {
		return r.cache.PutIfAbsent(entityType, descriptor), resolutionSourceScan, true
	}

	if descriptor, ok := r.defaultDescriptor(); ok {
		// Deliberately not cached: entity types that only resolve through the
		// fallback are rescanned every call so registry changes stay visible.
		if !r.config.QuietFallback {
			r.logWarn(ctx, "entity type resolved through unqualified default fallback", map[string]any{
				"entity_type": entityType.String(),
				"context":     descriptor.Name(),
			})
		}
		return descriptor, resolutionSourceDefault, true
	}

	return nil, "", false
}

// matchCandidates walks the declared candidate names in priority order and
// returns the first registered match.
func (r *Resolver) matchCandidates(ctx context.Context, entityType EntityType) (ContextDescriptor, bool) {
	names := r.index.CandidateNames(entityType)
	if len(names) == 0 {
		return nil, false
	}
	for _, name := range names {
		if descriptor, ok := r.registry.ByName(name); ok {
			return descriptor, true
		}
	}
	r.logWarn(ctx, "declared candidate contexts matched no registered context", map[string]any{
		"entity_type": entityType.String(),
		"candidates":  strings.Join(names, ","),
	})
	return nil, false
}

// scanModels walks descriptors in registry enumeration order and returns the
// first whose model contains entityType. Introspection failures skip that
// descriptor only.
func (r *Resolver) scanModels(ctx context.Context, entityType EntityType) (ContextDescriptor, bool) {
	for _, descriptor := range r.registry.List() {
		model, err := descriptor.Model(ctx)
		if err != nil {
			r.logWarn(ctx, "context model introspection failed during containment scan", map[string]any{
				"context":     descriptor.Name(),
				"entity_type": entityType.String(),
				"error":       err.Error(),
				"text_code":   ResolutionErrorIntrospectionFailed,
			})
			continue
		}
		for _, owned := range model {
			if owned == entityType {
				return descriptor, true
			}
		}
	}
	return nil, false
}

func (r *Resolver) defaultDescriptor() (ContextDescriptor, bool) {
	if name := strings.TrimSpace(r.config.DefaultContext); name != "" {
		if descriptor, ok := r.registry.ByName(name); ok {
			return descriptor, true
		}
	}
	return r.registry.Default()
}

// ResolveFor resolves a live context instance for the entity type T.
func ResolveFor[T any](ctx context.Context, r *Resolver) (DataContext, error) {
	return r.ResolveContext(ctx, EntityTypeFor[T]())
}

// HasContextFor reports whether the entity type T resolves to a context.
func HasContextFor[T any](ctx context.Context, r *Resolver) bool {
	return r.HasContext(ctx, EntityTypeFor[T]())
}
