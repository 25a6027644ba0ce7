package core

import (
	"context"
	"sort"
	"time"
)

func (r *Resolver) observeResolution(
	ctx context.Context,
	startedAt time.Time,
	entityType string,
	source resolutionSource,
	err error,
) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}

	fields := map[string]any{
		"status":      status,
		"duration_ms": time.Since(startedAt).Milliseconds(),
	}
	if entityType != "" {
		fields["entity_type"] = entityType
	}
	if source != "" {
		fields["source"] = string(source)
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	tags := map[string]string{
		"status": status,
	}
	if source != "" {
		tags["source"] = string(source)
	}

	r.recordCounter(ctx, "datacontext.resolve.total", 1, tags)
	r.recordHistogram(ctx, "datacontext.resolve.duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)

	if err != nil {
		r.logError(ctx, "context resolution failed", fields)
		return
	}
	r.logDebug(ctx, "context resolution succeeded", fields)
}

func (r *Resolver) logDebug(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "debug", message, fields)
}

func (r *Resolver) logWarn(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "warn", message, fields)
}

func (r *Resolver) logError(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "error", message, fields)
}

func (r *Resolver) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if r == nil || r.logger == nil {
		return
	}
	logger := r.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch level {
	case "error":
		logger.Error(message, args...)
	case "warn":
		logger.Warn(message, args...)
	default:
		logger.Debug(message, args...)
	}
}

func (r *Resolver) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if r == nil || r.metricsRecorder == nil {
		return
	}
	r.metricsRecorder.IncCounter(ctx, name, value, cloneTags(tags))
}

func (r *Resolver) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if r == nil || r.metricsRecorder == nil {
		return
	}
	r.metricsRecorder.ObserveHistogram(ctx, name, value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
