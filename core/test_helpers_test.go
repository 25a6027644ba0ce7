package core

import (
	"context"
	"sync"
)

type orderRecord struct {
	ID    string
	Total int64
}

type invoiceRecord struct {
	ID     string
	Number string
}

type ledgerRecord struct {
	ID      string
	Balance int64
}

type testDescriptor struct {
	name  string
	model []EntityType
	err   error

	mu         sync.Mutex
	modelCalls int
}

func (d *testDescriptor) Name() string { return d.name }

func (d *testDescriptor) Model(context.Context) ([]EntityType, error) {
	d.mu.Lock()
	d.modelCalls++
	d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	return append([]EntityType(nil), d.model...), nil
}

func (d *testDescriptor) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modelCalls
}

type testContext struct {
	name  string
	model []EntityType
}

func (c *testContext) Name() string { return c.name }

func (c *testContext) Model() []EntityType { return append([]EntityType(nil), c.model...) }

func (c *testContext) Contains(entityType EntityType) bool {
	for _, owned := range c.model {
		if owned == entityType {
			return true
		}
	}
	return false
}

type testFactory struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *testFactory) InstanceFor(_ context.Context, descriptor ContextDescriptor) (DataContext, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	model, _ := descriptor.Model(context.Background())
	return &testContext{name: descriptor.Name(), model: model}, nil
}

func (f *testFactory) instanceCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type capturedCounter struct {
	name  string
	value int64
	tags  map[string]string
}

type capturedHistogram struct {
	name  string
	value float64
	tags  map[string]string
}

type captureMetricsRecorder struct {
	mu         sync.Mutex
	counters   []capturedCounter
	histograms []capturedHistogram
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, value: value, tags: cloneTags(tags)})
}

func (m *captureMetricsRecorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms = append(m.histograms, capturedHistogram{name: name, value: value, tags: cloneTags(tags)})
}

func (m *captureMetricsRecorder) counterSnapshot() []capturedCounter {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]capturedCounter, len(m.counters))
	copy(out, m.counters)
	return out
}

type capturedLog struct {
	level  string
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu       *sync.Mutex
	records  *[]capturedLog
	defaults map[string]any
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records, defaults: map[string]any{}}
}

func (l *captureLogger) WithFields(fields map[string]any) Logger {
	merged := cloneFieldMap(l.defaults)
	for key, value := range fields {
		merged[key] = value
	}
	return &captureLogger{mu: l.mu, records: l.records, defaults: merged}
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *captureLogger) WithContext(context.Context) Logger {
	return &captureLogger{mu: l.mu, records: l.records, defaults: cloneFieldMap(l.defaults)}
}

func (l *captureLogger) record(level string, msg string, args ...any) {
	fields := cloneFieldMap(l.defaults)
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) snapshot() []capturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := *l.records
	out := make([]capturedLog, len(items))
	copy(out, items)
	return out
}

func (l *captureLogger) countLevel(level string) int {
	count := 0
	for _, entry := range l.snapshot() {
		if entry.level == level {
			count++
		}
	}
	return count
}

func cloneFieldMap(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}
