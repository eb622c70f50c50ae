package testutil

import (
	"sync"
	"time"

	"campusd/internal/apperr"
	"campusd/internal/providers"
	"campusd/internal/storage"

	"github.com/google/uuid"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any recorded entry matches the level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockStore implements storage.StoreInterface in memory. FailWrites makes
// every mutation return apperr.ErrStorageWrite, for exercising the storage
// failure paths without a filesystem.
type MockStore struct {
	mu         sync.Mutex
	Data       map[string][]storage.Record
	FailWrites bool
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string][]storage.Record)}
}

// Seed replaces a collection's contents. Intended for test setup only.
func (m *MockStore) Seed(collection string, records ...storage.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[collection] = records
}

func (m *MockStore) GetAll(collection string) []storage.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storage.Record, 0, len(m.Data[collection]))
	for _, rec := range m.Data[collection] {
		out = append(out, rec.Clone())
	}
	return out
}

func (m *MockStore) GetByID(collection, id string) (storage.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.Data[collection] {
		if rec.ID() == id {
			return rec.Clone(), true
		}
	}
	return nil, false
}

func (m *MockStore) GetByField(collection, field string, value any) []storage.Record {
	return m.Query(collection, map[string]any{field: value})
}

func (m *MockStore) Query(collection string, filters map[string]any) []storage.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.Record
	for _, rec := range m.Data[collection] {
		if rec.Matches(filters) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

func (m *MockStore) Create(collection string, rec storage.Record) (storage.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return nil, apperr.StorageWrite(collection, errMockWrite)
	}
	stored := rec.Clone()
	if stored.ID() == "" {
		stored["id"] = uuid.NewString()
	}
	m.Data[collection] = append(m.Data[collection], stored)
	return stored.Clone(), nil
}

func (m *MockStore) Update(collection, id string, fields map[string]any) (storage.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return nil, false, apperr.StorageWrite(collection, errMockWrite)
	}
	for i, rec := range m.Data[collection] {
		if rec.ID() == id {
			merged := rec.Clone()
			for k, v := range fields {
				merged[k] = v
			}
			m.Data[collection][i] = merged
			return merged.Clone(), true, nil
		}
	}
	return nil, false, nil
}

func (m *MockStore) Delete(collection, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return false, apperr.StorageWrite(collection, errMockWrite)
	}
	for i, rec := range m.Data[collection] {
		if rec.ID() == id {
			m.Data[collection] = append(m.Data[collection][:i], m.Data[collection][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) Count(collection string, filters map[string]any) int {
	return len(m.Query(collection, filters))
}

var errMockWrite = errWrite("simulated write failure")

type errWrite string

func (e errWrite) Error() string { return string(e) }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        int
	Endpoints       map[string]int
	CacheHits       int
	CacheMisses     int
	Persists        int
	RecordCounts    map[string]int
	AttendanceMarks map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Endpoints:       make(map[string]int),
		RecordCounts:    make(map[string]int),
		AttendanceMarks: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
	m.Endpoints[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) SetRecordsTotal(collection string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCounts[collection] = count
}

func (m *MockMetrics) IncAttendanceMarks(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AttendanceMarks[result]++
}

// MockCompressor implements providers.CompressorInterface with injectable
// behavior. Defaults to identity.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
