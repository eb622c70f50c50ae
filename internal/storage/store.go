package storage

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"campusd/internal/apperr"
	"campusd/internal/providers"
	"campusd/internal/structures"
)

// Collections persisted by the portal. NewFileStore seeds an empty artifact
// for each so a fresh data directory is immediately servable.
var Collections = []string{
	"users", "courses", "timetable",
	"assignments", "submissions", "grades",
	"rooms", "bookings",
	"attendance", "qrcodes",
	"announcements",
}

type StoreInterface interface {
	GetAll(collection string) []Record
	GetByID(collection, id string) (Record, bool)
	GetByField(collection, field string, value any) []Record
	Query(collection string, filters map[string]any) []Record
	Create(collection string, rec Record) (Record, error)
	Update(collection, id string, fields map[string]any) (Record, bool, error)
	Delete(collection, id string) (bool, error)
	Count(collection string, filters map[string]any) int
}

// FileStore keeps one JSON artifact per collection under dataDir. Every
// mutation rewrites the whole collection through a .tmp file that is
// renamed over the target, so readers only ever observe complete snapshots.
// A per-collection mutex serializes read-modify-write cycles; the store is
// still a single-process design (no cross-process locking).
type FileStore struct {
	dataDir     string
	keepBackups bool
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (*FileStore, error) {
	fs := &FileStore{
		dataDir:     conf.Storage.DataDir,
		keepBackups: conf.Storage.KeepBackups,
		logger:      logger,
		metrics:     metrics,
		locks:       make(map[string]*sync.Mutex),
	}

	if err := os.MkdirAll(fs.dataDir, 0o755); err != nil {
		return nil, err
	}
	for _, name := range Collections {
		path := fs.filePath(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := fs.writeFile(name, []Record{}); err != nil {
				return nil, err
			}
		}
	}
	return fs, nil
}

func (fs *FileStore) filePath(collection string) string {
	return filepath.Join(fs.dataDir, collection+".json")
}

func (fs *FileStore) lock(collection string) *sync.Mutex {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	l, ok := fs.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		fs.locks[collection] = l
	}
	return l
}

// readFile loads the full collection snapshot. A missing artifact is an
// empty collection; an unreadable or corrupt one is logged and likewise
// treated as empty so read paths stay total.
func (fs *FileStore) readFile(collection string) []Record {
	data, err := os.ReadFile(fs.filePath(collection))
	if err != nil {
		if !os.IsNotExist(err) {
			fs.logger.Errorf(providers.TypeApp, "Collection %s unreadable, serving empty: %s", collection, err)
		}
		return []Record{}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		fs.logger.Errorf(providers.TypeApp, "Collection %s corrupt, serving empty: %s", collection, err)
		return []Record{}
	}
	return records
}

// writeFile persists the full snapshot: optional backup of the committed
// artifact, then write+fsync to a .tmp sibling, then atomic rename.
func (fs *FileStore) writeFile(collection string, records []Record) error {
	start := time.Now()
	path := fs.filePath(collection)

	if fs.keepBackups {
		if prev, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+".backup", prev, 0o644); err != nil {
				fs.logger.Warnf(providers.TypeApp, "Backup of %s failed: %s", collection, err)
			}
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperr.StorageWrite("marshal "+collection, err)
	}

	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return apperr.StorageWrite("create tmp for "+collection, err)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return apperr.StorageWrite("write "+collection, err)
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return apperr.StorageWrite("sync "+collection, err)
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpPath)
		return apperr.StorageWrite("close "+collection, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return apperr.StorageWrite("rename "+collection, err)
	}

	fs.metrics.ObservePersistenceDuration(time.Since(start))
	fs.metrics.SetRecordsTotal(collection, len(records))
	return nil
}

func (fs *FileStore) GetAll(collection string) []Record {
	return fs.readFile(collection)
}

func (fs *FileStore) GetByID(collection, id string) (Record, bool) {
	for _, rec := range fs.readFile(collection) {
		if rec.ID() == id {
			return rec, true
		}
	}
	return nil, false
}

func (fs *FileStore) GetByField(collection, field string, value any) []Record {
	matched := []Record{}
	for _, rec := range fs.readFile(collection) {
		if valuesEqual(rec[field], value) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func (fs *FileStore) Query(collection string, filters map[string]any) []Record {
	matched := []Record{}
	for _, rec := range fs.readFile(collection) {
		if rec.Matches(filters) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// Create appends the record and persists the collection. When the record
// carries no id the store assigns a fresh UUID before persisting.
func (fs *FileStore) Create(collection string, rec Record) (Record, error) {
	l := fs.lock(collection)
	l.Lock()
	defer l.Unlock()

	if rec.ID() == "" {
		rec["id"] = uuid.NewString()
	}

	records := fs.readFile(collection)
	records = append(records, rec)
	if err := fs.writeFile(collection, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update shallow-merges fields into the record with the given id. The bool
// result reports whether the record existed; no write happens when it did
// not.
func (fs *FileStore) Update(collection, id string, fields map[string]any) (Record, bool, error) {
	l := fs.lock(collection)
	l.Lock()
	defer l.Unlock()

	records := fs.readFile(collection)
	for i, rec := range records {
		if rec.ID() != id {
			continue
		}
		merged := rec.Clone()
		for k, v := range fields {
			merged[k] = v
		}
		records[i] = merged
		if err := fs.writeFile(collection, records); err != nil {
			return nil, true, err
		}
		return merged, true, nil
	}
	return nil, false, nil
}

func (fs *FileStore) Delete(collection, id string) (bool, error) {
	l := fs.lock(collection)
	l.Lock()
	defer l.Unlock()

	records := fs.readFile(collection)
	kept := records[:0]
	for _, rec := range records {
		if rec.ID() != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := fs.writeFile(collection, kept); err != nil {
		return true, err
	}
	return true, nil
}

func (fs *FileStore) Count(collection string, filters map[string]any) int {
	if len(filters) > 0 {
		return len(fs.Query(collection, filters))
	}
	return len(fs.readFile(collection))
}
