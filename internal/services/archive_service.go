package services

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"campusd/internal/apperr"
	"campusd/internal/providers"
	"campusd/internal/storage"
	"campusd/internal/structures"
)

type ArchiveServiceInterface interface {
	Snapshot() (string, error)
	Load(name string) ([]byte, error)
}

// ArchiveService writes a zstd-compressed snapshot of every collection to
// the archive directory. Snapshots use the same tmp-then-rename protocol as
// the store so a partially written archive is never left behind.
type ArchiveService struct {
	store      storage.StoreInterface
	compressor providers.CompressorInterface
	logger     providers.Logger
	dir        string
	now        func() time.Time
}

func NewArchiveService(store storage.StoreInterface, compressor providers.CompressorInterface, conf *structures.Config, logger providers.Logger) ArchiveServiceInterface {
	return &ArchiveService{
		store:      store,
		compressor: compressor,
		logger:     logger,
		dir:        conf.Archive.Dir,
		now:        time.Now,
	}
}

func (s *ArchiveService) Snapshot() (string, error) {
	if s.dir == "" {
		return "", apperr.Validation("archiving is not configured")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperr.StorageWrite("create archive dir", err)
	}

	snapshot := make(map[string][]storage.Record, len(storage.Collections))
	for _, name := range storage.Collections {
		snapshot[name] = s.store.GetAll(name)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", apperr.StorageWrite("marshal snapshot", err)
	}
	compressed, err := s.compressor.Compress(data)
	if err != nil {
		return "", apperr.StorageWrite("compress snapshot", err)
	}

	name := "campus-" + s.now().Format("20060102-150405") + ".json.zst"
	path := filepath.Join(s.dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, compressed, 0o644); err != nil {
		return "", apperr.StorageWrite("write snapshot", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", apperr.StorageWrite("rename snapshot", err)
	}

	s.logger.Infof(providers.TypeApp, "Archived %d collections to %s", len(snapshot), name)
	return name, nil
}

// Load reads a snapshot back and returns the decompressed JSON. The name
// must be a bare snapshot file name; anything with path separators or a
// foreign extension is rejected before touching the filesystem.
func (s *ArchiveService) Load(name string) ([]byte, error) {
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".json.zst") {
		return nil, apperr.Validation("invalid archive name")
	}

	compressed, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound("archive " + name)
		}
		return nil, apperr.StorageWrite("read snapshot", err)
	}

	data, err := s.compressor.Decompress(compressed)
	if err != nil {
		return nil, apperr.StorageWrite("decompress snapshot", err)
	}
	return data, nil
}
