package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/apperr"
	"campusd/internal/storage"
	"campusd/internal/structures"
	"campusd/internal/testutil"
)

func TestSnapshotWritesArchive(t *testing.T) {
	dir := t.TempDir()
	store := testutil.NewMockStore()
	store.Seed("users", storage.Record{"id": "u1", "name": "Ada"})

	conf := &structures.Config{}
	conf.Archive.Dir = dir
	svc := NewArchiveService(store, &testutil.MockCompressor{}, conf, &testutil.MockLogger{}).(*ArchiveService)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	name, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "campus-20260310-090000.json.zst", name)

	// The identity mock compressor leaves plain JSON on disk.
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	var snapshot map[string][]storage.Record
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Len(t, snapshot, len(storage.Collections))
	require.Len(t, snapshot["users"], 1)
	assert.Equal(t, "u1", snapshot["users"][0].ID())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no tmp file left behind")
}

func TestSnapshotUnconfigured(t *testing.T) {
	svc := NewArchiveService(testutil.NewMockStore(), &testutil.MockCompressor{}, &structures.Config{}, &testutil.MockLogger{})

	_, err := svc.Snapshot()
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLoadRoundTripsSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := testutil.NewMockStore()
	store.Seed("users", storage.Record{"id": "u1", "name": "Ada"})

	conf := &structures.Config{}
	conf.Archive.Dir = dir
	svc := NewArchiveService(store, &testutil.MockCompressor{}, conf, &testutil.MockLogger{})

	name, err := svc.Snapshot()
	require.NoError(t, err)

	data, err := svc.Load(name)
	require.NoError(t, err)

	var snapshot map[string][]storage.Record
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Len(t, snapshot["users"], 1)
	assert.Equal(t, "u1", snapshot["users"][0].ID())
}

func TestLoadRejectsBadNames(t *testing.T) {
	conf := &structures.Config{}
	conf.Archive.Dir = t.TempDir()
	svc := NewArchiveService(testutil.NewMockStore(), &testutil.MockCompressor{}, conf, &testutil.MockLogger{})

	for _, name := range []string{"../secrets.json.zst", "/etc/passwd", "campus.txt", ""} {
		_, err := svc.Load(name)
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

func TestLoadMissingArchive(t *testing.T) {
	conf := &structures.Config{}
	conf.Archive.Dir = t.TempDir()
	svc := NewArchiveService(testutil.NewMockStore(), &testutil.MockCompressor{}, conf, &testutil.MockLogger{})

	_, err := svc.Load("campus-20990101-000000.json.zst")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
