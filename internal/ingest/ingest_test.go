package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/rider-parser/internal/common"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "Towels x 2")
	writeFile(t, filepath.Join(dir, "b.md"), "# Hospitality")
	writeFile(t, filepath.Join(dir, "c.pdf"), "%PDF")
	writeFile(t, filepath.Join(dir, ".drafts", "x.txt"), "draft")
	writeFile(t, filepath.Join(dir, "sub", "d.TEXT"), "Ice")

	docs, stats, err := Collect([]string{dir}, true)
	require.NoError(t, err)

	var paths []string
	for _, d := range docs {
		paths = append(paths, d.Path)
	}
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "sub", "d.TEXT"),
	}, paths)
	assert.Equal(t, "Towels x 2", docs[0].Text)
	assert.Equal(t, uint32(3), stats.Matched)
	assert.Zero(t, stats.Failed)

	docs, _, err = Collect([]string{dir}, false)
	require.NoError(t, err)
	assert.Len(t, docs, 4)
}

func TestCollect_Files(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "rider.txt")
	pdf := filepath.Join(dir, "rider.pdf")
	writeFile(t, txt, "Towels")
	writeFile(t, pdf, "%PDF")

	docs, _, err := Collect([]string{txt}, false)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	_, _, err = Collect([]string{pdf}, false)
	require.Error(t, err)
	assert.Equal(t, common.CodeInvalidInput, common.CodeOf(err))

	_, _, err = Collect([]string{filepath.Join(dir, "missing.txt")}, false)
	require.Error(t, err)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("/a/.git"))
	assert.False(t, IsHidden("/a/b.txt"))
	assert.False(t, IsHidden("."))
}

func TestStartWatcher(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	writeFile(t, existing, "Towels")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	next := func() string {
		select {
		case p := <-events:
			return p
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for watcher event")
			return ""
		}
	}
	assert.Equal(t, existing, next())

	dropped := filepath.Join(dir, "new.md")
	writeFile(t, dropped, "Ice")
	writeFile(t, filepath.Join(dir, "ignored.pdf"), "%PDF")
	assert.Equal(t, dropped, next())

	cancel()
	for range events {
	}
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	require.Error(t, err)
}
