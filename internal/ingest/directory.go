// Package ingest finds rider text files on disk, either once (Collect) or
// continuously as they are dropped into a folder (StartWatcher).
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/rider-parser/constants"
	"github.com/joseph-ayodele/rider-parser/internal/common"
)

// MaxFileSize caps a single rider file.
const MaxFileSize = 10 * 1024 * 1024

// Document is one rider file read from disk.
type Document struct {
	Path string
	Text string
}

type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// Collect reads every path. Files must have an allowed extension; directories are
// walked and only allowed files inside are taken, hidden entries skipped when asked.
// Unreadable entries under a directory are counted as failed and skipped.
func Collect(paths []string, skipHidden bool) ([]Document, DirStats, error) {
	var docs []Document
	var stats DirStats

	for _, root := range paths {
		if strings.TrimSpace(root) == "" {
			return nil, stats, errors.New("empty path")
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, stats, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			stats.Scanned++
			if !constants.IsAllowedExt(filepath.Ext(root)) {
				return nil, stats, common.InvalidInputErrorf("unsupported file type %q (want .txt, .text or .md)", root)
			}
			doc, err := ReadDocument(root)
			if err != nil {
				return nil, stats, err
			}
			stats.Matched++
			docs = append(docs, doc)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			stats.Scanned++
			if walkErr != nil {
				stats.Failed++
				return nil // continue walking
			}
			if skipHidden && path != root && IsHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !constants.IsAllowedExt(filepath.Ext(path)) {
				return nil
			}
			stats.Matched++
			doc, err := ReadDocument(path)
			if err != nil {
				stats.Failed++
				return nil
			}
			docs = append(docs, doc)
			return nil
		})
		if err != nil {
			return docs, stats, fmt.Errorf("walk: %w", err)
		}
	}
	return docs, stats, nil
}

// ReadDocument reads one rider file, refusing files over MaxFileSize.
func ReadDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return Document{}, common.InvalidInputErrorf("%s exceeds %d bytes", path, MaxFileSize)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Document{Path: path, Text: string(b)}, nil
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
