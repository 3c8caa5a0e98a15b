package filesystem

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/flarexio/agrimithra"
)

const (
	VectorCacheFile = "embeddings.gob"
	IndexFile       = "index.gob"
)

// NewRepository stores one JSON file per document under
// <path>/<category>/<key>.json and the vector cache next to them.
func NewRepository(path string) (*Repository, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}

	return &Repository{
		path: path,
		log: zap.L().With(
			zap.String("repository", "filesystem"),
			zap.String("path", path),
		),
	}, nil
}

type Repository struct {
	path string
	log  *zap.Logger
}

func (repo *Repository) Path() string {
	return repo.path
}

// Documents reads every category directory in name order. Unreadable
// files are skipped and logged.
func (repo *Repository) Documents(ctx context.Context) ([]agrimithra.Document, error) {
	entries, err := os.ReadDir(repo.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []agrimithra.Document{}, nil
		}

		return nil, err
	}

	docs := make([]agrimithra.Document, 0)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		category := entry.Name()

		files, err := filepath.Glob(filepath.Join(repo.path, category, "*.json"))
		if err != nil {
			return nil, err
		}

		slices.Sort(files)

		for _, file := range files {
			doc, err := readDocument(file)
			if err != nil {
				repo.log.Warn("document skipped",
					zap.String("file", file),
					zap.Error(err),
				)

				continue
			}

			if doc.Category == "" {
				doc.Category = agrimithra.Category(category)
			}

			docs = append(docs, doc)
		}
	}

	return docs, nil
}

func readDocument(file string) (agrimithra.Document, error) {
	var doc agrimithra.Document

	f, err := os.Open(file)
	if err != nil {
		return doc, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return doc, err
	}

	if doc.Title == "" {
		return doc, agrimithra.ErrInvalidDocument
	}

	return doc, nil
}

// Store writes the document file. An existing file for the same key is
// never overwritten.
func (repo *Repository) Store(ctx context.Context, doc agrimithra.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	category := doc.Category
	if category == "" {
		category = agrimithra.CategoryGeneral
	}

	dir := filepath.Join(repo.path, string(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	file := filepath.Join(dir, doc.Key()+".json")

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", agrimithra.ErrDocumentExists, doc.Title)
		}

		return err
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(&doc); err != nil {
		f.Close()
		os.Remove(file)
		return err
	}

	return f.Close()
}

func (repo *Repository) LoadVectors(ctx context.Context) (*agrimithra.VectorCache, error) {
	f, err := os.Open(filepath.Join(repo.path, VectorCacheFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, agrimithra.ErrCacheNotFound
		}

		return nil, err
	}
	defer f.Close()

	var cache agrimithra.VectorCache
	if err := gob.NewDecoder(f).Decode(&cache); err != nil {
		return nil, err
	}

	if len(cache.Keys) != len(cache.Vectors) {
		return nil, agrimithra.ErrIndexCorpusMismatch
	}

	return &cache, nil
}

// SaveVectors replaces the cache file atomically.
func (repo *Repository) SaveVectors(ctx context.Context, cache *agrimithra.VectorCache) error {
	tmp, err := os.CreateTemp(repo.path, VectorCacheFile+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(cache); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(repo.path, VectorCacheFile))
}
