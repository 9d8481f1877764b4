// Package filestorage is the local JSON file backend. Every resource is one
// JSON document under the data directory, rewritten whole on each write.
//
// There is no locking between requests: two concurrent writers to the same
// file can lose one of the updates. This is acceptable for a single-instance
// admin tool and is not safe across processes sharing the directory.
package filestorage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Имена файлов в каталоге данных
const (
	FileDestinations      = "destinations.json"
	FileTours             = "tours.json"
	FileBlogPosts         = "blog-posts.json"
	FileDestinationExtras = "destination-extras.json"
	FileSiteContent       = "site-content.json"
)

// Store указывает на каталог с JSON файлами. Каталог создается лениво при первой записи.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Collection(name string, ids IDPolicy) *Collection {
	return &Collection{path: filepath.Join(s.dir, name), ids: ids}
}

func (s *Store) Extras(name string) *Extras {
	return &Extras{path: filepath.Join(s.dir, name)}
}

func (s *Store) Document(name string) *Document {
	return &Document{path: filepath.Join(s.dir, name)}
}

// readJSON decodes path into v. A missing file leaves v untouched and is not an error.
func readJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON replaces path atomically: the document is written to a temp file
// in the same directory and renamed over the target.
func writeJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
