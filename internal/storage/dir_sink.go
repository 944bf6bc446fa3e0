package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives one JSON document per exported collection.
type Sink interface {
	Write(ctx context.Context, name string, data interface{}) error
	// Location describes where name ends up, for operator output.
	Location(name string) string
}

// DirSink writes collections as indented JSON files in a local directory.
type DirSink struct {
	mu  sync.Mutex
	dir string
}

// NewDirSink creates dir if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DirSink{dir: dir}, nil
}

func (s *DirSink) Location(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Write replaces <dir>/<name>.json atomically.
func (s *DirSink) Write(ctx context.Context, name string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Location(name)
	tempFile := path + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		file.Close()
		os.Remove(tempFile)
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, path)
}

// ReadFile decodes a file previously written by a DirSink.
func ReadFile(path string, out interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(out)
}
