package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Backend loads and saves the whole document.
type Backend interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}

// FileBackend keeps the document in a single JSON file.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the document, creating the file with empty arrays if it does
// not exist yet. An empty file is treated as an empty document.
func (b *FileBackend) Load(ctx context.Context) (*Document, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		doc := NewDocument()
		if err := b.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	doc := NewDocument()
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.path, err)
	}
	doc.normalize()
	return doc, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers see either the old or the new document.
func (b *FileBackend) Save(_ context.Context, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}

// MemoryBackend keeps the document in process memory.
type MemoryBackend struct {
	mu  sync.Mutex
	doc *Document
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{doc: NewDocument()}
}

func (b *MemoryBackend) Load(_ context.Context) (*Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.clone(), nil
}

func (b *MemoryBackend) Save(_ context.Context, doc *Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc = doc.clone()
	return nil
}
