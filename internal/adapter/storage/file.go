package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileKV persists the key-value map as a single JSON file. A missing or
// corrupt file is treated as empty state, never as an error: corrupted local
// storage must not take the client down.
type FileKV struct {
	path string
	mu   sync.Mutex
	data map[string]json.RawMessage
}

func NewFileKV(path string) *FileKV {
	kv := &FileKV{path: path, data: map[string]json.RawMessage{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		return kv
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return kv
	}
	kv.data = data
	return kv
}

func (kv *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	value, ok := kv.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

func (kv *FileKV) Set(ctx context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.data[key] = json.RawMessage(value)
	return kv.flush()
}

func (kv *FileKV) Delete(ctx context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if _, ok := kv.data[key]; !ok {
		return nil
	}
	delete(kv.data, key)
	return kv.flush()
}

// flush writes through a temp file so a crash mid-write cannot corrupt the
// stored state. Caller holds the lock.
func (kv *FileKV) flush() error {
	raw, err := json.Marshal(kv.data)
	if err != nil {
		return fmt.Errorf("failed to marshal local state: %w", err)
	}
	tmp := kv.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write local state: %w", err)
	}
	if err := os.Rename(tmp, kv.path); err != nil {
		return fmt.Errorf("failed to replace local state file: %w", err)
	}
	return nil
}
