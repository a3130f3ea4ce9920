package testutils

import (
	"context"
	"strings"
	"sync"

	"skb_backend/internals/helpers/media"
)

// MemoryStorage keeps uploads in a map keyed by public URL.
type MemoryStorage struct {
	mu    sync.Mutex
	Files map[string][]byte
	// FailPut makes every Put fail with this error.
	FailPut error
}

var _ media.Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Files: map[string][]byte{}}
}

func (m *MemoryStorage) Put(ctx context.Context, folder, filename string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut != nil {
		return "", m.FailPut
	}
	url := "/uploads/" + media.GenerateUniqueFilename(folder, filename)
	m.Files[url] = append([]byte(nil), data...)
	return url, nil
}

func (m *MemoryStorage) Delete(ctx context.Context, publicURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Files, publicURL)
	return nil
}

func (m *MemoryStorage) Count(folder string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for url := range m.Files {
		if strings.HasPrefix(url, "/uploads/"+folder+"/") {
			n++
		}
	}
	return n
}
