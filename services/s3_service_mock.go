package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MockObjectStore keeps objects in memory; used by tests in place of S3
type MockObjectStore struct {
	mu        sync.RWMutex
	objects   map[string]mockObject
	presigned int
}

type mockObject struct {
	contentType string
	body        []byte
}

// NewMockObjectStore returns an empty store
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{objects: make(map[string]mockObject)}
}

// Put records body under key
func (m *MockObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(content)) != size {
		return fmt.Errorf("size mismatch for %s: declared %d, read %d", key, size, len(content))
	}

	m.mu.Lock()
	m.objects[key] = mockObject{contentType: contentType, body: content}
	m.mu.Unlock()
	return nil
}

// PresignGet fails for keys that were never stored. Each URL carries a distinct signature.
func (m *MockObjectStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return "", fmt.Errorf("object not found: %s", key)
	}
	m.presigned++
	return fmt.Sprintf("https://mock-bucket.s3.amazonaws.com/%s?X-Amz-Expires=%d&X-Amz-Signature=mock%d",
		key, int(ttl.Seconds()), m.presigned), nil
}

// PresignCount returns how many URLs have been signed
func (m *MockObjectStore) PresignCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.presigned
}

// Has reports whether key was stored
func (m *MockObjectStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

// ContentType returns the content type key was stored with
func (m *MockObjectStore) ContentType(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objects[key].contentType
}

// Keys lists every stored key
func (m *MockObjectStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	return keys
}
