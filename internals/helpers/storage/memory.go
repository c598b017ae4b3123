package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// Noop is used when no object store is configured.
type Noop struct{}

func (Noop) Name() string { return "none" }

func (Noop) Upload(context.Context, string, string, io.Reader, int64, string) (string, error) {
	return "", ErrNotConfigured
}

func (Noop) Delete(context.Context, string, string) error { return ErrNotConfigured }
func (Noop) PublicURL(string, string) string              { return "" }
func (Noop) PathFromURL(string, string) (string, bool)    { return "", false }

// Memory keeps objects in process; used by tests and local runs.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	FailOn  string // path prefix whose uploads fail
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Upload(_ context.Context, bucket, path string, body io.Reader, _ int64, contentType string) (string, error) {
	if m.FailOn != "" && strings.HasPrefix(path, m.FailOn) {
		return "", errors.New("memory store: injected upload failure")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+path] = buf.Bytes()
	m.types[bucket+"/"+path] = contentType
	return m.PublicURL(bucket, path), nil
}

func (m *Memory) Delete(_ context.Context, bucket, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucket+"/"+path)
	delete(m.types, bucket+"/"+path)
	return nil
}

func (m *Memory) PublicURL(bucket, path string) string {
	return "memory://" + bucket + "/" + path
}

func (m *Memory) PathFromURL(bucket, publicURL string) (string, bool) {
	prefix := "memory://" + bucket + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, prefix), true
}

// Keys lists stored "bucket/path" keys.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}

func (m *Memory) ContentType(bucket, path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.types[bucket+"/"+path]
}
