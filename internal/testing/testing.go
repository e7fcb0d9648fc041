// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/crate/internal/store"
)

// FlakyStore wraps a [store.Store] and fails reads or writes on demand.
type FlakyStore struct {
	store.Store

	mu      sync.Mutex
	getErr  error
	putErr  error
	puts    int
	lastPut []byte
}

// NewFlakyStore wraps an empty [store.Memory].
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{Store: store.NewMemory()}
}

// FailReads makes every Get return err until cleared with nil.
func (f *FlakyStore) FailReads(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// FailWrites makes every Put return err until cleared with nil.
func (f *FlakyStore) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putErr = err
}

func (f *FlakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return f.Store.Get(ctx, key)
}

func (f *FlakyStore) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	err := f.putErr
	f.puts++
	f.mu.Unlock()

	if err != nil {
		return err
	}

	f.mu.Lock()
	f.lastPut = append([]byte(nil), value...)
	f.mu.Unlock()
	return f.Store.Put(ctx, key, value)
}

// Puts reports how many writes were attempted, including failed ones.
func (f *FlakyStore) Puts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

// LastPut returns the most recent successfully written value.
func (f *FlakyStore) LastPut() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.lastPut)
}

// ErrQuotaExceeded stands in for a full or unavailable backing store.
var ErrQuotaExceeded = errors.New("quota exceeded")

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

var _ io.Writer = (*FWriter)(nil)

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}
