package testutil

import (
	"bytes"
	"strings"
	"sync"
)

// ThreadSafeBuffer collects log output written from server goroutines
type ThreadSafeBuffer struct {
	buffer bytes.Buffer
	mutex  sync.Mutex
}

// Write implements io.Writer
func (b *ThreadSafeBuffer) Write(p []byte) (n int, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.Write(p)
}

// String returns the accumulated output
func (b *ThreadSafeBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.String()
}

// Contains reports whether the accumulated output contains substr
func (b *ThreadSafeBuffer) Contains(substr string) bool {
	return strings.Contains(b.String(), substr)
}
