package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestSpinnerRendersLatestMessage(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf)
	s.Start("first")
	s.Update("fetching page 2")

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "fetching page 2")
	}, 2*time.Second, 20*time.Millisecond)

	s.Stop()
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))

	// stopping twice is harmless
	s.Stop()
}
