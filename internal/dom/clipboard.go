package dom

import (
	"context"
	"sync"
)

// MemoryClipboard is an in-process Clipboard used by tests and the CLIs,
// where there is no hosting browser to receive the fallback copy.
type MemoryClipboard struct {
	mu    sync.Mutex
	texts []string
	err   error
}

// NewMemoryClipboard creates an empty in-memory clipboard
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

// FailWith makes every subsequent write return err
func (c *MemoryClipboard) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// WriteText records the text, or returns the configured failure
func (c *MemoryClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

// Texts returns every text written so far
func (c *MemoryClipboard) Texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.texts))
	copy(out, c.texts)
	return out
}
