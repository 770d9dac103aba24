package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Persister loads and saves the application document. Saves are
// fire-and-forget: the in-memory state is authoritative and the write
// happens on a background goroutine, coalescing bursts so only the latest
// snapshot reaches the store. A crash between transition and flush loses
// at most the most recent transitions.
type Persister struct {
	kv  KV
	key string

	mu      sync.Mutex
	pending []byte
	writing bool
	lastErr error
	wg      sync.WaitGroup
}

// NewPersister creates a persister over the given KV store.
func NewPersister(kv KV) *Persister {
	return &Persister{kv: kv, key: StateKey}
}

// Load reads and decodes the persisted document. A missing key returns
// (nil, nil): first run, the caller seeds a fresh document.
func (p *Persister) Load(ctx context.Context) (*Document, error) {
	raw, err := p.kv.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return Decode(raw)
}

// Save schedules an asynchronous write of the document. Serialization
// happens synchronously so the caller's snapshot is what gets written.
func (p *Persister) Save(doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	p.mu.Lock()
	p.pending = data
	if !p.writing {
		p.writing = true
		p.wg.Add(1)
		go p.flushLoop()
	}
	p.mu.Unlock()
	return nil
}

// flushLoop writes pending snapshots until none remain, always taking the
// newest one.
func (p *Persister) flushLoop() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		data := p.pending
		p.pending = nil
		if data == nil {
			p.writing = false
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		if err := p.kv.Set(context.Background(), p.key, data); err != nil {
			p.mu.Lock()
			p.lastErr = err
			p.mu.Unlock()
		}
	}
}

// Flush blocks until all scheduled writes have completed.
func (p *Persister) Flush() {
	p.wg.Wait()
}

// Err returns the most recent background write error, if any.
func (p *Persister) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
