package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// memoryTier is the fixed-capacity in-memory layer. The LRU bounds the item
// count; the tier additionally enforces a byte budget by evicting oldest
// entries after each insert.
type memoryTier struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, []byte]
	bytes    int
	maxBytes int
}

func newMemoryTier(maxItems, maxBytes int) (*memoryTier, error) {
	tier := &memoryTier{maxBytes: maxBytes}
	entries, err := lru.NewWithEvict(maxItems, func(_ string, value []byte) {
		tier.bytes -= len(value)
	})
	if err != nil {
		return nil, err
	}
	tier.entries = entries
	return tier, nil
}

func (t *memoryTier) Get(key string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries.Get(key)
}

// Add inserts the value and returns how many entries were evicted to honor
// the item and byte budgets. Values larger than the byte budget are not
// admitted at all; any previous value under the same key is dropped so a
// refused admission cannot leave a stale entry behind.
func (t *memoryTier) Add(key string, value []byte) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(value) > t.maxBytes {
		evicted := 0
		if t.entries.Remove(key) {
			evicted++
		}
		return evicted
	}

	evicted := 0
	if prev, ok := t.entries.Peek(key); ok {
		t.bytes -= len(prev)
	}
	if t.entries.Add(key, value) {
		evicted++
	}
	t.bytes += len(value)

	for t.bytes > t.maxBytes && t.entries.Len() > 1 {
		if _, _, ok := t.entries.RemoveOldest(); !ok {
			break
		}
		evicted++
	}
	return evicted
}

func (t *memoryTier) Remove(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries.Remove(key)
}

func (t *memoryTier) Keys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries.Keys()
}

func (t *memoryTier) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries.Len()
}

func (t *memoryTier) Bytes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bytes
}
