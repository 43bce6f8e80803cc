package index

import (
	"sync"
)

// countCache memoizes pattern counts. Crossing analysis re-asks the
// same slight pattern variants constantly, so even a small cache has
// a high hit rate. The cache belongs to one Index and is discarded
// with it when the corpus changes; there is no incremental
// invalidation to get wrong.
type countCache struct {
	counts      map[Pattern]int
	accessTime  map[Pattern]int64
	accessCount int64
	maxEntries  int
	mu          sync.Mutex
}

func newCountCache(maxEntries int) *countCache {
	return &countCache{
		counts:     make(map[Pattern]int, maxEntries),
		accessTime: make(map[Pattern]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func (cc *countCache) get(p Pattern) (int, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	n, ok := cc.counts[p]
	if ok {
		cc.accessTime[p] = cc.nextAccessTime()
	}
	return n, ok
}

func (cc *countCache) put(p Pattern, n int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, exists := cc.counts[p]; !exists && len(cc.counts) >= cc.maxEntries {
		cc.evictLRU()
	}
	cc.counts[p] = n
	cc.accessTime[p] = cc.nextAccessTime()
}

func (cc *countCache) len() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return len(cc.counts)
}

func (cc *countCache) nextAccessTime() int64 {
	cc.accessCount++
	return cc.accessCount
}

func (cc *countCache) evictLRU() {
	var oldest Pattern
	var oldestTime int64 = 9223372036854775807

	for p, at := range cc.accessTime {
		if at < oldestTime {
			oldestTime = at
			oldest = p
		}
	}
	if oldest != "" {
		delete(cc.counts, oldest)
		delete(cc.accessTime, oldest)
	}
}
