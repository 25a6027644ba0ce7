package core

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// ResolutionCache memoizes completed resolutions. It is add-only: entries are
// never evicted, expired, or overwritten, so concurrent readers cannot observe
// torn state and racing first-time writers converge on one value.
//
// The scan path introspects contexts (possibly blocking I/O) between the miss
// and the put, so the cache must never hold a process-wide lock across that
// window; xsync's sharded map keeps Get and PutIfAbsent independently cheap.
type ResolutionCache struct {
	entries *xsync.MapOf[EntityType, ContextDescriptor]
}

func NewResolutionCache() *ResolutionCache {
	return &ResolutionCache{entries: xsync.NewMapOf[EntityType, ContextDescriptor]()}
}

func (c *ResolutionCache) Get(entityType EntityType) (ContextDescriptor, bool) {
	if c == nil || c.entries == nil || entityType == nil {
		return nil, false
	}
	return c.entries.Load(entityType)
}

// PutIfAbsent stores the mapping unless one already exists and returns the
// winning descriptor. First writer wins; later writers adopt the stored value.
func (c *ResolutionCache) PutIfAbsent(entityType EntityType, descriptor ContextDescriptor) ContextDescriptor {
	if c == nil || c.entries == nil || entityType == nil || descriptor == nil {
		return descriptor
	}
	winner, _ := c.entries.LoadOrStore(entityType, descriptor)
	return winner
}

func (c *ResolutionCache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Size()
}
