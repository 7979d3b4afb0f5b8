package lexicon

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// BlockCache holds decompressed dictionary blocks in memory, fetched
// on demand by block index. Each "read" here is really a slice into
// the already-mmap'd file (see Lexicon.mmapFile): there is no separate
// disk I/O, but the indirection still matters, since the cache is the
// only thing that hands out block byte ranges, so callers never reach
// past a block boundary by accident. A single resident block would
// suffice for sequential access; we use a small LRU instead of a
// hand-rolled single slot so a caller analysing a batch of words that
// happen to hash to different directory buckets doesn't thrash on
// every single lookup.
//
// Not safe for concurrent use; callers requiring thread safety wrap
// the cache.
type BlockCache struct {
	file   []byte
	origin int64
	size   int64
	cache  *lru.Cache[int, []byte]
}

// defaultCacheBlocks leaves room above the minimum single-block
// baseline to avoid thrash (see doc comment above).
const defaultCacheBlocks = 4

// newBlockCache builds a cache over the stem-block region of an
// already-mmap'd file. origin is the absolute byte offset of block 0;
// size is the per-block byte size from the header.
func newBlockCache(file []byte, origin, size int64) (*BlockCache, error) {
	c, err := lru.New[int, []byte](defaultCacheBlocks)
	if err != nil {
		return nil, err
	}
	return &BlockCache{file: file, origin: origin, size: size, cache: c}, nil
}

// Read returns the raw bytes of block blockID. If blockID is already
// resident, no work happens beyond the map lookup; otherwise the block
// is located at origin + blockID*size and a view into the mmap'd file
// is cached. The returned slice must never be mutated or retained past
// the Lexicon's lifetime.
func (c *BlockCache) Read(blockID int) ([]byte, error) {
	if b, ok := c.cache.Get(blockID); ok {
		return b, nil
	}
	start := c.origin + int64(blockID)*c.size
	end := start + c.size
	if start < 0 || end > int64(len(c.file)) {
		return nil, ErrShortRead
	}
	b := c.file[start:end]
	c.cache.Add(blockID, b)
	return b, nil
}
