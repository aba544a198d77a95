package libqed

import (
	"bytes"
	"hash/maphash"
)

type dropDupes struct {
	hashMap   map[uint64][]byte
	hasher    maphash.Hash
	bufPool   []byte
	bufPoolSz int
	opts      DropDupeOpts
}

const DefaultPoolSz = 32 * 1024

type DropDupeOpts struct {
	PoolSz int // 0 denotes DefaultPoolSz (32k)
}

// NewDropDupes returns an in-memory GraphAdder that accepts each isomorphism class once.
//
// It is not safe for concurrent use.
func NewDropDupes(opts DropDupeOpts) GraphAdder {
	if opts.PoolSz <= 0 {
		opts.PoolSz = DefaultPoolSz
	}
	return &dropDupes{
		hashMap: make(map[uint64][]byte),
		opts:    opts,
	}
}

func (cat *dropDupes) Reset() {
	cat.bufPoolSz = 0
	clear(cat.hashMap)
}

// Close forgets all added graphs and drops the key pool.  The set remains usable.
func (cat *dropDupes) Close() {
	cat.Reset()
	cat.bufPool = nil
}

func (cat *dropDupes) TryAddGraph(X *Graph) bool {
	Xkey := X.CanonicKey()

	cat.hasher.Reset()
	cat.hasher.Write(Xkey)
	hash := cat.hasher.Sum64()

	existing, found := cat.hashMap[hash]
	for found {
		if bytes.Equal(existing, Xkey) {
			return false
		}
		hash++
		existing, found = cat.hashMap[hash]
	}

	// New entry: copy the key into the pool, starting a new pool when this one is full.
	pos := cat.bufPoolSz
	itemLen := len(Xkey)
	if pos+itemLen > cap(cat.bufPool) {
		allocSz := max(cat.opts.PoolSz, itemLen)
		cat.bufPool = make([]byte, allocSz)
		cat.bufPoolSz = 0
		pos = 0
	}

	cat.hashMap[hash] = append(cat.bufPool[pos:pos], Xkey...)
	cat.bufPoolSz += itemLen
	return true
}
