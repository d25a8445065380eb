package json

import "sync"

// scratchInline is the largest escaped string (raw length) unescaped
// without touching the pool, matching spec.md §4.4's "on-stack for ≤256
// bytes, pooled allocation otherwise".
const scratchInline = 256

// scratchPool supplies scratch allocations for unescaping escaped
// strings longer than scratchInline, mirroring block.CRC32Heap's pool.New/AllocateBuffer/RecycleBuffer
// pairing (block/heap.go) adapted from fixed page buffers to
// variable-length byte scratch.
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, scratchInline)
		return &buf
	},
}

func allocateScratch() *[]byte {
	p := scratchPool.Get().(*[]byte)
	*p = (*p)[:0]
	return p
}

func recycleScratch(p *[]byte) {
	scratchPool.Put(p)
}
