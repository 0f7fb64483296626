package evaluator

import (
	"bytes"
	"sync"
)

// bufPool is a process-wide pool of *bytes.Buffer used to render calling
// context keys, which happens on every deterministic function call.
//
// Each caller owns its buffer until releaseBuf; buffers are reset on
// acquisition so no state from a previous owner is visible.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// acquireBuf returns a reset buffer from the pool.
func acquireBuf() *bytes.Buffer {
	b := bufPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// releaseBuf returns a buffer to the pool. Buffers that grew past 64 KB are
// dropped so a single large argument does not pin memory.
func releaseBuf(b *bytes.Buffer) {
	if b.Cap() <= 64*1024 {
		bufPool.Put(b)
	}
}
