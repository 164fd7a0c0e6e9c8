package blake3

import (
	"github.com/hashtree/blake3/internal/consts"
)

//
// hasher contains state for a blake3 hash
//

// hasher is the incremental accumulator: the in-progress chunk, the right
// edge of the tree over all finished chunks, and the mode (key and flags)
// fixed at construction. It holds no pointers, so copying the struct clones
// the whole state.
type hasher struct {
	chunk chunkState
	key   [8]uint32
	flags uint32
	stack cvStack
}

func newHasher(key [8]uint32, flags uint32) hasher {
	return hasher{
		chunk: newChunkState(&key, 0, flags),
		key:   key,
		flags: flags,
	}
}

func (a *hasher) reset() {
	a.chunk = newChunkState(&a.key, 0, a.flags)
	a.stack.reset()
}

// finishChunk folds the completed chunk into the stack and starts the next
// one. Callers must ensure more input is coming: the final chunk of the
// stream always stays buffered for finalization.
func (a *hasher) finishChunk() {
	n := a.chunk.node()
	total := a.chunk.counter + 1
	a.stack.add(n.chainingValue(), total, &a.key, a.flags)
	a.chunk = newChunkState(&a.key, total, a.flags)
}

func (a *hasher) update(buf []byte) {
	for len(buf) > 0 {
		if a.chunk.length() == consts.ChunkLen {
			a.finishChunk()
		}

		// Hash whole chunks straight out of the caller's buffer, keeping at
		// least one byte back so the last chunk is never folded early.
		if a.chunk.length() == 0 && len(buf) > consts.ChunkLen {
			counter := a.chunk.counter
			for len(buf) > consts.ChunkLen {
				cv := hashChunk(&a.key, counter, a.flags, buf[:consts.ChunkLen])
				counter++
				a.stack.add(cv, counter, &a.key, a.flags)
				buf = buf[consts.ChunkLen:]
			}
			a.chunk = newChunkState(&a.key, counter, a.flags)
		}

		n := consts.ChunkLen - a.chunk.length()
		if n > len(buf) {
			n = len(buf)
		}
		a.chunk.update(buf[:n])
		buf = buf[n:]
	}
}

func (a *hasher) updateString(buf string) {
	for len(buf) > 0 {
		if a.chunk.length() == consts.ChunkLen {
			a.finishChunk()
		}

		n := consts.ChunkLen - a.chunk.length()
		if n > len(buf) {
			n = len(buf)
		}
		a.chunk.updateString(buf[:n])
		buf = buf[n:]
	}
}

// finalizeDigest computes the root node and loads it into d. The hasher is
// only read: the chunk buffer and stack are left exactly as they were, so
// further updates and repeated finalizes all remain valid.
func (a *hasher) finalizeDigest(d *Digest) {
	n := a.stack.root(a.chunk.node(), &a.key, a.flags)

	d.counter = 0
	d.chain = n.chain
	d.block = n.block
	d.blen = n.blen
	d.flags = n.flags | consts.Flag_Root
	d.bufn = 0
}

func (a *hasher) finalize(out []byte) {
	var d Digest
	a.finalizeDigest(&d)
	_, _ = d.Read(out)
}
