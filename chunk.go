package blake3

import (
	"unsafe"

	"github.com/hashtree/blake3/internal/alg/compress"
	"github.com/hashtree/blake3/internal/consts"
	"github.com/hashtree/blake3/internal/utils"
)

//
// chunk state
//

// chunkState accumulates at most one chunk of input. Bytes are copied into
// the owned block buffer as they arrive, so callers may reuse their slices
// as soon as update returns. A full buffered block is only compressed once
// more input shows up: the last block supplied for the chunk has to wait for
// finalization so it can carry the chunk end flag.
type chunkState struct {
	chain   [8]uint32
	counter uint64
	block   [consts.BlockLen]byte
	blen    uint32
	blocks  uint32
	flags   uint32
}

func newChunkState(key *[8]uint32, counter uint64, flags uint32) chunkState {
	return chunkState{
		chain:   *key,
		counter: counter,
		flags:   flags,
	}
}

// length is how many bytes of the chunk have been accepted so far.
func (c *chunkState) length() int {
	return consts.BlockLen*int(c.blocks) + int(c.blen)
}

func (c *chunkState) startFlag() uint32 {
	if c.blocks == 0 {
		return consts.Flag_ChunkStart
	}
	return 0
}

// compressBlock folds the full buffered block into the chaining value and
// clears the buffer. Must not be called on the final block of the chunk.
func (c *chunkState) compressBlock() {
	var words [16]uint32
	var out [16]uint32

	utils.BytesToWords(&c.block, &words)
	compress.Compress(&c.chain, &words, c.counter, consts.BlockLen, c.flags|c.startFlag(), &out)

	copy(c.chain[:], out[:8])
	c.blocks++
	c.block = [consts.BlockLen]byte{}
	c.blen = 0
}

func (c *chunkState) update(buf []byte) {
	for len(buf) > 0 {
		if c.blen == consts.BlockLen {
			c.compressBlock()
		}
		n := copy(c.block[c.blen:], buf)
		c.blen += uint32(n)
		buf = buf[n:]
	}
}

func (c *chunkState) updateString(buf string) {
	for len(buf) > 0 {
		if c.blen == consts.BlockLen {
			c.compressBlock()
		}
		n := copy(c.block[c.blen:], buf)
		c.blen += uint32(n)
		buf = buf[n:]
	}
}

// node captures the chunk as a leaf of the tree without mutating the chunk
// state, so finalization can run any number of times.
func (c *chunkState) node() node {
	n := node{
		chain:   c.chain,
		counter: c.counter,
		blen:    c.blen,
		flags:   c.flags | c.startFlag() | consts.Flag_ChunkEnd,
	}
	utils.BytesToWords(&c.block, &n.block)
	return n
}

//
// one-shot chunk hashing
//

// hashChunk produces the chaining value for one full chunk taken directly
// from the caller's buffer, skipping the block copies of chunkState. buf must
// be exactly one chunk long.
func hashChunk(key *[8]uint32, counter uint64, flags uint32, buf []byte) [8]uint32 {
	_ = buf[consts.ChunkLen-1]

	chain := *key
	var out [16]uint32

	for n := 0; n < consts.BlocksPerChunk; n++ {
		bflags := flags
		if n == 0 {
			bflags |= consts.Flag_ChunkStart
		}
		if n == consts.BlocksPerChunk-1 {
			bflags |= consts.Flag_ChunkEnd
		}

		var words *[16]uint32
		if consts.IsLittleEndian {
			words = (*[16]uint32)(unsafe.Pointer(&buf[n*consts.BlockLen]))
		} else {
			var tmp [16]uint32
			utils.BytesToWords((*[64]uint8)(unsafe.Pointer(&buf[n*consts.BlockLen])), &tmp)
			words = &tmp
		}

		compress.Compress(&chain, words, counter, consts.BlockLen, bflags, &out)
		copy(chain[:], out[:8])
	}

	return chain
}
