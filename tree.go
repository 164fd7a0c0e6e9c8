package blake3

import (
	"github.com/hashtree/blake3/internal/alg/compress"
	"github.com/hashtree/blake3/internal/consts"
)

//
// tree nodes
//

// node is a subtree that still owes one compression call: either a chunk leaf
// (chain and block come from the chunk state) or a parent (block is the two
// child chaining values). Keeping the final compression pending is what lets
// the root node be re-read as an output stream.
type node struct {
	chain   [8]uint32
	block   [16]uint32
	counter uint64
	blen    uint32
	flags   uint32
}

// chainingValue runs the pending compression and truncates to the 32 bytes
// passed up the tree.
func (n *node) chainingValue() (cv [8]uint32) {
	var out [16]uint32
	compress.Compress(&n.chain, &n.block, n.counter, n.blen, n.flags, &out)
	copy(cv[:], out[:8])
	return cv
}

// parentNode combines two child chaining values. Parents always compress with
// a zero counter and a full block length, and never carry the chunk flags.
func parentNode(left, right [8]uint32, key *[8]uint32, flags uint32) node {
	n := node{
		chain: *key,
		blen:  consts.BlockLen,
		flags: flags | consts.Flag_Parent,
	}
	copy(n.block[:8], left[:])
	copy(n.block[8:], right[:])
	return n
}

//
// chain value stack
//

// cvStack is the right edge of the tree: one completed subtree per set bit of
// the chunk count, strictly decreasing in height from the bottom. Adding the
// n-th chunk merges the same way a binary increment carries.
type cvStack struct {
	stack [consts.StackSize][8]uint32
	n     uint8
}

func (s *cvStack) push(cv [8]uint32) {
	s.stack[s.n] = cv
	s.n++
}

func (s *cvStack) pop() [8]uint32 {
	s.n--
	return s.stack[s.n]
}

func (s *cvStack) reset() {
	s.n = 0
}

// add folds a completed chunk's chaining value into the stack. total is the
// number of chunks hashed so far, counting the one that produced cv.
func (s *cvStack) add(cv [8]uint32, total uint64, key *[8]uint32, flags uint32) {
	for total&1 == 0 {
		p := parentNode(s.pop(), cv, key, flags)
		cv = p.chainingValue()
		total >>= 1
	}
	s.push(cv)
}

// root combines the remaining right edge with the final leaf, top down, and
// returns the node whose output block becomes the hash. The stack is not
// modified: entries are read in place so the hasher stays appendable.
func (s *cvStack) root(last node, key *[8]uint32, flags uint32) node {
	n := last
	for i := int(s.n) - 1; i >= 0; i-- {
		n = parentNode(s.stack[i], n.chainingValue(), key, flags)
	}
	return n
}
