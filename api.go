// Package blake3 provides an incremental BLAKE3 implementation with keyed
// hashing, key derivation, and seekable extendable output.
package blake3

import (
	"encoding/hex"
	"hash"

	"github.com/hashtree/blake3/internal/consts"
	"github.com/hashtree/blake3/internal/utils"
)

// DefaultSize is the digest size used when no other size is requested.
const DefaultSize = 32

// MaxDigestSize bounds the per-hasher digest size option. It is a policy
// limit on the convenience surface only: Digest, Finalize and DeriveKey can
// produce output of any length.
const MaxDigestSize = 65536

// Hasher is a hash.Hash for BLAKE3.
type Hasher struct {
	size int
	h    hasher
}

var _ hash.Hash = (*Hasher)(nil)

// New returns a new Hasher that has a digest size of 32 bytes.
//
// If you need more or less output bytes than that, use the Digest or
// Finalize methods.
func New() *Hasher {
	return &Hasher{
		size: DefaultSize,
		h:    newHasher(consts.IV, 0),
	}
}

// NewSized returns a new Hasher with the given digest size, which controls
// how many bytes Sum appends. The size must be in [1, MaxDigestSize].
func NewSized(size int) (*Hasher, error) {
	if size < 1 || size > MaxDigestSize {
		return nil, ErrInvalidDigestSize
	}
	return &Hasher{
		size: size,
		h:    newHasher(consts.IV, 0),
	}, nil
}

// NewKeyed returns a new Hasher that uses the 32 byte input key and has a
// digest size of 32 bytes.
func NewKeyed(key []byte) (*Hasher, error) {
	if len(key) != consts.KeyLen {
		return nil, ErrInvalidKeyLength
	}

	var kw [8]uint32
	utils.KeyFromBytes(key, &kw)

	return &Hasher{
		size: DefaultSize,
		h:    newHasher(kw, consts.Flag_Keyed),
	}, nil
}

// NewDeriveKey returns a Hasher that is initialized with the context string.
// The context is hashed in a dedicated sub-mode and the result keys the
// returned hasher, so material hashed under distinct contexts is unrelated.
//
// Context strings must be hardcoded constants, and the recommended format is
// "[application] [commit timestamp] [purpose]", e.g.,
// "example.com 2019-12-25 16:18:03 session tokens v1".
func NewDeriveKey(context string) (*Hasher, error) {
	if len(context) == 0 {
		return nil, ErrEmptyContext
	}

	// hash the context string and use that instead of IV
	ch := newHasher(consts.IV, consts.Flag_DeriveKeyContext)
	ch.updateString(context)

	var key [consts.KeyLen]byte
	ch.finalize(key[:])

	var kw [8]uint32
	utils.KeyFromBytes(key[:], &kw)

	return &Hasher{
		size: DefaultSize,
		h:    newHasher(kw, consts.Flag_DeriveKeyMaterial),
	}, nil
}

// DeriveKey derives length bytes of key from reusable key material of any
// length, in the given context. See NewDeriveKey for details on the context
// string.
func DeriveKey(material []byte, context string, length int) ([]byte, error) {
	if length < 1 {
		return nil, ErrInvalidOutputLength
	}

	h, err := NewDeriveKey(context)
	if err != nil {
		return nil, err
	}

	_, _ = h.Write(material)
	return h.Finalize(length)
}

// Write implements part of the hash.Hash interface. It never returns an
// error. The input slice is only read during the call: any bytes the hasher
// needs later are copied into its own buffers.
func (h *Hasher) Write(p []byte) (int, error) {
	h.h.update(p)
	return len(p), nil
}

// WriteString is like Write but specialized to strings to avoid allocations.
func (h *Hasher) WriteString(p string) (int, error) {
	h.h.updateString(p)
	return len(p), nil
}

// Reset implements part of the hash.Hash interface. It causes the Hasher to
// act as if it was newly created with the same mode.
func (h *Hasher) Reset() {
	h.h.reset()
}

// Clone returns a new Hasher with the same internal state.
//
// Modifying the resulting Hasher will not modify the original Hasher, and
// vice versa.
func (h *Hasher) Clone() *Hasher {
	return &Hasher{size: h.size, h: h.h}
}

// Size implements part of the hash.Hash interface. It returns the number of
// bytes the hash will output in Sum.
func (h *Hasher) Size() int {
	return h.size
}

// BlockSize implements part of the hash.Hash interface. It returns the most
// natural size to write to the Hasher.
func (h *Hasher) BlockSize() int {
	return consts.BlockLen
}

// Sum implements part of the hash.Hash interface. It appends the digest of
// the Hasher to the provided buffer and returns it. It does not change the
// underlying state: writes after a Sum continue the same stream.
func (h *Hasher) Sum(b []byte) []byte {
	if top := len(b) + h.size; top <= cap(b) && top >= len(b) {
		h.h.finalize(b[len(b):top])
		return b[:top]
	}

	tmp := make([]byte, h.size)
	h.h.finalize(tmp)
	return append(b, tmp...)
}

// Digest takes a snapshot of the hash state and returns an object that can
// be used to read and seek through any amount of output. The Hasher is not
// modified and may continue to accept writes.
func (h *Hasher) Digest() *Digest {
	var d Digest
	h.h.finalizeDigest(&d)
	return &d
}

// Finalize returns length bytes of output for the input hashed so far. It
// does not modify the Hasher: it may be called repeatedly, interleaved with
// writes, and a longer output is always an extension of a shorter one.
func (h *Hasher) Finalize(length int) ([]byte, error) {
	if length < 1 {
		return nil, ErrInvalidOutputLength
	}

	out := make([]byte, length)
	h.h.finalize(out)
	return out, nil
}

// FinalizeHex is like Finalize but returns the output as a lowercase hex
// string of 2*length characters.
func (h *Hasher) FinalizeHex(length int) (string, error) {
	out, err := h.Finalize(length)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

// Sum256 returns the first 32 bytes of the hash of data.
func Sum256(data []byte) (sum [32]byte) {
	sumN(data, sum[:])
	return sum
}

// Sum512 returns the first 64 bytes of the hash of data.
func Sum512(data []byte) (sum [64]byte) {
	sumN(data, sum[:])
	return sum
}

func sumN(data, out []byte) {
	h := newHasher(consts.IV, 0)
	h.update(data)
	h.finalize(out)
}
