package blake3_test

import (
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"gotest.tools/assert"

	"github.com/hashtree/blake3"
)

func TestOutputStreamPrefix(t *testing.T) {
	h := blake3.New()
	_, err := h.Write([]byte("hello world"))
	assert.NilError(t, err)

	long, err := h.Finalize(64)
	assert.NilError(t, err)
	short, err := h.Finalize(32)
	assert.NilError(t, err)

	assert.DeepEqual(t, long[:32], short)
}

func TestOutputStreamSeek(t *testing.T) {
	h := blake3.New()
	_, err := h.Write([]byte("seekable keystream"))
	assert.NilError(t, err)

	contiguous := make([]byte, 4096)
	_, err = h.Digest().Read(contiguous)
	assert.NilError(t, err)

	// reading at any seek offset yields the same bytes as one long read
	for _, off := range []int64{0, 1, 31, 63, 64, 65, 1000, 4000} {
		d := h.Digest()
		pos, err := d.Seek(off, io.SeekStart)
		assert.NilError(t, err)
		assert.Equal(t, pos, off)

		got := make([]byte, len(contiguous)-int(off))
		_, err = d.Read(got)
		assert.NilError(t, err)
		assert.DeepEqual(t, got, contiguous[off:])
	}
}

func TestFinalizeHexEncoding(t *testing.T) {
	h := blake3.New()
	_, err := h.Write([]byte("hex encoding"))
	assert.NilError(t, err)

	for _, length := range []int{1, 17, 32, 64, 100} {
		raw, err := h.Finalize(length)
		assert.NilError(t, err)

		str, err := h.FinalizeHex(length)
		assert.NilError(t, err)

		assert.Equal(t, len(str), 2*length)
		assert.Equal(t, str, hex.EncodeToString(raw))
		assert.Equal(t, strings.ToLower(str), str)
		assert.Equal(t, strings.Trim(str, "0123456789abcdef"), "")
	}
}

func TestDeriveKeyLengths(t *testing.T) {
	material := []byte("material")
	context := "gotest.tools 2026-08-27 derive key lengths"

	full, err := blake3.DeriveKey(material, context, 256)
	assert.NilError(t, err)

	// derive-key output is an XOF too: shorter requests are prefixes
	for _, length := range []int{1, 16, 32, 64, 255} {
		out, err := blake3.DeriveKey(material, context, length)
		assert.NilError(t, err)
		assert.Equal(t, len(out), length)
		assert.DeepEqual(t, out, full[:length])
	}
}
