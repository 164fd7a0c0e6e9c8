package blake3

// Options collects the optional construction arguments for a Hasher. At most
// one of Key and DeriveKeyContext may be set: they select mutually exclusive
// modes, and supplying both is rejected before any state is built.
type Options struct {
	// Key switches the hasher into keyed mode. It must be exactly 32 bytes.
	Key []byte

	// DeriveKeyContext switches the hasher into key derivation mode with
	// the given context. It must be non-empty. A nil slice means the option
	// is unset.
	DeriveKeyContext []byte

	// DigestSize sets the Sum output size in bytes. Zero means the default
	// of 32.
	DigestSize int
}

// NewFromOptions validates the options and returns the Hasher they describe.
// It is equivalent to New, NewSized, NewKeyed, or NewDeriveKey depending on
// which options are set.
func NewFromOptions(o Options) (*Hasher, error) {
	if o.Key != nil && o.DeriveKeyContext != nil {
		return nil, ErrConflictingMode
	}

	size := o.DigestSize
	if size == 0 {
		size = DefaultSize
	}
	if size < 1 || size > MaxDigestSize {
		return nil, ErrInvalidDigestSize
	}

	var h *Hasher
	var err error

	switch {
	case o.Key != nil:
		h, err = NewKeyed(o.Key)
	case o.DeriveKeyContext != nil:
		h, err = NewDeriveKey(string(o.DeriveKeyContext))
	default:
		h = New()
	}
	if err != nil {
		return nil, err
	}

	h.size = size
	return h, nil
}
