package crypto

import "errors"

var (
	// ErrSealedTooShort is returned when sealed data is shorter than its header.
	ErrSealedTooShort = errors.New("crypto: sealed data too short")

	// ErrBadSealMagic is returned when data does not start with the seal magic.
	ErrBadSealMagic = errors.New("crypto: not sealed data")

	// ErrOpenFailed is returned when authentication fails, either because the
	// passphrase is wrong or the data was modified.
	ErrOpenFailed = errors.New("crypto: wrong passphrase or corrupted data")

	// ErrEmptyPassphrase is returned when sealing or opening with an empty passphrase.
	ErrEmptyPassphrase = errors.New("crypto: empty passphrase")
)
