// Package crypto seals chunk payloads with a passphrase.
//
// Sealed data layout:
//
//	magic "PMS1" (4) | salt (16) | nonce (24) | ciphertext | tag (16)
//
// The passphrase is stretched with PBKDF2-HMAC-SHA256 over the random salt
// and then expanded with HKDF-SHA256 into an XChaCha20-Poly1305 key. The
// magic is authenticated as additional data.
package crypto

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"
)

// Seal format constants.
const (
	// SaltSize is the size of the random PBKDF2 salt.
	SaltSize = 16

	// NonceSize is the XChaCha20-Poly1305 nonce size.
	NonceSize = chacha20poly1305.NonceSizeX

	// TagSize is the Poly1305 authentication tag size.
	TagSize = chacha20poly1305.Overhead

	// MagicSize is the size of the leading magic.
	MagicSize = len(sealMagic)

	// HeaderSize is the size of magic, salt and nonce.
	HeaderSize = MagicSize + SaltSize + NonceSize
)

const (
	sealMagic = "PMS1"
	sealInfo  = "pngme seal"
)

// IsSealed reports whether data looks like the output of Seal.
func IsSealed(data []byte) bool {
	return len(data) >= HeaderSize+TagSize && bytes.HasPrefix(data, []byte(sealMagic))
}

// Seal encrypts and authenticates plaintext under passphrase.
func Seal(passphrase, plaintext []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}

	out := make([]byte, HeaderSize, HeaderSize+len(plaintext)+TagSize)
	copy(out, sealMagic)
	salt := out[MagicSize : MagicSize+SaltSize]
	nonce := out[MagicSize+SaltSize : HeaderSize]
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return nil, err
	}
	return aead.Seal(out, nonce, plaintext, []byte(sealMagic)), nil
}

// Open authenticates and decrypts data produced by Seal.
func Open(passphrase, sealed []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	if len(sealed) < MagicSize || !bytes.HasPrefix(sealed, []byte(sealMagic)) {
		return nil, ErrBadSealMagic
	}
	if len(sealed) < HeaderSize+TagSize {
		return nil, ErrSealedTooShort
	}

	salt := sealed[MagicSize : MagicSize+SaltSize]
	nonce := sealed[MagicSize+SaltSize : HeaderSize]

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, sealed[HeaderSize:], []byte(sealMagic))
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

func newAEAD(passphrase, salt []byte) (cipher.AEAD, error) {
	stretched := PBKDF2SHA256(passphrase, salt, PBKDF2Iterations, chacha20poly1305.KeySize)
	key, err := HKDFSHA256(stretched, nil, []byte(sealInfo), chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}
