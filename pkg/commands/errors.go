package commands

import "errors"

var (
	// ErrStorageRequired is returned when Config.Storage is nil.
	ErrStorageRequired = errors.New("commands: storage is required")

	// ErrPassphraseRequired is returned when decoding a sealed message without
	// a passphrase.
	ErrPassphraseRequired = errors.New("commands: message is sealed, passphrase required")
)
