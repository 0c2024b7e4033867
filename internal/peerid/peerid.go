// Package peerid generates the 20-byte client identifier this peer
// advertises in handshakes and tracker announces.
package peerid

import "crypto/rand"

// prefix identifies this client by an Azureus-style two-letter code
// and version, per convention: "-GB0100-" followed by 12 random bytes.
var prefix = [8]byte{'-', 'G', 'B', '0', '1', '0', '0', '-'}

// New generates a fresh 20-byte client id: the fixed prefix followed
// by 12 cryptographically random bytes.
func New() [20]byte {
	var id [20]byte
	copy(id[:8], prefix[:])
	if _, err := rand.Read(id[8:]); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is
		// unavailable, which leaves the process unable to do anything
		// useful anyway.
		panic(err)
	}
	return id
}
