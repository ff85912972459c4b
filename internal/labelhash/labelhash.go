// Package labelhash derives an OAEP label from a human-supplied identity
// string. OAEP's label parameter (spec §4.6) defaults to empty, but the
// CLI harness (cmd/rsagen) lets a caller bind ciphertext to an identity —
// e.g. a recipient's account name — so that decrypting with the wrong
// label fails even when the correct private key is used.
//
// Adapted from the identity-hashing half of an SRP-6a implementation: that
// protocol anonymizes a client's identity by hashing it before it ever
// reaches durable storage (see the original hashbyte/Blake2b-256
// construction). The same "hash the identity, don't carry it raw" move
// applies here: the label bytes fed to OAEP are Blake2b-256 of the
// identity, not the identity itself, so a leaked ciphertext's label never
// reveals the plaintext identity that produced it.
package labelhash

import (
	"golang.org/x/crypto/blake2b"
)

// Derive returns the Blake2b-256 hash of identity, suitable for use as an
// OAEP label.
func Derive(identity []byte) []byte {
	h := blake2b.Sum256(identity)
	return h[:]
}
