// Package rsago implements a self-contained RSA cryptographic engine: key
// pair generation over hardened safe primes, OAEP encryption/decryption,
// and PSS signing/verification. The arithmetic, hashing, and randomness are
// all built from scratch on top of math/big rather than delegating to
// crypto/rsa or crypto/sha256 — the point of this package is to be the
// cryptography, not to wrap it.
//
// The four subsystems that make this package nontrivial:
//
//   - Safe-prime generation: primes of the form 2p'+1 whose bits are drawn
//     from a Blum-Blum-Shub stream (bbs.go, primes.go).
//   - Key hardening: private exponents vulnerable to Wiener,
//     Boneh-Durfee, low-Hamming-weight, palindromic, repeating-pattern, or
//     near-power-of-two attacks are rejected and regenerated (keygen.go).
//   - OAEP/PSS padding: byte-exact PKCS #1 v2.1 encode/decode, including
//     MGF1 and seed/salt masking (oaep.go, pss.go).
//   - Side-channel-resistant private-key operations: CRT exponentiation
//     combined with exponent blinding (rsacore.go).
//
// What this package deliberately does not do: X.509/DER key encoding, TLS
// or PKCS #7 envelopes, constant-time bignum arithmetic (math/big is used
// as-is and is variable-time), or any side-channel defense beyond exponent
// blinding. Key sizes below 512 bits are undefined.
//
// References:
//
//	[1] PKCS #1 v2.1: RSA Cryptography Standard, RSA Laboratories.
//	[2] FIPS 180-4: Secure Hash Standard.
//	[3] L. Blum, M. Blum, M. Shub. A Simple Unpredictable Pseudo-Random
//	    Number Generator. SIAM J. Comput., 1986.
package rsago

import (
	"math/big"

	"github.com/sirupsen/logrus"
)

// PublicExponent is the fixed RSA public exponent used by every key this
// package generates.
var PublicExponent = big.NewInt(65537)

// PublicKey is the public half of an RSA key pair: n is the modulus, e is
// the fixed public exponent. It is immutable after generation.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey is the private half of an RSA key pair, carrying every value
// needed for the naive, blinded, CRT, and blinded-CRT private operations.
// It is assembled in one transaction by Engine.GenerateKey and never
// mutated afterward; this package places no persistence contract on it.
type PrivateKey struct {
	P    *big.Int
	Q    *big.Int
	N    *big.Int
	E    *big.Int
	D    *big.Int
	Phi  *big.Int
	Dp   *big.Int
	Dq   *big.Int
	Qinv *big.Int
}

// Public returns the PublicKey half of priv.
func (priv *PrivateKey) Public() *PublicKey {
	return &PublicKey{N: priv.N, E: priv.E}
}

// PrivateOpVariant selects among the four private-key exponentiation
// strategies described by the spec; they all produce identical plaintext
// but trade off speed and timing-channel resistance differently.
type PrivateOpVariant int

const (
	// OpNaive computes m = c^d mod n directly.
	OpNaive PrivateOpVariant = iota
	// OpBlinded randomizes the exponent with a multiple of phi before
	// exponentiating, defeating timing analysis on the exponent bits.
	OpBlinded
	// OpCRT exponentiates mod p and mod q separately and recombines,
	// roughly 4x faster than OpNaive.
	OpCRT
	// OpBlindedCRT combines CRT's speed with exponent blinding on each
	// half independently.
	OpBlindedCRT
)

// Engine is an RSA environment: it bundles the entropy oracle and optional
// logger every operation needs, in the same spirit as the teacher's SRP
// environment object bundling a hash algorithm and prime-field parameters.
type Engine struct {
	Entropy EntropySource
	Logger  *logrus.Logger

	// MaxPrimeTries bounds candidate-prime search loops. Zero uses
	// DefaultMaxPrimeTries.
	MaxPrimeTries int
	// MaxHardeningTries bounds the private-exponent rejection loop. Zero
	// uses DefaultMaxHardeningTries.
	MaxHardeningTries int
}

// NewEngine builds an Engine using the OS CSPRNG as its entropy oracle and
// a warn-level default logger.
func NewEngine() *Engine {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return &Engine{
		Entropy: CryptoRandSource{},
		Logger:  logger,
	}
}

// NewEngineWithEntropy builds an Engine against a caller-supplied entropy
// oracle, useful for deterministic regression fixtures (spec §8's
// "seed arbitrary but fixed" scenarios).
func NewEngineWithEntropy(source EntropySource) *Engine {
	e := NewEngine()
	e.Entropy = source
	return e
}

func (e *Engine) logger() *logrus.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logrus.StandardLogger()
}

func (e *Engine) maxPrimeTries() int {
	if e.MaxPrimeTries > 0 {
		return e.MaxPrimeTries
	}
	return DefaultMaxPrimeTries
}

func (e *Engine) maxHardeningTries() int {
	if e.MaxHardeningTries > 0 {
		return e.MaxHardeningTries
	}
	return DefaultMaxHardeningTries
}
