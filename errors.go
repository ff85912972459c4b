package rsago

import "errors"

// Error categories surfaced at the API boundary (spec §7). Nothing inside
// the core retries silently; callers decide whether to regenerate keys or
// re-encrypt with fresh randomness.
var (
	// ErrInputTooLarge is returned when a plaintext exceeds OAEP's capacity
	// or an integer representation is not smaller than the modulus.
	ErrInputTooLarge = errors.New("rsago: input too large for key size")

	// ErrOAEP is the single, indistinguishable error surfaced for every
	// OAEP decoding failure (wrong leading byte, label-hash mismatch,
	// missing separator) to limit padding-oracle leakage. The specific
	// cause is only logged at debug level, never returned.
	ErrOAEP = errors.New("rsago: oaep decoding failed")

	// ErrPSS is returned by PSS encoding failures (emLen too small for the
	// configured hash/salt lengths). Verification failures do not use this
	// error: VerifyPSS returns a plain bool per spec §7.
	ErrPSS = errors.New("rsago: pss encoding failed")

	// ErrPrimeGenerationExhausted is returned when maxTries candidate draws
	// fail to produce a prime of the requested shape.
	ErrPrimeGenerationExhausted = errors.New("rsago: prime generation exhausted maximum attempts")

	// ErrKeyHardeningExhausted is returned when the private-exponent
	// rejection loop (spec §4.5 step 5) cannot find an acceptable d within
	// its attempt budget.
	ErrKeyHardeningExhausted = errors.New("rsago: key hardening exhausted maximum attempts")

	// ErrDecoding is returned for any malformed key blob.
	ErrDecoding = errors.New("rsago: malformed key encoding")
)
