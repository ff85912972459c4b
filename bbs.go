package rsago

import (
	"fmt"
	"math/big"
)

var (
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigZero = big.NewInt(0)
)

// BlumBlumShub is a deterministic pseudo-random stream seeded by the
// entropy oracle, built by iterated squaring modulo the product of two
// small primes congruent to 3 mod 4. NextBits shapes its output into
// candidates suitable for safe-prime search (see primes.go); NextBytes
// supplies the unshaped random material for OAEP seeds, PSS salts and
// blinding factors. The entropy oracle only seeds it.
type BlumBlumShub struct {
	m     *big.Int // p_bbs * q_bbs; drives the stream, distinct from any RSA modulus
	x     *big.Int // current quadratic-residue state
	width int       // per-draw output size in bits
}

// NewBlumBlumShub constructs a stream from a seed and two primes p, q, both
// congruent to 3 mod 4. width is the bit length produced by NextBits.
func NewBlumBlumShub(seed []byte, p, q *big.Int, width int) (*BlumBlumShub, error) {
	if mod4(p) != 3 || mod4(q) != 3 {
		return nil, fmt.Errorf("rsago: bbs primes must be congruent to 3 mod 4")
	}
	m := new(big.Int).Mul(p, q)

	s := new(big.Int).SetBytes(seed)
	x0 := new(big.Int).Mod(s, m)
	if x0.Sign() <= 0 {
		x0 = big.NewInt(1)
	}

	return &BlumBlumShub{m: m, x: x0, width: width}, nil
}

func mod4(n *big.Int) int64 {
	r := new(big.Int).Mod(n, big.NewInt(4))
	return r.Int64()
}

// entropySeedBytes is how many bytes of entropy seed a fresh BBS instance
// at each of NewEntropySeededStream's call sites.
const entropySeedBytes = 32

// NewEntropySeededStream seeds a fresh BlumBlumShub from entropy and returns
// it ready to drive NextBytes. This is the architecture spec §9 describes:
// the entropy oracle is only ever consulted to seed BBS; BBS then supplies
// the bulk random material for OAEP seeds, PSS salts, and private-operation
// blinding factors (§4.6/§4.7/§4.8) — a freshly-initialized stream on every
// call, not a long-lived generator reused across draws.
func NewEntropySeededStream(entropy EntropySource, widthBits int) (*BlumBlumShub, error) {
	seed, err := entropy.RandomBytes(entropySeedBytes)
	if err != nil {
		return nil, err
	}
	return NewBlumBlumShub(seed, bbsSmallP, bbsSmallQ, widthBits)
}

// NextBit advances the internal state by one squaring and returns its
// least-significant bit.
func (b *BlumBlumShub) NextBit() uint {
	b.x.Mul(b.x, b.x)
	b.x.Mod(b.x, b.m)
	return b.x.Bit(0)
}

// NextBits draws b.width bits MSB-first by repeated NextBit calls, then
// forces the three shape bits mandated by the spec: the top bit is set (so
// the result has exactly b.width bits), the low bit is set (oddness), and
// the result is finally adjusted to be congruent to 3 mod 4. This shaping
// is what makes the draw usable as a safe-prime candidate and is not
// optional.
func (b *BlumBlumShub) NextBits() *big.Int {
	r := new(big.Int)
	for i := 0; i < b.width; i++ {
		r.Lsh(r, 1)
		if b.NextBit() == 1 {
			r.Or(r, bigOne)
		}
	}

	r.SetBit(r, b.width-1, 1)
	r.SetBit(r, 0, 1)

	rem := new(big.Int).Mod(r, big.NewInt(4))
	r.Sub(r, rem)
	r.Add(r, big.NewInt(3))

	return r
}

// NextBytes draws n bytes MSB-first by repeated NextBit calls, with none of
// NextBits' safe-prime-candidate shaping (no forced top/low bit, no forced
// residue mod 4). This is the form OAEP seeds, PSS salts, and blinding
// factors draw from — plain BBS output, not a prime candidate.
func (b *BlumBlumShub) NextBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		var by byte
		for bit := 0; bit < 8; bit++ {
			by = (by << 1) | byte(b.NextBit())
		}
		out[i] = by
	}
	return out
}
