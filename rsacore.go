package rsago

import (
	"fmt"
	"math/big"
)

// ModPow is the square-and-multiply modular exponentiation primitive every
// RSA operation in this package reduces to. It delegates to math/big's
// Exp, which is the "library primitive" the design notes explicitly permit
// for this one operation while keeping everything else hand-rolled.
func ModPow(base, exp, mod *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, mod)
}

// ModInverse returns the multiplicative inverse of a modulo m via the
// extended Euclidean algorithm, and whether one exists (gcd(a,m) == 1).
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	if m.Sign() <= 0 {
		return nil, false
	}
	g, x, _ := extendedGCD(new(big.Int).Mod(a, m), m)
	if g.Cmp(bigOne) != 0 {
		return nil, false
	}
	x.Mod(x, m)
	if x.Sign() < 0 {
		x.Add(x, m)
	}
	return x, true
}

// extendedGCD returns (g, x, y) with a*x + b*y = g = gcd(a, b), via the
// extended Euclidean algorithm, recursing on b mod a.
func extendedGCD(a, b *big.Int) (*big.Int, *big.Int, *big.Int) {
	if a.Sign() == 0 {
		return new(big.Int).Set(b), big.NewInt(0), big.NewInt(1)
	}
	g, x1, y1 := extendedGCD(new(big.Int).Mod(b, a), a)
	q := new(big.Int).Div(b, a)
	x := new(big.Int).Sub(y1, new(big.Int).Mul(q, x1))
	return g, x, x1
}

// GCD returns the greatest common divisor of a and b via the binary
// (Stein's) Euclidean algorithm, per spec §4.8.
func GCD(a, b *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int).Abs(b)
	}
	if b.Sign() == 0 {
		return new(big.Int).Abs(a)
	}

	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)

	shift := uint(0)
	for x.Bit(0) == 0 && y.Bit(0) == 0 {
		x.Rsh(x, 1)
		y.Rsh(y, 1)
		shift++
	}
	for x.Bit(0) == 0 {
		x.Rsh(x, 1)
	}
	for y.Sign() != 0 {
		for y.Bit(0) == 0 {
			y.Rsh(y, 1)
		}
		if x.Cmp(y) > 0 {
			x, y = y, x
		}
		y.Sub(y, x)
	}
	return x.Lsh(x, shift)
}

// KeySize returns k = ceil(bitLen(n)/8), the modulus size in bytes that
// every padded block and signature is aligned to.
func KeySize(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// I2OSP encodes x as a big-endian unsigned byte string of exactly length
// bytes, failing if x does not fit.
func I2OSP(x *big.Int, length int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("rsago: I2OSP: negative integer")
	}
	b := x.Bytes()
	if len(b) > length {
		return nil, fmt.Errorf("rsago: I2OSP: integer too large for %d-byte encoding", length)
	}
	out := make([]byte, length)
	copy(out[length-len(b):], b)
	return out, nil
}

// OS2IP decodes a big-endian unsigned byte string into an integer.
func OS2IP(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// PublicOp is the RSA public operation used for both encryption and
// signature verification: c = m^e mod n.
func PublicOp(m *big.Int, pub *PublicKey) (*big.Int, error) {
	if m.Cmp(pub.N) >= 0 {
		return nil, ErrInputTooLarge
	}
	return ModPow(m, pub.E, pub.N), nil
}

// PrivateOpNaive computes m = c^d mod n directly, with no blinding or CRT.
func PrivateOpNaive(c *big.Int, priv *PrivateKey) (*big.Int, error) {
	if c.Cmp(priv.N) >= 0 {
		return nil, ErrInputTooLarge
	}
	return ModPow(c, priv.D, priv.N), nil
}

// PrivateOpBlinded computes m = c^(d + r*phi) mod n for a fresh 16-bit r
// drawn from a BBS stream seeded from entropy. Because d + r*phi ≡ d
// (mod ord(c)) for every c coprime to n, the result equals c^d mod n while
// randomizing the exponent's timing profile.
func PrivateOpBlinded(c *big.Int, priv *PrivateKey, entropy EntropySource) (*big.Int, error) {
	if c.Cmp(priv.N) >= 0 {
		return nil, ErrInputTooLarge
	}
	r, err := randNonNegative16(entropy)
	if err != nil {
		return nil, err
	}

	exp := new(big.Int).Mul(r, priv.Phi)
	exp.Add(exp, priv.D)
	return ModPow(c, exp, priv.N), nil
}

// PrivateOpCRT computes m via the Chinese Remainder Theorem:
// mp = c^dp mod p, mq = c^dq mod q, h = (mp-mq)*qinv mod p,
// m = mq + h*q. Roughly 4x faster than PrivateOpNaive.
func PrivateOpCRT(c *big.Int, priv *PrivateKey) (*big.Int, error) {
	if c.Cmp(priv.N) >= 0 {
		return nil, ErrInputTooLarge
	}
	return crtCombine(c, priv.Dp, priv.Dq, priv)
}

// PrivateOpBlindedCRT combines CRT's speed with independent blinding of
// each half's exponent: dp' = dp + rp*(p-1), dq' = dq + rq*(q-1), with rp,
// rq non-zero 16-bit values each drawn from their own BBS stream seeded
// from entropy.
func PrivateOpBlindedCRT(c *big.Int, priv *PrivateKey, entropy EntropySource) (*big.Int, error) {
	if c.Cmp(priv.N) >= 0 {
		return nil, ErrInputTooLarge
	}

	rp, err := randPositive16(entropy)
	if err != nil {
		return nil, err
	}
	rq, err := randPositive16(entropy)
	if err != nil {
		return nil, err
	}

	pMinus1 := new(big.Int).Sub(priv.P, bigOne)
	qMinus1 := new(big.Int).Sub(priv.Q, bigOne)

	dpPrime := new(big.Int).Mul(rp, pMinus1)
	dpPrime.Add(dpPrime, priv.Dp)

	dqPrime := new(big.Int).Mul(rq, qMinus1)
	dqPrime.Add(dqPrime, priv.Dq)

	return crtCombine(c, dpPrime, dqPrime, priv)
}

func crtCombine(c, dp, dq *big.Int, priv *PrivateKey) (*big.Int, error) {
	mp := ModPow(c, dp, priv.P)
	mq := ModPow(c, dq, priv.Q)

	h := new(big.Int).Sub(mp, mq)
	h.Mul(h, priv.Qinv)
	h.Mod(h, priv.P) // big.Int.Mod is Euclidean: always in [0, p) for p > 0

	m := new(big.Int).Mul(h, priv.Q)
	m.Add(m, mq)
	return m, nil
}

// randNonNegative16 draws a 16-bit blinding factor from a fresh BBS stream
// seeded from entropy (spec §4.8 variants 2/4): the entropy oracle only
// seeds the stream, it is never read directly for the blinding factor
// itself.
func randNonNegative16(entropy EntropySource) (*big.Int, error) {
	stream, err := NewEntropySeededStream(entropy, 16)
	if err != nil {
		return nil, err
	}
	return OS2IP(stream.NextBytes(2)), nil
}

// randPositive16 draws a non-zero 16-bit value, redrawing on the
// vanishingly unlikely all-zero result (spec requires rp, rq both
// non-zero).
func randPositive16(entropy EntropySource) (*big.Int, error) {
	for {
		r, err := randNonNegative16(entropy)
		if err != nil {
			return nil, err
		}
		if r.Sign() != 0 {
			return r, nil
		}
	}
}

// privateOp dispatches to the requested private-key operation variant.
func (e *Engine) privateOp(c *big.Int, priv *PrivateKey, variant PrivateOpVariant) (*big.Int, error) {
	switch variant {
	case OpNaive:
		return PrivateOpNaive(c, priv)
	case OpBlinded:
		return PrivateOpBlinded(c, priv, e.Entropy)
	case OpCRT:
		return PrivateOpCRT(c, priv)
	case OpBlindedCRT:
		return PrivateOpBlindedCRT(c, priv, e.Entropy)
	default:
		return nil, fmt.Errorf("rsago: unknown private-operation variant %d", variant)
	}
}
