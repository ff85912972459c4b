package rsago

import (
	"math/big"
	"math/bits"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxHardeningTries bounds the private-exponent rejection loop
// (spec §4.5 step 5) before GenerateKey gives up with
// ErrKeyHardeningExhausted.
const DefaultMaxHardeningTries = 2000

// seedEntropyBytes is how many bytes GenerateKey draws from the entropy
// oracle to seed each BBS-driven prime search.
const seedEntropyBytes = 64

// GenerateKey runs the full key-generation procedure: draw a seed, find two
// safe primes far enough apart, fix e=65537, compute and harden d against
// the attacks enumerated in spec §4.5, then assemble the CRT parameters.
func (e *Engine) GenerateKey(bits int) (*PublicKey, *PrivateKey, error) {
	reqID := uuid.New()
	log := e.logger().WithFields(map[string]interface{}{
		"component": "keygen",
		"request":   reqID.String(),
		"bits":      bits,
	})

	primeBits := bits / 2
	minGap := new(big.Int).Lsh(bigOne, uint(bits/4))

	for restart := 0; restart < e.maxHardeningTries(); restart++ {
		seedBytes, err := e.Entropy.RandomBytes(seedEntropyBytes)
		if err != nil {
			return nil, nil, err
		}
		seed := new(big.Int).SetBytes(seedBytes)

		p, err := findSafePrime(seed, primeBits, e.maxPrimeTries())
		if err != nil {
			log.Debug("safe prime search for p exhausted")
			return nil, nil, err
		}

		qSeedBytes, err := e.Entropy.RandomBytes(seedEntropyBytes)
		if err != nil {
			return nil, nil, err
		}
		qSeed := new(big.Int).SetBytes(qSeedBytes)

		q, err := findSafePrime(qSeed, primeBits, e.maxPrimeTries())
		if err != nil {
			log.Debug("safe prime search for q exhausted")
			return nil, nil, err
		}

		if p.Cmp(q) == 0 {
			log.Debug("p == q, restarting")
			continue
		}
		gap := new(big.Int).Sub(p, q)
		gap.Abs(gap)
		if gap.Cmp(minGap) < 0 {
			log.Debug("|p-q| below Fermat-factorization margin, restarting")
			continue
		}

		n := new(big.Int).Mul(p, q)
		pMinus1 := new(big.Int).Sub(p, bigOne)
		qMinus1 := new(big.Int).Sub(q, bigOne)
		phi := new(big.Int).Mul(pMinus1, qMinus1)

		g := GCD(PublicExponent, phi)
		if g.Cmp(bigOne) != 0 {
			log.Debug("gcd(e, phi) != 1, restarting")
			continue
		}

		d, ok := ModInverse(PublicExponent, phi)
		if !ok {
			log.Debug("e has no inverse mod phi, restarting")
			continue
		}

		if reason, weak := isWeakExponent(d, n); weak {
			log.WithField("reason", reason).Debug("rejected d during hardening")
			continue
		}

		dp := new(big.Int).Mod(d, pMinus1)
		dq := new(big.Int).Mod(d, qMinus1)
		qinv, ok := ModInverse(q, p)
		if !ok {
			log.Debug("q has no inverse mod p, restarting")
			continue
		}

		pub := &PublicKey{N: n, E: new(big.Int).Set(PublicExponent)}
		priv := &PrivateKey{
			P:    p,
			Q:    q,
			N:    n,
			E:    new(big.Int).Set(PublicExponent),
			D:    d,
			Phi:  phi,
			Dp:   dp,
			Dq:   dq,
			Qinv: qinv,
		}

		log.Debug("key generation succeeded")
		return pub, priv, nil
	}

	return nil, nil, ErrKeyHardeningExhausted
}

// integerRoot computes floor(n^(1/k)) by binary search over [1, n], using
// integer exponentiation at each probe.
func integerRoot(n *big.Int, k int) *big.Int {
	if n.Sign() <= 0 {
		return big.NewInt(0)
	}
	lo := big.NewInt(1)
	hi := new(big.Int).Set(n)

	kBig := big.NewInt(int64(k))
	for lo.Cmp(hi) < 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, bigOne)
		mid.Rsh(mid, 1)

		pow := new(big.Int).Exp(mid, kBig, nil)
		if pow.Cmp(n) <= 0 {
			lo.Set(mid)
		} else {
			hi.Sub(mid, bigOne)
		}
	}
	return lo
}

// isWeakExponent runs every rejection heuristic of spec §4.5 step 5 against
// a candidate private exponent d for modulus n, returning the name of the
// first heuristic that fires.
func isWeakExponent(d, n *big.Int) (string, bool) {
	// Wiener bound: d <= n^(1/4)/3.
	wienerBound := new(big.Int).Div(integerRoot(n, 4), big.NewInt(3))
	if d.Cmp(wienerBound) <= 0 {
		return "wiener-bound", true
	}

	// Lower-bound safety margin: d <= 2^(floor(bitLen(n)/2)).
	marginExp := uint(n.BitLen() / 2)
	margin := new(big.Int).Lsh(bigOne, marginExp)
	if d.Cmp(margin) <= 0 {
		return "safety-margin", true
	}

	// Hamming weight must be at least 25% of the bit length.
	if hammingWeight(d) < d.BitLen()/4 {
		return "low-hamming-weight", true
	}

	// Boneh-Durfee bound: d <= n^0.3, computed as (n^(1/10))^3.
	bdRoot := integerRoot(n, 10)
	bdBound := new(big.Int).Exp(bdRoot, big.NewInt(3), nil)
	if d.Cmp(bdBound) <= 0 {
		return "boneh-durfee-bound", true
	}

	decimal := d.Text(10)
	binary := d.Text(2)

	if isPalindrome(decimal) || isPalindrome(binary) {
		return "palindrome", true
	}

	if hasRepeatingPattern(decimal) || hasRepeatingPattern(binary) {
		return "repeating-pattern", true
	}

	if nearPowerOfTwo(d) {
		return "near-power-of-two", true
	}

	if low16Uniform(d) {
		return "low-entropy-tail", true
	}

	return "", false
}

// hammingWeight returns the number of set bits in d's binary representation.
func hammingWeight(d *big.Int) int {
	count := 0
	for _, word := range d.Bits() {
		count += bits.OnesCount(uint(word))
	}
	return count
}

// isPalindrome reports whether s reads the same forwards and backwards.
func isPalindrome(s string) bool {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}

// hasRepeatingPattern reports whether s begins with a period-L block
// (2 <= L <= len(s)/3) repeated at least three times contiguously from
// position 0.
func hasRepeatingPattern(s string) bool {
	for l := 2; l*3 <= len(s); l++ {
		pattern := s[:l]
		if s[:l*3] == strings.Repeat(pattern, 3) {
			return true
		}
	}
	return false
}

// nearPowerOfTwo reports whether d is within 2^16 of the nearest power of
// two (checking both the power below and the power above its bit length).
func nearPowerOfTwo(d *big.Int) bool {
	threshold := big.NewInt(1 << 16)

	below := new(big.Int).Lsh(bigOne, uint(d.BitLen()-1))
	diff := new(big.Int).Sub(d, below)
	diff.Abs(diff)
	if diff.Cmp(threshold) < 0 {
		return true
	}

	above := new(big.Int).Lsh(bigOne, uint(d.BitLen()))
	diff2 := new(big.Int).Sub(above, d)
	diff2.Abs(diff2)
	return diff2.Cmp(threshold) < 0
}

// low16Uniform reports whether the low 16 bits of d are all 0 or all 1.
func low16Uniform(d *big.Int) bool {
	mask := big.NewInt(0xFFFF)
	low := new(big.Int).And(d, mask)
	return low.Sign() == 0 || low.Cmp(mask) == 0
}
