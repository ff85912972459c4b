package rsago

import "math/big"

// DefaultMaxPrimeTries bounds the candidate-search loops in
// generatePrime3Mod4 and findSafePrime before they fail with
// ErrPrimeGenerationExhausted.
const DefaultMaxPrimeTries = 1000

// DefaultMillerRabinRounds is the round count used throughout the key
// generator's internal primality checks.
const DefaultMillerRabinRounds = 16

// bbsSmallP, bbsSmallQ are the small, fixed 3-mod-4 primes used only to
// drive the BBS stream that shapes safe-prime candidates. They never
// appear in any RSA modulus.
var (
	bbsSmallP = big.NewInt(499)
	bbsSmallQ = big.NewInt(547)
)

// millerRabinWitnesses is the fixed, deterministic witness set the tester
// draws from cyclically.
var millerRabinWitnesses = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23}

// IsPrime runs a Miller-Rabin primality test on n using rounds witnesses
// drawn cyclically from the fixed set {2,3,5,7,11,13,17,19,23}.
func IsPrime(n *big.Int, rounds int) bool {
	if n.Sign() <= 0 {
		return false
	}
	if n.Cmp(big.NewInt(2)) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}
	if n.Cmp(big.NewInt(2)) < 0 {
		return false
	}

	// n - 1 = 2^r * d, d odd.
	nMinusOne := new(big.Int).Sub(n, bigOne)
	d := new(big.Int).Set(nMinusOne)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	nMinusTwo := new(big.Int).Sub(n, bigTwo)

	for i := 0; i < rounds; i++ {
		a := big.NewInt(millerRabinWitnesses[i%len(millerRabinWitnesses)])
		if a.Cmp(nMinusTwo) >= 0 {
			continue
		}

		x := new(big.Int).Exp(a, d, n)
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		composite := true
		for j := 0; j < r-1; j++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}

	return true
}

// generatePrime3Mod4 draws a bits-bit prime congruent to 3 mod 4 via a BBS
// stream shaped by the fixed small primes 499 and 547, seeded by
// seed+attemptIndex on every retry. Up to maxTries candidates are tried
// before ErrPrimeGenerationExhausted.
func generatePrime3Mod4(seed *big.Int, bits int, maxTries int) (*big.Int, error) {
	if maxTries <= 0 {
		maxTries = DefaultMaxPrimeTries
	}

	for attempt := 0; attempt < maxTries; attempt++ {
		attemptSeed := new(big.Int).Add(seed, big.NewInt(int64(attempt)))

		bbs, err := NewBlumBlumShub(attemptSeed.Bytes(), bbsSmallP, bbsSmallQ, bits)
		if err != nil {
			return nil, err
		}

		candidate := bbs.NextBits()

		if mod4(candidate) != 3 {
			continue
		}
		if !IsPrime(candidate, DefaultMillerRabinRounds) {
			continue
		}

		return candidate, nil
	}

	return nil, ErrPrimeGenerationExhausted
}

// findSafePrime drives generatePrime3Mod4 to produce p', then tests whether
// q = 2p'+1 is prime. On success it returns q, a safe prime with
// (q-1)/2 = p' prime. On failure of a given p' it draws a fresh candidate.
func findSafePrime(seed *big.Int, bits int, maxTries int) (*big.Int, error) {
	if maxTries <= 0 {
		maxTries = DefaultMaxPrimeTries
	}

	for attempt := 0; attempt < maxTries; attempt++ {
		attemptSeed := new(big.Int).Add(seed, big.NewInt(int64(attempt*1000)))

		pPrime, err := generatePrime3Mod4(attemptSeed, bits-1, maxTries)
		if err != nil {
			continue
		}

		q := new(big.Int).Lsh(pPrime, 1)
		q.Add(q, bigOne)

		if IsPrime(q, DefaultMillerRabinRounds) {
			return q, nil
		}
	}

	return nil, ErrPrimeGenerationExhausted
}
