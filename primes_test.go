package rsago

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// sieve computes primality truth for [0, n] via trial division, used only
// as a reference oracle for the Miller-Rabin tester under test.
func sieve(n int) []bool {
	isComposite := make([]bool, n+1)
	result := make([]bool, n+1)
	for i := 2; i <= n; i++ {
		if !isComposite[i] {
			result[i] = true
			for j := i * 2; j <= n; j += i {
				isComposite[j] = true
			}
		}
	}
	return result
}

func TestIsPrimeAgainstSieve(t *testing.T) {
	truth := sieve(1000)

	for i := 0; i <= 1000; i++ {
		got := IsPrime(big.NewInt(int64(i)), DefaultMillerRabinRounds)
		require.Equalf(t, truth[i], got, "mismatch at n=%d", i)
	}
}

func TestIsPrimeEdgeCases(t *testing.T) {
	require.False(t, IsPrime(big.NewInt(-7), 16))
	require.False(t, IsPrime(big.NewInt(0), 16))
	require.False(t, IsPrime(big.NewInt(1), 16))
	require.True(t, IsPrime(big.NewInt(2), 16))
	require.True(t, IsPrime(big.NewInt(3), 16))
	require.False(t, IsPrime(big.NewInt(4), 16))
}

func TestGeneratePrime3Mod4(t *testing.T) {
	seed := big.NewInt(424242)
	p, err := generatePrime3Mod4(seed, 64, DefaultMaxPrimeTries)
	require.NoError(t, err)
	require.True(t, IsPrime(p, DefaultMillerRabinRounds))
	require.Equal(t, int64(3), mod4(p))
}

func TestFindSafePrime(t *testing.T) {
	seed := big.NewInt(13371337)
	q, err := findSafePrime(seed, 64, DefaultMaxPrimeTries)
	require.NoError(t, err)
	require.True(t, IsPrime(q, DefaultMillerRabinRounds))

	pPrime := new(big.Int).Sub(q, bigOne)
	pPrime.Rsh(pPrime, 1)
	require.True(t, IsPrime(pPrime, DefaultMillerRabinRounds), "(q-1)/2 must be prime")
}
