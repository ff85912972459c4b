package rsago

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegerRoot(t *testing.T) {
	cases := []struct {
		n    int64
		k    int
		want int64
	}{
		{27, 3, 3},
		{28, 3, 3},
		{26, 3, 2},
		{1024, 10, 2},
		{1, 5, 1},
	}
	for _, tc := range cases {
		got := integerRoot(big.NewInt(tc.n), tc.k)
		require.Equalf(t, big.NewInt(tc.want), got, "integerRoot(%d,%d)", tc.n, tc.k)
	}
}

func TestIsPalindrome(t *testing.T) {
	require.True(t, isPalindrome("12321"))
	require.True(t, isPalindrome("1221"))
	require.False(t, isPalindrome("12345"))
}

func TestHasRepeatingPattern(t *testing.T) {
	require.True(t, hasRepeatingPattern("101010111"))
	require.True(t, hasRepeatingPattern("abcabcabcxyz"))
	require.False(t, hasRepeatingPattern("123456789"))
}

func TestNearPowerOfTwo(t *testing.T) {
	require.True(t, nearPowerOfTwo(big.NewInt(1024)))
	require.True(t, nearPowerOfTwo(new(big.Int).Add(big.NewInt(1024), big.NewInt(10))))
	require.False(t, nearPowerOfTwo(big.NewInt(123456789)))
}

func TestLow16Uniform(t *testing.T) {
	require.True(t, low16Uniform(big.NewInt(0xFFFF)))
	require.True(t, low16Uniform(big.NewInt(0x10000))) // low 16 bits all zero
	require.False(t, low16Uniform(big.NewInt(0x1234)))
}

func TestGenerateKeyInvariants(t *testing.T) {
	engine := NewEngine()
	pub, priv, err := engine.GenerateKey(512)
	require.NoError(t, err)

	// e*d == 1 (mod phi)
	check := new(big.Int).Mul(priv.E, priv.D)
	check.Mod(check, priv.Phi)
	require.Equal(t, bigOne, check)

	// dp = d mod (p-1); dq = d mod (q-1)
	pMinus1 := new(big.Int).Sub(priv.P, bigOne)
	qMinus1 := new(big.Int).Sub(priv.Q, bigOne)
	require.Equal(t, new(big.Int).Mod(priv.D, pMinus1), priv.Dp)
	require.Equal(t, new(big.Int).Mod(priv.D, qMinus1), priv.Dq)

	// q*qinv == 1 (mod p)
	qq := new(big.Int).Mul(priv.Q, priv.Qinv)
	qq.Mod(qq, priv.P)
	require.Equal(t, bigOne, qq)

	// safe primes: (p-1)/2 and (q-1)/2 are prime
	pHalf := new(big.Int).Rsh(pMinus1, 1)
	qHalf := new(big.Int).Rsh(qMinus1, 1)
	require.True(t, IsPrime(pHalf, DefaultMillerRabinRounds))
	require.True(t, IsPrime(qHalf, DefaultMillerRabinRounds))

	// hardening bounds
	reason, weak := isWeakExponent(priv.D, priv.N)
	require.False(t, weak, "generated d rejected post-hoc: %s", reason)

	require.Equal(t, pub.N, priv.N)
}
