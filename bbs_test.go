package rsago

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlumBlumShubShape(t *testing.T) {
	seed := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	bbs, err := NewBlumBlumShub(seed, bbsSmallP, bbsSmallQ, 128)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		r := bbs.NextBits()
		require.Equal(t, 128, r.BitLen())
		require.Equal(t, uint(1), r.Bit(0), "result must be odd")
		require.Equal(t, int64(3), mod4(r), "result must be congruent to 3 mod 4")
	}
}

func TestBlumBlumShubRejectsPrimesNot3Mod4(t *testing.T) {
	_, err := NewBlumBlumShub([]byte{9}, big.NewInt(5), big.NewInt(7), 32)
	require.Error(t, err)
}

func TestBlumBlumShubDeterministic(t *testing.T) {
	seed := []byte("fixed-regression-seed")
	a, err := NewBlumBlumShub(seed, bbsSmallP, bbsSmallQ, 64)
	require.NoError(t, err)
	b, err := NewBlumBlumShub(seed, bbsSmallP, bbsSmallQ, 64)
	require.NoError(t, err)

	require.Equal(t, a.NextBits(), b.NextBits())
}
