package rsago

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicOpRejectsOversizedInput(t *testing.T) {
	pub := &PublicKey{N: big.NewInt(91), E: big.NewInt(5)}
	_, err := PublicOp(big.NewInt(91), pub)
	require.ErrorIs(t, err, ErrInputTooLarge)
}

func TestPrivateOpVariantsAgreeOnSmallKey(t *testing.T) {
	// A tiny textbook key (no padding) to check the four private-operation
	// variants against each other directly, independent of OAEP/PSS.
	p := big.NewInt(61)
	q := big.NewInt(53)
	n := new(big.Int).Mul(p, q)
	e := big.NewInt(17)
	phi := new(big.Int).Mul(big.NewInt(60), big.NewInt(52))
	d := new(big.Int).ModInverse(e, phi)
	require.NotNil(t, d)

	pMinus1 := big.NewInt(60)
	qMinus1 := big.NewInt(52)
	dp := new(big.Int).Mod(d, pMinus1)
	dq := new(big.Int).Mod(d, qMinus1)
	qinv := new(big.Int).ModInverse(q, p)
	require.NotNil(t, qinv)

	priv := &PrivateKey{P: p, Q: q, N: n, E: e, D: d, Phi: phi, Dp: dp, Dq: dq, Qinv: qinv}
	pub := &PublicKey{N: n, E: e}

	plain := big.NewInt(42)
	c, err := PublicOp(plain, pub)
	require.NoError(t, err)

	entropy := CryptoRandSource{}

	naive, err := PrivateOpNaive(c, priv)
	require.NoError(t, err)
	require.Equal(t, plain, naive)

	blinded, err := PrivateOpBlinded(c, priv, entropy)
	require.NoError(t, err)
	require.Equal(t, plain, blinded)

	crt, err := PrivateOpCRT(c, priv)
	require.NoError(t, err)
	require.Equal(t, plain, crt)

	blindedCRT, err := PrivateOpBlindedCRT(c, priv, entropy)
	require.NoError(t, err)
	require.Equal(t, plain, blindedCRT)
}

func TestI2OSPRejectsOversizedInteger(t *testing.T) {
	_, err := I2OSP(big.NewInt(1<<20), 1)
	require.Error(t, err)
}

func TestI2OSPRejectsNegative(t *testing.T) {
	_, err := I2OSP(big.NewInt(-1), 4)
	require.Error(t, err)
}
