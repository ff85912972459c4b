package rsago

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEndToEndScenarios exercises the concrete regression scenarios of
// spec §8 against a single generated key.
func TestEndToEndScenarios(t *testing.T) {
	engine := NewEngine()

	pub, priv, err := engine.GenerateKey(1024)
	require.NoError(t, err)

	t.Run("modulus size and safe primes", func(t *testing.T) {
		require.Contains(t, []int{1023, 1024}, priv.N.BitLen())

		pHalf := new(big.Int).Rsh(new(big.Int).Sub(priv.P, bigOne), 1)
		qHalf := new(big.Int).Rsh(new(big.Int).Sub(priv.Q, bigOne), 1)
		require.True(t, IsPrime(pHalf, DefaultMillerRabinRounds))
		require.True(t, IsPrime(qHalf, DefaultMillerRabinRounds))
	})

	t.Run("key blob round-trips", func(t *testing.T) {
		pubBlob, err := EncodePublicKey(pub)
		require.NoError(t, err)
		privBlob, err := EncodePrivateKey(priv)
		require.NoError(t, err)

		decodedPub, err := DecodePublicKey(pubBlob)
		require.NoError(t, err)
		decodedPriv, err := DecodePrivateKey(privBlob)
		require.NoError(t, err)

		require.Equal(t, pub.N, decodedPub.N)
		require.Equal(t, priv.D, decodedPriv.D)
	})

	t.Run("OAEP round-trips under every private-operation variant", func(t *testing.T) {
		msg := []byte("Message à chiffrer")
		ct, err := engine.EncryptOAEP(pub, msg)
		require.NoError(t, err)

		for _, variant := range []PrivateOpVariant{OpNaive, OpBlinded, OpCRT, OpBlindedCRT} {
			pt, err := engine.DecryptOAEP(priv, ct, variant)
			require.NoError(t, err)
			require.Equal(t, msg, pt)
		}
	})

	t.Run("PSS sign/verify and tamper detection", func(t *testing.T) {
		msg := []byte("Ceci est un message à signer")
		sig, err := engine.SignPSS(priv, msg, OpCRT)
		require.NoError(t, err)
		require.True(t, engine.VerifyPSS(pub, msg, sig))

		tamperedSig := append([]byte(nil), sig...)
		tamperedSig[0] ^= 0x01
		require.False(t, engine.VerifyPSS(pub, msg, tamperedSig))

		tamperedMsg := append([]byte(nil), msg...)
		tamperedMsg[len(tamperedMsg)-1] ^= 0x01
		require.False(t, engine.VerifyPSS(pub, tamperedMsg, sig))
	})

	t.Run("oversized plaintext rejects", func(t *testing.T) {
		k := KeySize(pub.N)
		overLen := k - 2*32 - 1 // one byte past OAEP capacity
		_, err := engine.EncryptOAEP(pub, make([]byte, overLen))
		require.ErrorIs(t, err, ErrInputTooLarge)
	})
}
