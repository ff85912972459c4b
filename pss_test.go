package rsago

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPSSSignVerifyRoundTrip(t *testing.T) {
	engine := NewEngine()
	pub, priv, err := engine.GenerateKey(1024)
	require.NoError(t, err)

	msg := []byte("Ceci est un message à signer")

	for _, variant := range []PrivateOpVariant{OpNaive, OpBlinded, OpCRT, OpBlindedCRT} {
		sig, err := engine.SignPSS(priv, msg, variant)
		require.NoError(t, err)
		require.True(t, engine.VerifyPSS(pub, msg, sig))
	}
}

func TestPSSRejectsFlippedSignatureByte(t *testing.T) {
	engine := NewEngine()
	pub, priv, err := engine.GenerateKey(1024)
	require.NoError(t, err)

	msg := []byte("Ceci est un message à signer")
	sig, err := engine.SignPSS(priv, msg, OpCRT)
	require.NoError(t, err)

	flipped := append([]byte(nil), sig...)
	flipped[len(flipped)-1] ^= 0xFF

	require.False(t, engine.VerifyPSS(pub, msg, flipped))
}

func TestPSSRejectsFlippedMessageByte(t *testing.T) {
	engine := NewEngine()
	pub, priv, err := engine.GenerateKey(1024)
	require.NoError(t, err)

	msg := []byte("Ceci est un message à signer")
	sig, err := engine.SignPSS(priv, msg, OpCRT)
	require.NoError(t, err)

	otherMsg := append([]byte(nil), msg...)
	otherMsg[0] ^= 0xFF

	require.False(t, engine.VerifyPSS(pub, otherMsg, sig))
}

func TestPSSTrailerByteMustMatch(t *testing.T) {
	engine := NewEngine()
	_, priv, err := engine.GenerateKey(1024)
	require.NoError(t, err)

	mHash := SHA256([]byte("trailer check"))
	emBits := priv.N.BitLen() - 1
	em, err := pssEncode(mHash[:], emBits, engine.Entropy)
	require.NoError(t, err)

	em[len(em)-1] = 0xBB
	require.False(t, pssVerify(mHash[:], em, emBits))
}
