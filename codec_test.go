package rsago

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicKeyCodecRoundTrip(t *testing.T) {
	engine := NewEngine()
	pub, _, err := engine.GenerateKey(512)
	require.NoError(t, err)

	blob, err := EncodePublicKey(pub)
	require.NoError(t, err)

	decoded, err := DecodePublicKey(blob)
	require.NoError(t, err)

	require.Equal(t, pub.N, decoded.N)
	require.Equal(t, pub.E, decoded.E)
}

func TestPrivateKeyCodecRoundTrip(t *testing.T) {
	engine := NewEngine()
	_, priv, err := engine.GenerateKey(512)
	require.NoError(t, err)

	blob, err := EncodePrivateKey(priv)
	require.NoError(t, err)

	decoded, err := DecodePrivateKey(blob)
	require.NoError(t, err)

	require.Equal(t, priv.P, decoded.P)
	require.Equal(t, priv.Q, decoded.Q)
	require.Equal(t, priv.N, decoded.N)
	require.Equal(t, priv.E, decoded.E)
	require.Equal(t, priv.D, decoded.D)
	require.Equal(t, priv.Phi, decoded.Phi)
	require.Equal(t, priv.Dp, decoded.Dp)
	require.Equal(t, priv.Dq, decoded.Dq)
	require.Equal(t, priv.Qinv, decoded.Qinv)
}

func TestDecodePublicKeyAcceptsPlainDecimal(t *testing.T) {
	// Decoders must accept both "<digits>n" and plain decimal strings
	// (spec §6).
	blob := `{"n":"3233","e":"17"}`
	encoded := base64.StdEncoding.EncodeToString([]byte(blob))

	pub, err := DecodePublicKey(encoded)
	require.NoError(t, err)
	require.Equal(t, "3233", pub.N.Text(10))
	require.Equal(t, "17", pub.E.Text(10))
}

func TestDecodeRejectsMalformedBlob(t *testing.T) {
	_, err := DecodePublicKey("not-valid-base64!!")
	require.ErrorIs(t, err, ErrDecoding)
}
