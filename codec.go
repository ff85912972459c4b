package rsago

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// bigIntTag mirrors a JavaScript BigInt literal suffix; every big integer
// in the wire format renders as its decimal digits followed by this
// literal marker. Decoders accept both the tagged and the plain decimal
// form (spec §6).
const bigIntTag = "n"

// taggedBigInt marshals as "<decimal>n" and unmarshals either that or a
// plain decimal string.
type taggedBigInt big.Int

func (t taggedBigInt) MarshalJSON() ([]byte, error) {
	b := (*big.Int)(&t)
	return json.Marshal(b.Text(10) + bigIntTag)
}

func (t *taggedBigInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rsago: codec: %w", ErrDecoding)
	}
	s = strings.TrimSuffix(s, bigIntTag)

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("rsago: codec: %w", ErrDecoding)
	}
	*t = taggedBigInt(*v)
	return nil
}

func (t *taggedBigInt) big() *big.Int {
	return (*big.Int)(t)
}

func fromBig(v *big.Int) taggedBigInt {
	return taggedBigInt(*v)
}

// publicKeyWire is the JSON shape of a serialized PublicKey: {n, e}.
type publicKeyWire struct {
	N taggedBigInt `json:"n"`
	E taggedBigInt `json:"e"`
}

// privateKeyWire is the JSON shape of a serialized PrivateKey:
// {p, q, e, d, n, phi, dp, dq, qinv}.
type privateKeyWire struct {
	P    taggedBigInt `json:"p"`
	Q    taggedBigInt `json:"q"`
	E    taggedBigInt `json:"e"`
	D    taggedBigInt `json:"d"`
	N    taggedBigInt `json:"n"`
	Phi  taggedBigInt `json:"phi"`
	Dp   taggedBigInt `json:"dp"`
	Dq   taggedBigInt `json:"dq"`
	Qinv taggedBigInt `json:"qinv"`
}

// EncodePublicKey renders pub as base64-encoded UTF-8 JSON, the only
// external-facing public-key representation this package defines.
func EncodePublicKey(pub *PublicKey) (string, error) {
	wire := publicKeyWire{N: fromBig(pub.N), E: fromBig(pub.E)}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("rsago: codec: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodePublicKey reverses EncodePublicKey.
func DecodePublicKey(blob string) (*PublicKey, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("rsago: codec: %w", ErrDecoding)
	}

	var wire publicKeyWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("rsago: codec: %w", ErrDecoding)
	}

	return &PublicKey{N: wire.N.big(), E: wire.E.big()}, nil
}

// EncodePrivateKey renders priv as base64-encoded UTF-8 JSON.
func EncodePrivateKey(priv *PrivateKey) (string, error) {
	wire := privateKeyWire{
		P:    fromBig(priv.P),
		Q:    fromBig(priv.Q),
		E:    fromBig(priv.E),
		D:    fromBig(priv.D),
		N:    fromBig(priv.N),
		Phi:  fromBig(priv.Phi),
		Dp:   fromBig(priv.Dp),
		Dq:   fromBig(priv.Dq),
		Qinv: fromBig(priv.Qinv),
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("rsago: codec: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodePrivateKey reverses EncodePrivateKey.
func DecodePrivateKey(blob string) (*PrivateKey, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("rsago: codec: %w", ErrDecoding)
	}

	var wire privateKeyWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("rsago: codec: %w", ErrDecoding)
	}

	return &PrivateKey{
		P:    wire.P.big(),
		Q:    wire.Q.big(),
		E:    wire.E.big(),
		D:    wire.D.big(),
		N:    wire.N.big(),
		Phi:  wire.Phi.big(),
		Dp:   wire.Dp.big(),
		Dq:   wire.Dq.big(),
		Qinv: wire.Qinv.big(),
	}, nil
}
