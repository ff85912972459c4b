package rsago

import (
	"encoding/binary"
)

// MGF1 expands seed into a maskLen-byte mask by concatenating
// SHA-256(seed || I2OSP(i, 4)) for i = 0, 1, ... until enough bytes have
// been produced, then truncating to exactly maskLen bytes.
func MGF1(seed []byte, maskLen int) []byte {
	out := make([]byte, 0, maskLen+sha256Size)
	var counter [4]byte
	for i := uint32(0); len(out) < maskLen; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		h := NewHasher256()
		h.Write(seed)
		h.Write(counter[:])
		out = h.Sum(out)
	}
	return out[:maskLen]
}

// xorBytes XORs a and b byte-by-byte; both slices must have equal length.
func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// oaepEncode implements spec §4.6 Encode: builds the OAEP-padded block EM
// of length k = KeySize(pub.N), drawing its random seed from a BBS stream
// freshly seeded from entropy (§4.6 step 5).
func oaepEncode(pub *PublicKey, label, message []byte, entropy EntropySource) ([]byte, error) {
	k := KeySize(pub.N)
	hLen := sha256Size

	if len(message) > k-2*hLen-2 {
		return nil, ErrInputTooLarge
	}

	lHash := SHA256(label)

	psLen := k - len(message) - 2*hLen - 2
	db := make([]byte, 0, k-hLen-1)
	db = append(db, lHash[:]...)
	db = append(db, make([]byte, psLen)...)
	db = append(db, 0x01)
	db = append(db, message...)

	stream, err := NewEntropySeededStream(entropy, hLen*8)
	if err != nil {
		return nil, err
	}
	seed := stream.NextBytes(hLen)

	dbMask := MGF1(seed, k-hLen-1)
	maskedDB := xorBytes(db, dbMask)

	seedMask := MGF1(maskedDB, hLen)
	maskedSeed := xorBytes(seed, seedMask)

	em := make([]byte, 0, k)
	em = append(em, 0x00)
	em = append(em, maskedSeed...)
	em = append(em, maskedDB...)
	return em, nil
}

// oaepDecode implements spec §4.6 Decode. Every failure path returns the
// single, indistinguishable ErrOAEP; logger (if non-nil) receives the
// specific cause at debug level only, per the padding-oracle note in §7/§9.
func oaepDecode(priv *PrivateKey, label, em []byte, log func(string)) ([]byte, error) {
	k := KeySize(priv.N)
	hLen := sha256Size

	if len(em) != k || k < 2*hLen+2 {
		if log != nil {
			log("oaep: malformed block length")
		}
		return nil, ErrOAEP
	}
	if em[0] != 0x00 {
		if log != nil {
			log("oaep: leading byte not zero")
		}
		return nil, ErrOAEP
	}

	maskedSeed := em[1 : 1+hLen]
	maskedDB := em[1+hLen:]

	seedMask := MGF1(maskedDB, hLen)
	seed := xorBytes(maskedSeed, seedMask)

	dbMask := MGF1(seed, k-hLen-1)
	db := xorBytes(maskedDB, dbMask)

	lHash := SHA256(label)
	if !bytesEqual(db[:hLen], lHash[:]) {
		if log != nil {
			log("oaep: label hash mismatch")
		}
		return nil, ErrOAEP
	}

	rest := db[hLen:]
	sepIdx := -1
	for i, b := range rest {
		if b == 0x01 {
			sepIdx = i
			break
		}
		if b != 0x00 {
			if log != nil {
				log("oaep: non-zero byte before separator")
			}
			return nil, ErrOAEP
		}
	}
	if sepIdx == -1 {
		if log != nil {
			log("oaep: missing 0x01 separator")
		}
		return nil, ErrOAEP
	}

	return rest[sepIdx+1:], nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EncryptOAEP encrypts message under pub with an empty label:
// plaintext -> OAEP-encode -> integer m -> m^e mod n -> ciphertext.
func (e *Engine) EncryptOAEP(pub *PublicKey, message []byte) ([]byte, error) {
	return e.EncryptOAEPWithLabel(pub, nil, message)
}

// EncryptOAEPWithLabel is EncryptOAEP with an explicit (possibly non-empty)
// label.
func (e *Engine) EncryptOAEPWithLabel(pub *PublicKey, label, message []byte) ([]byte, error) {
	em, err := oaepEncode(pub, label, message, e.Entropy)
	if err != nil {
		return nil, err
	}

	m := OS2IP(em)
	c, err := PublicOp(m, pub)
	if err != nil {
		return nil, err
	}

	return I2OSP(c, KeySize(pub.N))
}

// DecryptOAEP reverses EncryptOAEP using the requested private-operation
// variant: ciphertext -> private-op -> integer m -> OAEP-decode -> plaintext.
func (e *Engine) DecryptOAEP(priv *PrivateKey, ciphertext []byte, variant PrivateOpVariant) ([]byte, error) {
	return e.DecryptOAEPWithLabel(priv, nil, ciphertext, variant)
}

// DecryptOAEPWithLabel is DecryptOAEP with an explicit label.
func (e *Engine) DecryptOAEPWithLabel(priv *PrivateKey, label, ciphertext []byte, variant PrivateOpVariant) ([]byte, error) {
	c := OS2IP(ciphertext)
	m, err := e.privateOp(c, priv, variant)
	if err != nil {
		return nil, err
	}

	em, err := I2OSP(m, KeySize(priv.N))
	if err != nil {
		e.logger().WithError(err).Debug("oaep: recovered integer does not fit key size")
		return nil, ErrOAEP
	}

	logFn := func(msg string) { e.logger().Debug(msg) }
	return oaepDecode(priv, label, em, logFn)
}
