package rsago

// pssSaltLen is sLen = hLen = 32, fixed by spec §4.7.
const pssSaltLen = sha256Size

// pssEncode implements spec §4.7 Encode: builds the PSS-encoded message EM
// of bit length emBits, drawing a fresh salt from a BBS stream seeded from
// entropy (§4.7 step 2).
func pssEncode(mHash []byte, emBits int, entropy EntropySource) ([]byte, error) {
	hLen := sha256Size
	sLen := pssSaltLen
	emLen := (emBits + 7) / 8

	if emLen < hLen+sLen+2 {
		return nil, ErrPSS
	}

	stream, err := NewEntropySeededStream(entropy, sLen*8)
	if err != nil {
		return nil, err
	}
	salt := stream.NextBytes(sLen)

	mPrime := make([]byte, 0, 8+hLen+sLen)
	mPrime = append(mPrime, make([]byte, 8)...)
	mPrime = append(mPrime, mHash...)
	mPrime = append(mPrime, salt...)
	h := SHA256(mPrime)

	psLen := emLen - sLen - hLen - 2
	db := make([]byte, 0, emLen-hLen-1)
	db = append(db, make([]byte, psLen)...)
	db = append(db, 0x01)
	db = append(db, salt...)

	dbMask := MGF1(h[:], emLen-hLen-1)
	maskedDB := xorBytes(db, dbMask)

	unusedBits := 8*emLen - emBits
	if unusedBits > 0 {
		maskedDB[0] &= 0xFF >> uint(unusedBits)
	}

	em := make([]byte, 0, emLen+1)
	em = append(em, maskedDB...)
	em = append(em, h[:]...)
	em = append(em, 0xBC)
	return em, nil
}

// pssVerify implements spec §4.7 Verify: returns false on any mismatch
// rather than an error, per the spec's "verification returns false rather
// than throwing" design.
func pssVerify(mHash, em []byte, emBits int) bool {
	hLen := sha256Size
	sLen := pssSaltLen
	emLen := (emBits + 7) / 8

	if len(em) != emLen || emLen < hLen+sLen+2 {
		return false
	}
	if em[len(em)-1] != 0xBC {
		return false
	}

	maskedDB := em[:emLen-hLen-1]
	h := em[emLen-hLen-1 : emLen-1]

	unusedBits := 8*emLen - emBits
	if unusedBits > 0 {
		topMask := byte(0xFF << uint(8-unusedBits))
		if maskedDB[0]&topMask != 0 {
			return false
		}
	}

	dbMask := MGF1(h, emLen-hLen-1)
	db := xorBytes(maskedDB, dbMask)
	if unusedBits > 0 {
		db[0] &= 0xFF >> uint(unusedBits)
	}

	psLen := emLen - sLen - hLen - 2
	for i := 0; i < psLen; i++ {
		if db[i] != 0x00 {
			return false
		}
	}
	if db[psLen] != 0x01 {
		return false
	}

	salt := db[psLen+1:]
	if len(salt) != sLen {
		return false
	}

	mPrime := make([]byte, 0, 8+hLen+sLen)
	mPrime = append(mPrime, make([]byte, 8)...)
	mPrime = append(mPrime, mHash...)
	mPrime = append(mPrime, salt...)
	hPrime := SHA256(mPrime)

	return bytesEqual(hPrime[:], h)
}

// SignPSS signs message under priv using the requested private-operation
// variant: message -> SHA-256 -> PSS-encode -> m^d mod n -> signature.
func (e *Engine) SignPSS(priv *PrivateKey, message []byte, variant PrivateOpVariant) ([]byte, error) {
	mHash := SHA256(message)
	emBits := priv.N.BitLen() - 1

	em, err := pssEncode(mHash[:], emBits, e.Entropy)
	if err != nil {
		return nil, err
	}

	m := OS2IP(em)
	s, err := e.privateOp(m, priv, variant)
	if err != nil {
		return nil, err
	}

	return I2OSP(s, KeySize(priv.N))
}

// VerifyPSS verifies signature over message under pub: signature ->
// s^e mod n -> PSS-verify -> boolean.
func (e *Engine) VerifyPSS(pub *PublicKey, message, signature []byte) bool {
	s := OS2IP(signature)
	m, err := PublicOp(s, pub)
	if err != nil {
		return false
	}

	emBits := pub.N.BitLen() - 1
	emLen := (emBits + 7) / 8

	em, err := I2OSP(m, emLen)
	if err != nil {
		return false
	}

	mHash := SHA256(message)
	return pssVerify(mHash[:], em, emBits)
}
