package rsago

// Hash engine: SHA-256 (required by the OAEP/PSS engines) and SHA-512
// (carried for completeness per the spec's design notes; the RSA core never
// calls it). Both are implemented directly from FIPS 180-4 — no call into
// crypto/sha256 or crypto/sha512 — since the engine treats a pre-existing
// cryptographic library as out of scope (see package doc).

import "encoding/binary"

const (
	sha256BlockSize = 64
	sha256Size      = 32
	sha512BlockSize = 128
	sha512Size      = 64
)

var sha256Init = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Hasher256 accumulates bytes and produces a SHA-256 digest. It mirrors the
// block/buffer shape of the standard library's hash.Hash implementations
// so MGF1 (see oaep.go) can drive it incrementally.
type Hasher256 struct {
	h   [8]uint32
	x   [sha256BlockSize]byte
	nx  int
	len uint64
}

// NewHasher256 returns a Hasher256 ready to accept Write calls.
func NewHasher256() *Hasher256 {
	d := &Hasher256{}
	d.Reset()
	return d
}

// Reset restores the hasher to its initial state.
func (d *Hasher256) Reset() {
	d.h = sha256Init
	d.nx = 0
	d.len = 0
}

// Write implements io.Writer, absorbing p into the running digest.
func (d *Hasher256) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		if d.nx == sha256BlockSize {
			sha256Block(&d.h, d.x[:])
			d.nx = 0
		}
		p = p[c:]
	}
	for len(p) >= sha256BlockSize {
		sha256Block(&d.h, p[:sha256BlockSize])
		p = p[sha256BlockSize:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return n, nil
}

// Sum appends the current digest to b and returns the resulting slice,
// without mutating the hasher's running state (the length/buffer copy used
// to finish the padding is discarded after computing the digest).
func (d *Hasher256) Sum(b []byte) []byte {
	cp := *d
	hash := cp.checkSum()
	return append(b, hash[:]...)
}

func (d *Hasher256) checkSum() [sha256Size]byte {
	length := d.len
	var tmp [sha256BlockSize]byte
	tmp[0] = 0x80
	if length%64 < 56 {
		d.Write(tmp[0 : 56-length%64])
	} else {
		d.Write(tmp[0 : 64+56-length%64])
	}

	// length in bits, big-endian.
	length <<= 3
	binary.BigEndian.PutUint64(tmp[:8], length)
	d.Write(tmp[:8])

	if d.nx != 0 {
		panic("rsago: internal error: sha256 buffer not flushed")
	}

	var digest [sha256Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(digest[i*4:], s)
	}
	return digest
}

func sha256Block(h *[8]uint32, p []byte) {
	var w [64]uint32
	for len(p) >= sha256BlockSize {
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[i*4:])
		}
		for i := 16; i < 64; i++ {
			v1 := w[i-2]
			t1 := (rotr32(v1, 17)) ^ (rotr32(v1, 19)) ^ (v1 >> 10)
			v2 := w[i-15]
			t2 := (rotr32(v2, 7)) ^ (rotr32(v2, 18)) ^ (v2 >> 3)
			w[i] = t1 + w[i-7] + t2 + w[i-16]
		}

		a, b, c, d0, e, f, g, h0 := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

		for i := 0; i < 64; i++ {
			t1 := h0 + ((rotr32(e, 6)) ^ (rotr32(e, 11)) ^ (rotr32(e, 25))) + ((e & f) ^ (^e & g)) + sha256K[i] + w[i]
			t2 := ((rotr32(a, 2)) ^ (rotr32(a, 13)) ^ (rotr32(a, 22))) + ((a & b) ^ (a & c) ^ (b & c))
			h0 = g
			g = f
			f = e
			e = d0 + t1
			d0 = c
			c = b
			b = a
			a = t1 + t2
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d0
		h[4] += e
		h[5] += f
		h[6] += g
		h[7] += h0

		p = p[sha256BlockSize:]
	}
}

func rotr32(x uint32, n uint) uint32 {
	return (x >> n) | (x << (32 - n))
}

// SHA256 hashes data in one call and returns the 32-byte digest.
func SHA256(data []byte) [sha256Size]byte {
	h := NewHasher256()
	h.Write(data)
	var out [sha256Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// --- SHA-512, carried for completeness (spec §4.1); unused by the RSA core ---

var sha512Init = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var sha512K = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// Hasher512 is the SHA-512 counterpart of Hasher256.
type Hasher512 struct {
	h   [8]uint64
	x   [sha512BlockSize]byte
	nx  int
	len uint64
}

// NewHasher512 returns a Hasher512 ready to accept Write calls.
func NewHasher512() *Hasher512 {
	d := &Hasher512{}
	d.Reset()
	return d
}

func (d *Hasher512) Reset() {
	d.h = sha512Init
	d.nx = 0
	d.len = 0
}

func (d *Hasher512) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		if d.nx == sha512BlockSize {
			sha512Block(&d.h, d.x[:])
			d.nx = 0
		}
		p = p[c:]
	}
	for len(p) >= sha512BlockSize {
		sha512Block(&d.h, p[:sha512BlockSize])
		p = p[sha512BlockSize:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return n, nil
}

func (d *Hasher512) Sum(b []byte) []byte {
	cp := *d
	hash := cp.checkSum()
	return append(b, hash[:]...)
}

func (d *Hasher512) checkSum() [sha512Size]byte {
	length := d.len
	var tmp [sha512BlockSize]byte
	tmp[0] = 0x80
	if length%128 < 112 {
		d.Write(tmp[0 : 112-length%128])
	} else {
		d.Write(tmp[0 : 128+112-length%128])
	}

	// 128-bit length field; the low 64 bits carry the bit count (messages
	// here never approach 2^64 bits), the high 64 bits are always zero.
	length <<= 3
	binary.BigEndian.PutUint64(tmp[0:8], 0)
	binary.BigEndian.PutUint64(tmp[8:16], length)
	d.Write(tmp[:16])

	if d.nx != 0 {
		panic("rsago: internal error: sha512 buffer not flushed")
	}

	var digest [sha512Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint64(digest[i*8:], s)
	}
	return digest
}

func sha512Block(h *[8]uint64, p []byte) {
	var w [80]uint64
	for len(p) >= sha512BlockSize {
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint64(p[i*8:])
		}
		for i := 16; i < 80; i++ {
			v1 := w[i-2]
			t1 := rotr64(v1, 19) ^ rotr64(v1, 61) ^ (v1 >> 6)
			v2 := w[i-15]
			t2 := rotr64(v2, 1) ^ rotr64(v2, 8) ^ (v2 >> 7)
			w[i] = t1 + w[i-7] + t2 + w[i-16]
		}

		a, b, c, d0, e, f, g, h0 := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

		for i := 0; i < 80; i++ {
			t1 := h0 + (rotr64(e, 14) ^ rotr64(e, 18) ^ rotr64(e, 41)) + ((e & f) ^ (^e & g)) + sha512K[i] + w[i]
			t2 := (rotr64(a, 28) ^ rotr64(a, 34) ^ rotr64(a, 39)) + ((a & b) ^ (a & c) ^ (b & c))
			h0 = g
			g = f
			f = e
			e = d0 + t1
			d0 = c
			c = b
			b = a
			a = t1 + t2
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d0
		h[4] += e
		h[5] += f
		h[6] += g
		h[7] += h0

		p = p[sha512BlockSize:]
	}
}

func rotr64(x uint64, n uint) uint64 {
	return (x >> n) | (x << (64 - n))
}

// SHA512 hashes data in one call and returns the 64-byte digest. Included
// for completeness; the RSA core never invokes it (see package doc).
func SHA512(data []byte) [sha512Size]byte {
	h := NewHasher512()
	h.Write(data)
	var out [sha512Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
