// Package drbg implements the AES-256 CTR-DRBG construction the iVRF's two
// evolving secret states (s, s') are built on, grounded on
// original_source/ivrf/drbg_rng.c (NIST's reference AES256_CTR_DRBG, adapted
// there for AES-NI). The spec treats the block cipher itself as an external
// collaborator ("the AES-NI-backed CTR-DRBG implementation... replace with
// any IND-CPA block-cipher CTR mode"); this package keeps the reference's
// state machine (Key/V update function, the seedexpander-style "generate
// then update" cycle) but uses crypto/aes instead of hand-rolled AES-NI
// intrinsics, since the core here is the DRBG construction, not an AES
// implementation.
package drbg

import (
	"crypto/aes"
	"errors"

	"github.com/holiman/uint256"
)

// SeedLength is the NIST SP 800-90A AES-256 CTR-DRBG seed material length
// (key length 32 + block length 16).
const SeedLength = 48

var (
	ErrBadMaxLen    = errors.New("drbg: seedexpander maxlen must be < 2^32")
	ErrBadOutBuf    = errors.New("drbg: nil output buffer")
	ErrBadRequestLen = errors.New("drbg: request exceeds remaining reservation")
)

// mask128 keeps the 128-bit block counter from spilling into bits the AES
// block doesn't have room for; the reference's counter is a 16-byte
// big-endian array that wraps at 0xff in every byte, equivalent to addition
// modulo 2^128.
var mask128 = func() *uint256.Int {
	m := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	return m.Sub(m, uint256.NewInt(1))
}()

// CtrDRBG is one AES-256 CTR-DRBG instance: a 256-bit key and a 128-bit
// counter V, both opaque to callers. The zero value is not usable; construct
// with New.
type CtrDRBG struct {
	key   [32]byte
	v     *uint256.Int
	block interface{ Encrypt(dst, src []byte) }
}

// New seeds a DRBG instance from 48 bytes of entropy input (optionally
// XORed with a personalization string), matching
// drbg_randombytes_init(entropy_input, personalization_string, ...): Key and
// V start at zero and are immediately run through one Update with the seed
// material as provided_data.
func New(entropyInput [SeedLength]byte, personalization []byte) *CtrDRBG {
	seedMaterial := entropyInput
	if personalization != nil {
		for i := 0; i < SeedLength && i < len(personalization); i++ {
			seedMaterial[i] ^= personalization[i]
		}
	}
	d := &CtrDRBG{v: new(uint256.Int)}
	d.update(seedMaterial[:])
	return d
}

// Clone returns an independent copy of d's state, used by Eval's
// copy-then-advance discipline (spec 9: "copy-then-advance is used in Eval
// so the caller's cursor is not disturbed").
func (d *CtrDRBG) Clone() *CtrDRBG {
	c := &CtrDRBG{key: d.key, v: new(uint256.Int).Set(d.v)}
	c.block, _ = aes.NewCipher(c.key[:])
	return c
}

func (d *CtrDRBG) cipher() interface{ Encrypt(dst, src []byte) } {
	if d.block == nil {
		d.block, _ = aes.NewCipher(d.key[:])
	}
	return d.block
}

func (d *CtrDRBG) incrementV() {
	d.v.AddUint64(d.v, 1)
	d.v.And(d.v, mask128)
}

func (d *CtrDRBG) vBytes() [16]byte {
	b := d.v.Bytes32()
	var out [16]byte
	copy(out[:], b[16:32])
	return out
}

// Generate writes len(out) pseudorandom bytes, matching drbg_randombytes:
// each 16-byte block is produced by incrementing V and encrypting it, then
// the internal state is refreshed with one Update(nil) call.
func (d *CtrDRBG) Generate(out []byte) {
	block := d.cipher()
	var buf [16]byte
	i := 0
	for i < len(out) {
		d.incrementV()
		vb := d.vBytes()
		block.Encrypt(buf[:], vb[:])
		n := copy(out[i:], buf[:])
		i += n
	}
	d.update(nil)
}

// update implements AES256_CTR_DRBG_Update: three AES blocks are produced by
// incrementing V and encrypting, concatenated, optionally XORed with
// providedData, and split back into the new Key and V.
func (d *CtrDRBG) update(providedData []byte) {
	block := d.cipher()
	var temp [48]byte
	for i := 0; i < 3; i++ {
		d.incrementV()
		vb := d.vBytes()
		var out [16]byte
		block.Encrypt(out[:], vb[:])
		copy(temp[16*i:16*i+16], out[:])
	}
	if providedData != nil {
		for i := 0; i < SeedLength && i < len(providedData); i++ {
			temp[i] ^= providedData[i]
		}
	}
	copy(d.key[:], temp[:32])
	d.v.SetBytes(temp[32:48])
	d.block, _ = aes.NewCipher(d.key[:])
}
