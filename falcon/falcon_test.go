package falcon

import (
	"bytes"
	"testing"
)

func seed42() []byte {
	s := make([]byte, 48)
	for i := range s {
		s[i] = 0x42
	}
	return s
}

// TestKeyGenSatisfiesKeyEquation checks the NTRU trapdoor identity
// f*G - g*F = q exactly, mod q, at every coefficient (the mod-q reduction
// only collapses q itself to 0; ntruSolveExact's own self-check in
// ntrusolve.go already verifies the un-reduced integer identity before
// KeyGen ever returns a key).
func TestKeyGenSatisfiesKeyEquation(t *testing.T) {
	sk, err := KeyGen(seed42())
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	fG := nttMul(sk.f, sk.G)
	gF := nttMul(sk.g, sk.F)
	for i := range fG {
		if modQ(fG[i]-gF[i]) != 0 {
			t.Fatalf("f*G-g*F != 0 mod q at coefficient %d: %d", i, modQ(fG[i]-gF[i]))
		}
	}
}

func TestPublicKeyMatchesGF(t *testing.T) {
	sk, err := KeyGen(seed42())
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	// h = g*f^-1 mod q <=> h*f = g mod q.
	hf := nttMul(sk.H, sk.f)
	for i := range hf {
		if modQ(hf[i]) != modQ(sk.g[i]) {
			t.Fatalf("h*f != g mod q at coefficient %d: %d vs %d", i, modQ(hf[i]), modQ(sk.g[i]))
		}
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	sk, err := KeyGen(seed42())
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	pub := sk.Public()
	msg := bytes.Repeat([]byte{0x00}, 32)

	sig, err := sk.Sign([]byte("entropy-1"), msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != SigSize {
		t.Fatalf("signature size = %d, want %d", len(sig), SigSize)
	}

	ok, err := Verify(pub, sig, msg)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("Verify rejected a freshly produced signature")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	sk, err := KeyGen(seed42())
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	pub := sk.Public()
	msg := bytes.Repeat([]byte{0x00}, 32)
	sig, err := sk.Sign([]byte("entropy-2"), msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := append([]byte(nil), msg...)
	tampered[0] ^= 0xff
	ok, err := Verify(pub, sig, tampered)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatalf("Verify accepted a signature over a tampered message")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	sk, err := KeyGen(seed42())
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	pub := sk.Public()
	msg := bytes.Repeat([]byte{0x00}, 32)
	sig, err := sk.Sign([]byte("entropy-3"), msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	sig[len(sig)-1] ^= 0x01

	ok, _ := Verify(pub, sig, msg)
	if ok {
		t.Fatalf("Verify accepted a tampered signature")
	}
}

func TestPublicKeyCodecRoundTrip(t *testing.T) {
	sk, err := KeyGen(seed42())
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	wire := encodePublicKey(sk.H)
	if len(wire) != PubKeySize {
		t.Fatalf("pubkey size = %d, want %d", len(wire), PubKeySize)
	}
	back, err := decodePublicKey(wire)
	if err != nil {
		t.Fatalf("decodePublicKey: %v", err)
	}
	for i := range back.H {
		if back.H[i] != sk.H[i] {
			t.Fatalf("pubkey roundtrip mismatch at %d", i)
		}
	}
}

func TestPrivateKeyCodecRoundTrip(t *testing.T) {
	sk, err := KeyGen(seed42())
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	wire := encodePrivateKey(sk)
	if len(wire) != SecKeySize {
		t.Fatalf("seckey size = %d, want %d", len(wire), SecKeySize)
	}
	back, err := decodePrivateKey(wire)
	if err != nil {
		t.Fatalf("decodePrivateKey: %v", err)
	}
	for i := range back.f {
		if back.f[i] != sk.f[i] || back.g[i] != sk.g[i] {
			t.Fatalf("f/g roundtrip mismatch at %d", i)
		}
	}
}
