package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/accept-labs/ivrf-falcon/ivrf"
)

// keyFile is the on-disk artifact `ivrfctl keygen` produces: the public
// Merkle root plus the two DRBG seeds needed to regenerate the full secret
// state (the state itself is not persisted — it is cheaper, and matches
// ivrf.KeyGen/Advance's pure-function discipline, to re-derive it from the
// seeds and fast-forward with Advance than to serialize DRBG internals).
type keyFile struct {
	LogN       uint   `json:"logn"`
	T          int    `json:"t"`
	Lambda     int    `json:"lambda"`
	HashLen    int    `json:"hash_len"`
	MuLen      int    `json:"mu_len"`
	SeedLen    int    `json:"seed_len"`
	FalconLogN uint   `json:"falcon_logn"`
	Root       string `json:"root"`
	Seed       string `json:"seed"`
	SeedPrime  string `json:"seed_prime"`
}

func (kf *keyFile) params() ivrf.Params {
	return ivrf.Params{
		LogN:       kf.LogN,
		T:          kf.T,
		Lambda:     kf.Lambda,
		HashLen:    kf.HashLen,
		MuLen:      kf.MuLen,
		SeedLen:    kf.SeedLen,
		FalconLogN: kf.FalconLogN,
	}
}

func writeKeyFile(path string, kf *keyFile) error {
	b, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func readKeyFile(path string) (*keyFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var kf keyFile
	if err := json.Unmarshal(b, &kf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &kf, nil
}

// evalFile is what `ivrfctl eval` writes and `ivrfctl verify` reads back:
// the wire-safe (hex/base64-free, plain hex) form of ivrf.Evaluation.
type evalFile struct {
	V         string   `json:"v"`
	Y         string   `json:"y"`
	AuthPath  []string `json:"auth_path"`
	PublicKey string   `json:"public_key"`
	Signature string   `json:"signature"`
}

func toEvalFile(ev *ivrf.Evaluation) *evalFile {
	ap := make([]string, len(ev.AuthPath))
	for i, h := range ev.AuthPath {
		ap[i] = hex.EncodeToString(h)
	}
	return &evalFile{
		V:         hex.EncodeToString(ev.V),
		Y:         hex.EncodeToString(ev.Y),
		AuthPath:  ap,
		PublicKey: hex.EncodeToString(ev.PublicKey),
		Signature: hex.EncodeToString(ev.Signature),
	}
}

func (ef *evalFile) toEvaluation() (*ivrf.Evaluation, error) {
	v, err := hex.DecodeString(ef.V)
	if err != nil {
		return nil, fmt.Errorf("v: %w", err)
	}
	y, err := hex.DecodeString(ef.Y)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	pub, err := hex.DecodeString(ef.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("public_key: %w", err)
	}
	sig, err := hex.DecodeString(ef.Signature)
	if err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}
	ap := make([][]byte, len(ef.AuthPath))
	for i, s := range ef.AuthPath {
		h, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("auth_path[%d]: %w", i, err)
		}
		ap[i] = h
	}
	return &ivrf.Evaluation{V: v, Y: y, AuthPath: ap, PublicKey: pub, Signature: sig}, nil
}

func writeEvalFile(path string, ev *ivrf.Evaluation) error {
	b, err := json.MarshalIndent(toEvalFile(ev), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// hexDecodeFixed decodes s and verifies it is exactly n bytes long.
func hexDecodeFixed(s string, n int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("want %d bytes, got %d", n, len(b))
	}
	return b, nil
}

func readEvalFile(path string) (*ivrf.Evaluation, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ef evalFile
	if err := json.Unmarshal(b, &ef); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ef.toEvaluation()
}
