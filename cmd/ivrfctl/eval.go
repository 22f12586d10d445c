package main

import (
	"crypto/rand"
	"fmt"

	"github.com/accept-labs/ivrf-falcon/internal/drbg"
	"github.com/accept-labs/ivrf-falcon/ivrf"
	"github.com/accept-labs/ivrf-falcon/log"
)

func runEval(args []string) int {
	fs := newCustomFlagSet("ivrfctl eval")
	keyPath := fs.String("key", "ivrf.key.json", "path to the key file written by keygen")
	i := fs.Int("i", 0, "leaf index i in [0, N)")
	j := fs.Int("j", 0, "ladder offset j in [0, T)")
	var mu1, mu2, entropy []byte
	fs.HexVar(&mu1, "mu1", "", "hex-encoded commitment challenge mu1")
	fs.HexVar(&mu2, "mu2", "", "hex-encoded signing challenge mu2")
	fs.HexVar(&entropy, "entropy", "", "hex-encoded signer entropy (random if omitted)")
	out := fs.String("out", "ivrf.eval.json", "path to write the evaluation to")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	kf, err := readKeyFile(*keyPath)
	if err != nil {
		fmt.Fprintf(stderr, "eval: reading %s: %v\n", *keyPath, err)
		return 1
	}
	p := kf.params()

	seedBytes, seedPrimeBytes, err := kf.decodeSeeds()
	if err != nil {
		fmt.Fprintf(stderr, "eval: %v\n", err)
		return 1
	}

	if *i < 0 || *i >= p.N() {
		fmt.Fprintf(stderr, "eval: i=%d out of range [0, %d)\n", *i, p.N())
		return 2
	}
	if *j < 0 || *j >= p.T {
		fmt.Fprintf(stderr, "eval: j=%d out of range [0, %d)\n", *j, p.T)
		return 2
	}
	if len(mu1) == 0 {
		mu1 = make([]byte, p.MuLen)
	}
	if len(mu2) == 0 {
		mu2 = make([]byte, p.MuLen)
	}
	if len(entropy) == 0 {
		entropy = make([]byte, 32)
		if _, err := rand.Read(entropy); err != nil {
			fmt.Fprintf(stderr, "eval: generating entropy: %v\n", err)
			return 1
		}
	}

	l := log.Default().Module("eval")
	l.Info("rebuilding tree", "n", p.N(), "t", p.T)

	tree, st, err := ivrf.KeyGen(p, seedBytes, seedPrimeBytes)
	if err != nil {
		fmt.Fprintf(stderr, "eval: rebuilding tree: %v\n", err)
		return 1
	}
	for step := 0; step < *i; step++ {
		ivrf.Advance(p, st)
	}

	ev, err := ivrf.Eval(p, tree, st, *i, *j, mu1, mu2, entropy)
	if err != nil {
		fmt.Fprintf(stderr, "eval: %v\n", err)
		return 1
	}

	if err := writeEvalFile(*out, ev); err != nil {
		fmt.Fprintf(stderr, "eval: writing %s: %v\n", *out, err)
		return 1
	}
	l.Info("wrote evaluation", "path", *out, "i", *i, "j", *j)
	return 0
}

// decodeSeeds converts the key file's hex seeds back into the fixed-size
// arrays ivrf.KeyGen expects.
func (kf *keyFile) decodeSeeds() (s, sp [drbg.SeedLength]byte, err error) {
	seed, err := hexDecodeFixed(kf.Seed, drbg.SeedLength)
	if err != nil {
		return s, sp, fmt.Errorf("seed: %w", err)
	}
	seedPrime, err := hexDecodeFixed(kf.SeedPrime, drbg.SeedLength)
	if err != nil {
		return s, sp, fmt.Errorf("seed_prime: %w", err)
	}
	copy(s[:], seed)
	copy(sp[:], seedPrime)
	return s, sp, nil
}
