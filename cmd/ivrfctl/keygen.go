package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/accept-labs/ivrf-falcon/internal/drbg"
	"github.com/accept-labs/ivrf-falcon/ivrf"
	"github.com/accept-labs/ivrf-falcon/log"
)

func runKeygen(args []string) int {
	fs := newCustomFlagSet("ivrfctl keygen")
	logn := fs.Uint("logn", 18, "log2 of the number of Merkle leaves (N = 2^logn)")
	t := fs.Int("t", 100, "hash-ladder length per leaf")
	lambda := fs.Int("lambda", 16, "security parameter lambda (bytes of half the digest)")
	var seed, seedPrime []byte
	fs.HexVar(&seed, "seed", "", "hex-encoded 48-byte seed for the x-ladder DRBG (random if omitted)")
	fs.HexVar(&seedPrime, "seed-prime", "", "hex-encoded 48-byte seed for the Falcon-key DRBG (random if omitted)")
	out := fs.String("out", "ivrf.key.json", "path to write the key file to")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if len(seed) == 0 {
		seed = make([]byte, drbg.SeedLength)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(stderr, "keygen: generating random seed: %v\n", err)
			return 1
		}
	}
	if len(seedPrime) == 0 {
		seedPrime = make([]byte, drbg.SeedLength)
		if _, err := rand.Read(seedPrime); err != nil {
			fmt.Fprintf(stderr, "keygen: generating random seed-prime: %v\n", err)
			return 1
		}
	}
	if len(seed) != drbg.SeedLength || len(seedPrime) != drbg.SeedLength {
		fmt.Fprintf(stderr, "keygen: seeds must be exactly %d bytes, got %d and %d\n",
			drbg.SeedLength, len(seed), len(seedPrime))
		return 2
	}

	p := ivrf.Params{
		LogN:       *logn,
		T:          *t,
		Lambda:     *lambda,
		HashLen:    32,
		MuLen:      32,
		SeedLen:    drbg.SeedLength,
		FalconLogN: 9,
	}

	var sSeed, spSeed [drbg.SeedLength]byte
	copy(sSeed[:], seed)
	copy(spSeed[:], seedPrime)

	l := log.Default().Module("keygen")
	l.Info("deriving leaves", "n", p.N(), "t", p.T)

	tree, _, err := ivrf.KeyGen(p, sSeed, spSeed)
	if err != nil {
		fmt.Fprintf(stderr, "keygen: %v\n", err)
		return 1
	}

	kf := &keyFile{
		LogN:       p.LogN,
		T:          p.T,
		Lambda:     p.Lambda,
		HashLen:    p.HashLen,
		MuLen:      p.MuLen,
		SeedLen:    p.SeedLen,
		FalconLogN: p.FalconLogN,
		Root:       hex.EncodeToString(tree.Root()),
		Seed:       hex.EncodeToString(seed),
		SeedPrime:  hex.EncodeToString(seedPrime),
	}
	if err := writeKeyFile(*out, kf); err != nil {
		fmt.Fprintf(stderr, "keygen: writing %s: %v\n", *out, err)
		return 1
	}
	l.Info("wrote key file", "path", *out, "root", kf.Root)
	return 0
}
