package main

import (
	"encoding/hex"
	"fmt"

	"github.com/accept-labs/ivrf-falcon/ivrf"
	"github.com/accept-labs/ivrf-falcon/log"
)

func runVerify(args []string) int {
	fs := newCustomFlagSet("ivrfctl verify")
	keyPath := fs.String("key", "ivrf.key.json", "path to the key file written by keygen")
	evalPath := fs.String("eval", "ivrf.eval.json", "path to the evaluation written by eval")
	i := fs.Int("i", 0, "leaf index i in [0, N)")
	j := fs.Int("j", 0, "ladder offset j in [0, T)")
	var mu1, mu2 []byte
	fs.HexVar(&mu1, "mu1", "", "hex-encoded commitment challenge mu1")
	fs.HexVar(&mu2, "mu2", "", "hex-encoded signing challenge mu2")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	kf, err := readKeyFile(*keyPath)
	if err != nil {
		fmt.Fprintf(stderr, "verify: reading %s: %v\n", *keyPath, err)
		return 1
	}
	p := kf.params()

	root, err := hexDecodeFixed(kf.Root, p.HashLen)
	if err != nil {
		fmt.Fprintf(stderr, "verify: root: %v\n", err)
		return 1
	}

	ev, err := readEvalFile(*evalPath)
	if err != nil {
		fmt.Fprintf(stderr, "verify: reading %s: %v\n", *evalPath, err)
		return 1
	}

	if len(mu1) == 0 {
		mu1 = make([]byte, p.MuLen)
	}
	if len(mu2) == 0 {
		mu2 = make([]byte, p.MuLen)
	}

	l := log.Default().Module("verify")
	ok, err := ivrf.Verify(p, root, ev, *i, *j, mu1, mu2)
	if err != nil {
		fmt.Fprintf(stderr, "verify: %v\n", err)
		return 1
	}
	if !ok {
		l.Warn("rejected", "i", *i, "j", *j, "root", hex.EncodeToString(root))
		fmt.Fprintln(stdout, "INVALID")
		return 1
	}
	l.Info("accepted", "i", *i, "j", *j)
	fmt.Fprintln(stdout, "VALID")
	return 0
}
