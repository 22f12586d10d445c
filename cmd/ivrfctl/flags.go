package main

import (
	"encoding/hex"
	"flag"
	"fmt"
)

// flagSet wraps flag.FlagSet to add support for hex-encoded byte-slice
// flags, alongside the stdlib string/int/bool vars every subcommand needs.
type flagSet struct {
	*flag.FlagSet
}

// newCustomFlagSet creates a flagSet with ContinueOnError behavior, so
// callers control error handling instead of flag's default os.Exit(2).
func newCustomFlagSet(name string) *flagSet {
	return &flagSet{FlagSet: flag.NewFlagSet(name, flag.ContinueOnError)}
}

// HexVar defines a flag whose value is hex-decoded into *p. Falcon seeds,
// nonces, and mu1/mu2 challenge strings are all passed this way since they
// are opaque byte strings rather than human-typed numbers.
func (fs *flagSet) HexVar(p *[]byte, name string, value string, usage string) {
	fs.FlagSet.Var(&hexValue{p: p}, name, usage)
	decoded, err := hex.DecodeString(value)
	if err == nil {
		*p = decoded
	}
}

type hexValue struct {
	p *[]byte
}

func (v *hexValue) String() string {
	if v.p == nil {
		return ""
	}
	return hex.EncodeToString(*v.p)
}

func (v *hexValue) Set(s string) error {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	*v.p = decoded
	return nil
}
