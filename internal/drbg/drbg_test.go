package drbg

import "testing"

func TestGenerateDeterministic(t *testing.T) {
	var seed [SeedLength]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	a := New(seed, nil)
	b := New(seed, nil)

	outA := make([]byte, 100)
	outB := make([]byte, 100)
	a.Generate(outA)
	b.Generate(outB)

	for i := range outA {
		if outA[i] != outB[i] {
			t.Fatalf("Generate not deterministic at byte %d", i)
		}
	}
}

func TestCloneDoesNotDisturbOriginal(t *testing.T) {
	var seed [SeedLength]byte
	seed[0] = 7
	d := New(seed, nil)

	first := make([]byte, 32)
	d.Generate(first)

	clone := d.Clone()
	throwaway := make([]byte, 64)
	clone.Generate(throwaway)

	afterClone := make([]byte, 32)
	d.Generate(afterClone)

	again := New(seed, nil)
	ref := make([]byte, 32)
	again.Generate(ref)
	for i := range ref {
		if ref[i] != first[i] {
			t.Fatalf("sanity check failed at %d", i)
		}
	}

	second := make([]byte, 32)
	again.Generate(second)
	for i := range second {
		if second[i] != afterClone[i] {
			t.Fatalf("Clone disturbed the original's cursor at byte %d", i)
		}
	}
}

func TestSeedExpanderRejectsOverLongMaxLen(t *testing.T) {
	var seed [32]byte
	var div [8]byte
	if _, err := NewSeedExpander(seed, div, 1<<32); err != ErrBadMaxLen {
		t.Fatalf("expected ErrBadMaxLen, got %v", err)
	}
}

func TestSeedExpanderRejectsOverBudgetRequest(t *testing.T) {
	var seed [32]byte
	var div [8]byte
	e, err := NewSeedExpander(seed, div, 10)
	if err != nil {
		t.Fatalf("NewSeedExpander: %v", err)
	}
	if err := e.Read(make([]byte, 10)); err != ErrBadRequestLen {
		t.Fatalf("expected ErrBadRequestLen, got %v", err)
	}
}

func TestSeedExpanderDeterministic(t *testing.T) {
	var seed [32]byte
	var div [8]byte
	seed[0] = 9
	a, _ := NewSeedExpander(seed, div, 1000)
	b, _ := NewSeedExpander(seed, div, 1000)

	outA := make([]byte, 50)
	outB := make([]byte, 50)
	if err := a.Read(outA); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := b.Read(outB); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i := range outA {
		if outA[i] != outB[i] {
			t.Fatalf("SeedExpander not deterministic at byte %d", i)
		}
	}
}
