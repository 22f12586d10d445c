package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withCapturedOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	origOut, origErr := stdout, stderr
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	stdout, stderr = out, errOut
	t.Cleanup(func() { stdout, stderr = origOut, origErr })
	return out, errOut
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	_, errOut := withCapturedOutput(t)
	code := run(nil)
	if code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "usage:") {
		t.Fatalf("expected usage message, got %q", errOut.String())
	}
}

func TestRunUnknownSubcommand(t *testing.T) {
	_, errOut := withCapturedOutput(t)
	code := run([]string{"bogus"})
	if code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "unknown subcommand") {
		t.Fatalf("expected unknown-subcommand message, got %q", errOut.String())
	}
}

func TestRunVersion(t *testing.T) {
	out, _ := withCapturedOutput(t)
	code := run([]string{"version"})
	if code != 0 {
		t.Fatalf("code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "ivrfctl") {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestKeygenEvalVerifyRoundTrip(t *testing.T) {
	withCapturedOutput(t)
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "ivrf.key.json")
	evalPath := filepath.Join(dir, "ivrf.eval.json")

	code := run([]string{
		"keygen",
		"--logn", "3",
		"--t", "4",
		"--seed", strings.Repeat("00", 48),
		"--seed-prime", strings.Repeat("01", 48),
		"--out", keyPath,
	})
	if code != 0 {
		t.Fatalf("keygen exit code = %d", code)
	}
	if _, err := os.Stat(keyPath); err != nil {
		t.Fatalf("key file not written: %v", err)
	}

	code = run([]string{
		"eval",
		"--key", keyPath,
		"--i", "0",
		"--j", "0",
		"--mu1", strings.Repeat("aa", 32),
		"--mu2", strings.Repeat("bb", 32),
		"--entropy", strings.Repeat("cc", 16),
		"--out", evalPath,
	})
	if code != 0 {
		t.Fatalf("eval exit code = %d", code)
	}
	if _, err := os.Stat(evalPath); err != nil {
		t.Fatalf("eval file not written: %v", err)
	}

	out, _ := withCapturedOutput(t)
	code = run([]string{
		"verify",
		"--key", keyPath,
		"--eval", evalPath,
		"--i", "0",
		"--j", "0",
		"--mu1", strings.Repeat("aa", 32),
		"--mu2", strings.Repeat("bb", 32),
	})
	if code != 0 {
		t.Fatalf("verify exit code = %d, output: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "VALID") {
		t.Fatalf("expected VALID, got %q", out.String())
	}
}

func TestEvalRejectsOutOfRangeIndex(t *testing.T) {
	withCapturedOutput(t)
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "ivrf.key.json")

	code := run([]string{
		"keygen",
		"--logn", "3",
		"--t", "4",
		"--seed", strings.Repeat("00", 48),
		"--seed-prime", strings.Repeat("01", 48),
		"--out", keyPath,
	})
	if code != 0 {
		t.Fatalf("keygen exit code = %d", code)
	}

	_, errOut := withCapturedOutput(t)
	code = run([]string{
		"eval",
		"--key", keyPath,
		"--i", "99",
		"--j", "0",
		"--out", filepath.Join(dir, "ivrf.eval.json"),
	})
	if code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "out of range") {
		t.Fatalf("expected out-of-range message, got %q", errOut.String())
	}
}
