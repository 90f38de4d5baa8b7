package utils

import (
	"flag"
	"testing"
)

func TestVerboseGating(t *testing.T) {
	RegisterFlags()

	if n, err := VerbosePrint("silent\n"); n != 0 || err != nil {
		t.Errorf("VerbosePrint wrote %d bytes without -verbose", n)
	}
	called := false
	Opts().OnVerbose(func() { called = true })
	if called {
		t.Error("OnVerbose ran its hook without -verbose")
	}

	if err := flag.Set("verbose", "true"); err != nil {
		t.Fatal(err)
	}
	defer flag.Set("verbose", "false")

	Opts().OnVerbose(func() { called = true })
	if !called {
		t.Error("OnVerbose skipped its hook with -verbose set")
	}
}
