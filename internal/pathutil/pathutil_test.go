package pathutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestCanonical(t *testing.T) {
	base := filepath.FromSlash("/work/tests")
	if v := Canonical(base, "a.s"); v != filepath.Join(base, "a.s") {
		t.Fatal("Canonical:", v)
	}
	abs := filepath.FromSlash("/tmp/../tmp/b.s")
	if runtime.GOOS != "windows" {
		if v := Canonical(base, abs); v != "/tmp/b.s" {
			t.Fatal("Canonical abs:", v)
		}
	}
}

func TestTrimExt(t *testing.T) {
	if v := TrimExt("tests/prog3.src"); v != "tests/prog3" {
		t.Fatal("TrimExt:", v)
	}
	if v := TrimExt("prog"); v != "prog" {
		t.Fatal("TrimExt no ext:", v)
	}
}
