package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory to dir, sets PWD on non-Windows systems, and restores
// both when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Open(".")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		oldwd.Close()
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" {
		abs := dir
		if !filepath.IsAbs(abs) {
			if abs, err = os.Getwd(); err != nil {
				t.Fatal(err)
			}
		}
		t.Setenv("PWD", abs)
	}
	t.Cleanup(func() {
		defer oldwd.Close()
		if err := oldwd.Chdir(); err != nil {
			panic("testing: chdir: " + err.Error())
		}
	})
}
