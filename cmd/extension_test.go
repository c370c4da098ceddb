package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeExtension writes an sb-<name> shell script in a temporary PATH folder.
func writeExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sb-"+name), []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write sb-%s: %v", name, err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExtensionMechanism(t *testing.T) {
	writeExtension(t, "hello", `printenv `+EnvData+` `+EnvCurrency+` `+EnvVerbose+` > "$1"`+"\n")

	dataDir := t.TempDir()
	t.Setenv(EnvData, dataDir)
	t.Setenv(EnvCurrency, "XYZ")

	out := filepath.Join(t.TempDir(), "env.txt")
	found, code := RunExtension("hello", []string{out})
	if !found || code != 0 {
		t.Fatalf("RunExtension(hello) = %v, %d, want true, 0", found, code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	want := dataDir + "\nXYZ\nfalse\n"
	if string(got) != want {
		t.Errorf("extension environment = %q, want %q", got, want)
	}
}

func TestExtensionExitCode(t *testing.T) {
	writeExtension(t, "fail", "exit 3\n")
	if found, code := RunExtension("fail", nil); !found || code != 3 {
		t.Errorf("RunExtension(fail) = %v, %d, want true, 3", found, code)
	}
}

func TestExtensionNotFound(t *testing.T) {
	if found, _ := RunExtension("does-not-exist-anywhere", nil); found {
		t.Errorf("RunExtension() found a missing extension")
	}
}

func TestSettings(t *testing.T) {
	t.Setenv(EnvData, "")
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvDB, "")
	if got := DataDir(); got != "." {
		t.Errorf("DataDir() = %q, want .", got)
	}
	if got := Currency(); got != "PLN" {
		t.Errorf("Currency() = %q, want PLN", got)
	}
	if got := DBPath(); !strings.HasSuffix(got, "sessions.db") {
		t.Errorf("DBPath() = %q, want a sessions.db", got)
	}

	t.Setenv(EnvCurrency, "EUR")
	if got := Currency(); got != "EUR" {
		t.Errorf("Currency() = %q, want EUR from the environment", got)
	}
	*currencyFlag = "USD"
	defer func() { *currencyFlag = "" }()
	if got := Currency(); got != "USD" {
		t.Errorf("Currency() = %q, want the flag value USD", got)
	}
}
