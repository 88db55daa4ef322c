package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureIgnoredCreatesLedger(t *testing.T) {
	ledger := filepath.Join(t.TempDir(), ".gitignore")

	added, err := EnsureIgnored(ledger, ".secure", ".secure/")
	if err != nil {
		t.Fatalf("EnsureIgnored failed: %v", err)
	}
	if !added {
		t.Error("expected the entry to be added")
	}

	content, err := os.ReadFile(ledger)
	if err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}
	if string(content) != ".secure/\n" {
		t.Errorf("ledger = %q, want %q", content, ".secure/\n")
	}
}

func TestEnsureIgnoredIsIdempotent(t *testing.T) {
	ledger := filepath.Join(t.TempDir(), ".gitignore")
	if err := os.WriteFile(ledger, []byte("node_modules/\n.env"), 0644); err != nil {
		t.Fatalf("Failed to write ledger: %v", err)
	}

	for i := 0; i < 3; i++ {
		added, err := EnsureIgnored(ledger, ".secure", ".secure/")
		if err != nil {
			t.Fatalf("EnsureIgnored run %d failed: %v", i, err)
		}
		if added != (i == 0) {
			t.Errorf("run %d: added = %v", i, added)
		}
	}

	content, _ := os.ReadFile(ledger)
	if got := strings.Count(string(content), ".secure"); got != 1 {
		t.Errorf(".secure appears %d times in %q, want 1", got, content)
	}
	if string(content) != "node_modules/\n.env\n.secure/\n" {
		t.Errorf("ledger = %q, missing newline should be repaired before appending", content)
	}
}

func TestEnsureIgnoredSubstringMatch(t *testing.T) {
	ledger := filepath.Join(t.TempDir(), ".gitignore")
	if err := os.WriteFile(ledger, []byte("/build/.secure/\n"), 0644); err != nil {
		t.Fatalf("Failed to write ledger: %v", err)
	}

	added, err := EnsureIgnored(ledger, ".secure", ".secure/")
	if err != nil {
		t.Fatalf("EnsureIgnored failed: %v", err)
	}
	if added {
		t.Error("an existing substring match should leave the ledger untouched")
	}
}

func TestEnsureIgnoredUnreadableLedger(t *testing.T) {
	// A directory in place of the ledger cannot be read as a file.
	ledger := t.TempDir()

	if _, err := EnsureIgnored(ledger, ".secure", ".secure/"); err == nil {
		t.Error("expected an error when the ledger is a directory")
	}
}

func TestIgnoreEntry(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"relative", ".secure", ".secure/"},
		{"trailing slash", ".secure/", ".secure/"},
		{"dot prefix", "./secrets/colab", "secrets/colab/"},
		{"absolute inside ledger dir", filepath.Join(root, "private"), "private/"},
		{"absolute outside ledger dir", "/var/tmp/secure", "/var/tmp/secure/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IgnoreEntry(root, tt.dir); got != tt.want {
				t.Errorf("IgnoreEntry(%q) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}
