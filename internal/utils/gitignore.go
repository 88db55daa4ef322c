package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreEntry returns the .gitignore line for dir, relative to the directory
// holding the ledger when dir lies inside it.
func IgnoreEntry(ledgerDir, dir string) string {
	entry := filepath.Clean(dir)

	if filepath.IsAbs(entry) && ledgerDir != "" {
		if absLedger, err := filepath.Abs(ledgerDir); err == nil {
			if rel, err := filepath.Rel(absLedger, entry); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				entry = rel
			}
		}
	}

	entry = strings.TrimPrefix(filepath.ToSlash(entry), "./")
	return strings.TrimRight(entry, "/") + "/"
}

// EnsureIgnored appends entry to the ledger at ledgerPath unless match is
// already a substring of its content. A missing ledger is created. It reports
// whether the file was changed.
func EnsureIgnored(ledgerPath, match, entry string) (bool, error) {
	content, err := os.ReadFile(ledgerPath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", ledgerPath, err)
	}

	if strings.Contains(string(content), match) {
		return false, nil
	}

	var b strings.Builder
	if len(content) > 0 && content[len(content)-1] != '\n' {
		b.WriteString("\n")
	}
	b.WriteString(entry)
	b.WriteString("\n")

	// #nosec G302 -- .gitignore is a tracked project file.
	f, err := os.OpenFile(ledgerPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", ledgerPath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return false, fmt.Errorf("failed to append to %s: %w", ledgerPath, err)
	}

	return true, nil
}
