package utils

import (
	"strings"

	"github.com/PolarWolf314/env-to-github-secrets/internal/ui"
)

// FormatNames formats a slice of secret names into a readable string.
func FormatNames(names []string) string {
	return formatList(names, ui.Secret)
}

func formatList(items []string, f ui.Formatter) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("    - ")
		b.WriteString(f.Sprint(item))
		b.WriteString("\n")
	}
	return b.String()
}
