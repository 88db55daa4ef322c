package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadSecretLineFromPipe(t *testing.T) {
	var out bytes.Buffer

	got, err := ReadSecretLine("Token: ", strings.NewReader("ghp_abc123\r\nignored\n"), &out)
	if err != nil {
		t.Fatalf("ReadSecretLine failed: %v", err)
	}
	if got != "ghp_abc123" {
		t.Errorf("ReadSecretLine = %q, want %q", got, "ghp_abc123")
	}
	if !strings.HasPrefix(out.String(), "Token: ") {
		t.Errorf("prompt not written, got %q", out.String())
	}
}

func TestReadSecretLineWithoutNewline(t *testing.T) {
	got, err := ReadSecretLine("", strings.NewReader("ghp_eof"), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ReadSecretLine failed: %v", err)
	}
	if got != "ghp_eof" {
		t.Errorf("ReadSecretLine = %q, want %q", got, "ghp_eof")
	}
}

func TestFormatNames(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatNames([]string{"API_KEY", "DB_URL"})
	want := "\n    - API_KEY\n    - DB_URL\n"
	if got != want {
		t.Errorf("FormatNames = %q, want %q", got, want)
	}
}
