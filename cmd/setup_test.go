package cmd

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/env-to-github-secrets/internal/configs"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
)

func TestSetupCommand(t *testing.T) {
	t.Run("StoresTokenFromStdin", testSetupStoresTokenFromStdin)
	t.Run("TrimsToken", testSetupTrimsToken)
	t.Run("RejectsEmptyToken", testSetupRejectsEmptyToken)
	t.Run("ReplacesExistingToken", testSetupReplacesExistingToken)
	t.Run("WritesDefaultConfigOnce", testSetupWritesDefaultConfigOnce)
}

func testSetupWritesDefaultConfigOnce(t *testing.T) {
	setupTestEnvironment(t)
	useTestCredentials("")

	output, err := runCLI([]string{"setup"}, strings.NewReader("ghp_fresh\n"))
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Wrote default config to "+configs.ToolSettings.ConfigPath) {
		t.Errorf("Expected config message, got: %s", output)
	}
	if _, err := os.Stat(configs.ToolSettings.ConfigPath); err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}

	output, err = runCLI([]string{"setup"}, strings.NewReader("ghp_again\n"))
	if err != nil {
		t.Fatalf("Second run failed: %v\nOutput: %s", err, output)
	}
	if strings.Contains(output, "Wrote default config") {
		t.Errorf("Did not expect the config to be written twice, got: %s", output)
	}
}

func testSetupStoresTokenFromStdin(t *testing.T) {
	setupTestEnvironment(t)
	store := useTestCredentials("")

	output, err := runCLI([]string{"setup"}, strings.NewReader("ghp_fresh\n"))
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "GitHub token stored securely in system keyring") {
		t.Errorf("Expected stored message, got: %s", output)
	}
	if !strings.Contains(output, "Setup complete!") {
		t.Errorf("Expected completion message, got: %s", output)
	}

	token, err := store.Get()
	if err != nil {
		t.Fatalf("Failed to read stored token: %v", err)
	}
	if token != "ghp_fresh" {
		t.Errorf("Expected stored token ghp_fresh, got %q", token)
	}
}

func testSetupTrimsToken(t *testing.T) {
	setupTestEnvironment(t)
	store := useTestCredentials("")

	if _, err := runCLI([]string{"setup"}, strings.NewReader("  ghp_padded \r\n")); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	token, err := store.Get()
	if err != nil {
		t.Fatalf("Failed to read stored token: %v", err)
	}
	if token != "ghp_padded" {
		t.Errorf("Expected trimmed token, got %q", token)
	}
}

func testSetupRejectsEmptyToken(t *testing.T) {
	setupTestEnvironment(t)
	store := useTestCredentials("")

	output, err := runCLI([]string{"setup"}, strings.NewReader("   \n"))
	if !errors.Is(err, kerrors.ErrEmptyToken) {
		t.Fatalf("Expected ErrEmptyToken, got %v", err)
	}
	if !strings.Contains(output, "Token cannot be empty. Aborting.") {
		t.Errorf("Expected abort message, got: %s", output)
	}
	if _, err := store.Get(); !errors.Is(err, kerrors.ErrCredentialNotFound) {
		t.Errorf("Expected nothing to be stored, got %v", err)
	}
}

func testSetupReplacesExistingToken(t *testing.T) {
	setupTestEnvironment(t)
	store := useTestCredentials("ghp_old")

	if _, err := runCLI([]string{"setup"}, strings.NewReader("ghp_new\n")); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	token, err := store.Get()
	if err != nil {
		t.Fatalf("Failed to read stored token: %v", err)
	}
	if token != "ghp_new" {
		t.Errorf("Expected replaced token ghp_new, got %q", token)
	}
}
