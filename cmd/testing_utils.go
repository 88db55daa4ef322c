// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running the CLI against a fake GitHub API.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/PolarWolf314/env-to-github-secrets/internal/configs"
	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github/githubtest"
	logger "github.com/PolarWolf314/env-to-github-secrets/internal/logging"
	"github.com/spf13/cobra"
)

const (
	testOwner = "octocat"
	testRepo  = "hello-world"
	testToken = "ghp_llamas"
)

// setupTestEnvironment changes into a fresh temp directory and points the
// config file at a path inside it. Everything is restored on cleanup.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalSettings := configs.ToolSettings

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.ToolSettings = originalSettings
		ResetGlobalState()
	})

	configs.ToolSettings = &configs.Settings{
		ConfigPath: filepath.Join(tempDir, "config", "config.toml"),
	}
	return tempDir
}

// setupFakeGitHub starts a fake GitHub API and routes the CLI to it.
func setupFakeGitHub(t *testing.T) *githubtest.Server {
	t.Helper()
	server := githubtest.NewServer(testOwner, testRepo, testToken)
	t.Cleanup(server.Close)
	t.Setenv(configs.APIURLEnv, server.URL)
	return server
}

// useTestCredentials makes the CLI read and write an in-memory keyring.
// An empty token leaves the keyring empty.
func useTestCredentials(token string) credentials.Store {
	var items []keyring.Item
	if token != "" {
		items = append(items, keyring.Item{Key: credentials.DefaultAccount, Data: []byte(token)})
	}
	store := credentials.NewKeyringStore(keyring.NewArrayKeyring(items), "")
	SetCredentialStore(store)
	return store
}

// writeTestFile writes content to name in the current directory.
func writeTestFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance running args, reading stdin from in.
func createTestCLI(args []string, in io.Reader) *cobra.Command {
	resetUploadCommandState()
	resetListSecretsCommandState()
	resetColabCommandState()
	resetCobraFlagState()
	verbose = false
	debug = false
	Logger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:   "env-to-github-secrets",
		Short: "Upload .env files to GitHub Secrets",
	}
	Register(rootCmd)

	if in != nil {
		rootCmd.SetIn(in)
	}
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes args and returns everything written to stdout and stderr.
func runCLI(args []string, in io.Reader) (string, error) {
	return captureOutput(func() error {
		return createTestCLI(args, in).Execute()
	})
}
