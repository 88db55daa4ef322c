package workflows

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github/githubtest"
)

const (
	testOwner = "octocat"
	testRepo  = "hello-world"
	testToken = "ghp_llamas"
)

// newTestStore returns a credential store holding token, or an empty one when token is "".
func newTestStore(token string) credentials.Store {
	var items []keyring.Item
	if token != "" {
		items = append(items, keyring.Item{Key: credentials.DefaultAccount, Data: []byte(token)})
	}
	return credentials.NewKeyringStore(keyring.NewArrayKeyring(items), "")
}

// newTestServer starts a fake GitHub API and returns a client config pointing at it.
func newTestServer(t *testing.T) (*githubtest.Server, github.Config) {
	t.Helper()
	server := githubtest.NewServer(testOwner, testRepo, testToken)
	t.Cleanup(server.Close)
	return server, github.Config{Endpoint: server.URL, Timeout: 5 * time.Second}
}

// writeEnvFile writes content to a .env file in a fresh temp directory.
func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	return path
}
