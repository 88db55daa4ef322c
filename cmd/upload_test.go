package cmd

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/env-to-github-secrets/internal/configs"
	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github"
	"github.com/PolarWolf314/env-to-github-secrets/internal/workflows"
	"github.com/fatih/color"
)

func TestUploadCommand(t *testing.T) {
	t.Run("UploadsEveryVariable", testUploadsEveryVariable)
	t.Run("ReportsPartialFailure", testUploadReportsPartialFailure)
	t.Run("ReportsRenames", testUploadReportsRenames)
	t.Run("WarnsAboutOverwrittenSecrets", testUploadWarnsAboutOverwrittenSecrets)
	t.Run("ForceSkipsExistingLookup", testUploadForceSkipsExistingLookup)
	t.Run("MissingEnvFile", testUploadMissingEnvFile)
	t.Run("MissingToken", testUploadMissingToken)
	t.Run("InvalidRepository", testUploadInvalidRepository)
	t.Run("EmptyEnvFile", testUploadEmptyEnvFile)
	t.Run("RequiresRepositoryFlag", testUploadRequiresRepositoryFlag)
}

func testUploadsEveryVariable(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "API_KEY=abc123\nDB_URL=postgres://x\n")

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world"}, nil)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Processed 2 variables: 2 successful, 0 failed") {
		t.Errorf("Expected summary line, got: %s", output)
	}
	if !strings.Contains(output, "✓ API_KEY (created)") {
		t.Errorf("Expected API_KEY success line, got: %s", output)
	}

	value, err := server.Decrypt("DB_URL")
	if err != nil {
		t.Fatalf("Failed to decrypt DB_URL: %v", err)
	}
	if value != "postgres://x" {
		t.Errorf("Expected DB_URL to decrypt to postgres://x, got %q", value)
	}
}

func testUploadReportsPartialFailure(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	server.FailSecrets["DB_URL"] = http.StatusUnprocessableEntity
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "API_KEY=abc123\nDB_URL=postgres://x\nTOKEN=t\n")

	output, err := runCLI([]string{"upload", "--github-repo", "octocat/hello-world"}, nil)
	if err != nil {
		t.Fatalf("Partial failure should not fail the command: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Processed 3 variables: 2 successful, 1 failed") {
		t.Errorf("Expected summary line with one failure, got: %s", output)
	}
	if !strings.Contains(output, "✗ DB_URL") {
		t.Errorf("Expected failure line for DB_URL, got: %s", output)
	}
	if _, ok := server.Secret("TOKEN"); !ok {
		t.Errorf("Expected TOKEN to be uploaded after DB_URL failed")
	}
}

func testUploadReportsRenames(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "api-key=abc123\n")

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world"}, nil)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Renamed 'api-key' to 'API_KEY'") {
		t.Errorf("Expected rename note, got: %s", output)
	}
	if _, ok := server.Secret("API_KEY"); !ok {
		t.Errorf("Expected secret API_KEY, got %v", server.SecretNames())
	}
}

func testUploadWarnsAboutOverwrittenSecrets(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	server.Seed("API_KEY", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "API_KEY=new\nOTHER=1\n")

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world"}, nil)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "already existed and were overwritten") {
		t.Errorf("Expected overwrite warning, got: %s", output)
	}
	if !strings.Contains(output, "✓ API_KEY (updated)") {
		t.Errorf("Expected API_KEY to be reported as updated, got: %s", output)
	}
	if !strings.Contains(output, "✓ OTHER (created)") {
		t.Errorf("Expected OTHER to be reported as created, got: %s", output)
	}
}

func testUploadForceSkipsExistingLookup(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	server.Seed("API_KEY", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "API_KEY=new\n")

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world", "--force"}, nil)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if strings.Contains(output, "already existed") {
		t.Errorf("Did not expect overwrite warning with --force, got: %s", output)
	}
	for _, req := range server.Requests() {
		if strings.HasPrefix(req, "GET") && strings.HasSuffix(req, "/actions/secrets") {
			t.Errorf("Did not expect the secrets to be listed with --force, saw %s", req)
		}
	}
}

func testUploadMissingEnvFile(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	useTestCredentials(testToken)

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world", "-e", "missing.env"}, nil)
	if !errors.Is(err, kerrors.ErrEnvFileNotFound) {
		t.Fatalf("Expected ErrEnvFileNotFound, got %v", err)
	}
	if !errors.Is(err, ErrReported) {
		t.Errorf("Expected the error to be marked as reported, got %v", err)
	}
	if !strings.Contains(output, "Error: missing.env not found") {
		t.Errorf("Expected not-found message, got: %s", output)
	}
	if len(server.Requests()) != 0 {
		t.Errorf("Expected no API calls, got %v", server.Requests())
	}
}

func testUploadMissingToken(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	useTestCredentials("")
	writeTestFile(t, ".env", "API_KEY=abc123\n")

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world"}, nil)
	if !errors.Is(err, kerrors.ErrCredentialNotFound) {
		t.Fatalf("Expected ErrCredentialNotFound, got %v", err)
	}
	if !strings.Contains(output, "GitHub token not found") {
		t.Errorf("Expected token-not-found message, got: %s", output)
	}
	if len(server.Requests()) != 0 {
		t.Errorf("Expected no API calls, got %v", server.Requests())
	}
}

func testUploadInvalidRepository(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "API_KEY=abc123\n")

	output, err := runCLI([]string{"upload", "-r", "not-a-repo"}, nil)
	if !errors.Is(err, kerrors.ErrInvalidRepository) {
		t.Fatalf("Expected ErrInvalidRepository, got %v", err)
	}
	if !strings.Contains(output, "must be in format 'owner/repo'") {
		t.Errorf("Expected repository format message, got: %s", output)
	}
	if len(server.Requests()) != 0 {
		t.Errorf("Expected no API calls, got %v", server.Requests())
	}
}

func testUploadEmptyEnvFile(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "# nothing here\n\n")

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world"}, nil)
	if !errors.Is(err, kerrors.ErrNoVariables) {
		t.Fatalf("Expected ErrNoVariables, got %v", err)
	}
	if !strings.Contains(output, "No variables found in .env") {
		t.Errorf("Expected no-variables message, got: %s", output)
	}
	if len(server.Requests()) != 0 {
		t.Errorf("Expected no API calls, got %v", server.Requests())
	}
}

func testUploadRequiresRepositoryFlag(t *testing.T) {
	setupTestEnvironment(t)
	useTestCredentials(testToken)

	_, err := runCLI([]string{"upload"}, nil)
	if err == nil {
		t.Fatal("Expected an error when --github-repo is missing")
	}
	if !strings.Contains(err.Error(), "github-repo") {
		t.Errorf("Expected error to name the missing flag, got %v", err)
	}
}

func TestUploadContinuesWhenExistingLookupFails(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	server.ListStatus = http.StatusForbidden
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "API_KEY=abc123\n")

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world"}, nil)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Could not check for existing secrets") {
		t.Errorf("Expected lookup warning, got: %s", output)
	}
	if !strings.Contains(output, "Processed 1 variables: 1 successful, 0 failed") {
		t.Errorf("Expected upload to continue, got: %s", output)
	}
}

func TestUploadVerboseReportsEachSecret(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	server.FailSecrets["DB_URL"] = http.StatusInternalServerError
	useTestCredentials(testToken)
	writeTestFile(t, ".env", "API_KEY=abc123\nDB_URL=postgres://x\n")

	output, err := runCLI([]string{"upload", "-v", "-r", "octocat/hello-world"}, nil)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Creating/updating secret: API_KEY... Done!") {
		t.Errorf("Expected verbose success line for API_KEY, got: %s", output)
	}
	if !strings.Contains(output, "Creating/updating secret: DB_URL... Failed!") {
		t.Errorf("Expected verbose failure line for DB_URL, got: %s", output)
	}
	if strings.Contains(output, "abc123") {
		t.Errorf("Secret values must never be printed, got: %s", output)
	}
}

func TestFormatUploadResultAnnotatesInColour(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	os.Unsetenv("NO_COLOR")
	originalNoColor := color.NoColor
	t.Cleanup(func() { color.NoColor = originalNoColor })

	result := &workflows.UploadResult{
		Repository: github.Repository{Owner: testOwner, Name: testRepo},
		EnvFile:    ".env",
		Secrets: []workflows.SecretResult{
			{SourceName: "API_KEY", SecretName: "API_KEY", Created: true},
			{SourceName: "DB_URL", SecretName: "DB_URL"},
		},
		Succeeded: 2,
	}

	for _, noColor := range []bool{false, true} {
		color.NoColor = noColor
		output := formatUploadResult(result)
		if !strings.Contains(output, "(created)") || !strings.Contains(output, "(updated)") {
			t.Errorf("NoColor=%t: expected (created) and (updated) annotations, got: %q", noColor, output)
		}
		if strings.Contains(output, "((") {
			t.Errorf("NoColor=%t: annotations are double wrapped: %q", noColor, output)
		}
	}
}

func TestUploadReportsMissingEnvFileBeforeKeyringFailure(t *testing.T) {
	setupTestEnvironment(t)
	server := setupFakeGitHub(t)
	keyringErr := errors.New("no keyring backend available")
	openCredentialStore = func(*configs.Config) (credentials.Store, error) {
		return nil, keyringErr
	}

	output, err := runCLI([]string{"upload", "-r", "octocat/hello-world", "-e", "missing.env"}, nil)
	if !errors.Is(err, kerrors.ErrEnvFileNotFound) {
		t.Fatalf("Expected ErrEnvFileNotFound, got %v", err)
	}
	if !strings.Contains(output, "Error: missing.env not found") {
		t.Errorf("Expected not-found message, got: %s", output)
	}

	writeTestFile(t, ".env", "API_KEY=abc123\n")
	output, err = runCLI([]string{"upload", "-r", "octocat/hello-world"}, nil)
	if !errors.Is(err, keyringErr) {
		t.Fatalf("Expected the keyring error once the env file exists, got %v", err)
	}
	if !strings.Contains(output, "no keyring backend available") {
		t.Errorf("Expected keyring message, got: %s", output)
	}
	if len(server.Requests()) != 0 {
		t.Errorf("Expected no API calls, got %v", server.Requests())
	}
}
