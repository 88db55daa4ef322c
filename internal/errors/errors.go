package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Not found errors indicate a required input is missing.
var (
	// ErrEnvFileNotFound indicates the source .env file does not exist.
	ErrEnvFileNotFound = errors.New("env file not found")

	// ErrCredentialNotFound indicates no GitHub token has been stored yet.
	ErrCredentialNotFound = errors.New("github token not found")
)

// Validation errors indicate the input cannot be used as given.
var (
	// ErrInvalidRepository indicates the repository is not in owner/repo form.
	ErrInvalidRepository = errors.New("github repository must be in format 'owner/repo'")

	// ErrNoVariables indicates the source .env file holds no usable variables.
	ErrNoVariables = errors.New("no variables found")

	// ErrEmptyToken indicates a blank token was entered during setup.
	ErrEmptyToken = errors.New("token cannot be empty")

	// ErrInvalidFileName indicates the Colab file name is not a plain file name.
	ErrInvalidFileName = errors.New("colab file must be a file name, not a path")

	// ErrInvalidSecureDir indicates the secure directory is empty or is the project directory itself.
	ErrInvalidSecureDir = errors.New("secure directory must be a subdirectory")
)

// ErrRemote indicates the GitHub API answered with a non-2xx status.
var ErrRemote = errors.New("github api request failed")

// Local I/O errors indicate a file on disk could not be written or removed.
var (
	// ErrWriteFailed indicates the Colab artifact could not be written.
	ErrWriteFailed = errors.New("failed to write file")

	// ErrDeleteFailed indicates the Colab artifact could not be removed after use.
	ErrDeleteFailed = errors.New("failed to delete file")

	// ErrIgnoreLedger indicates the .gitignore file could not be read or updated.
	ErrIgnoreLedger = errors.New("failed to update .gitignore")
)

// Cryptographic errors.
var (
	// ErrInvalidPublicKey indicates the repository public key is malformed.
	ErrInvalidPublicKey = errors.New("invalid repository public key")

	// ErrEncryptFailed indicates a secret value could not be sealed.
	ErrEncryptFailed = errors.New("failed to encrypt secret")
)

// RemoteError describes a non-2xx answer from the GitHub API.
type RemoteError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: %d %s", e.Operation, e.StatusCode, body)
}

// Is reports ErrRemote as a match so callers can use errors.Is.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}
