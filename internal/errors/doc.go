// Package errors provides typed error values for env-to-github-secrets.
//
// Sentinel errors let the cmd layer pick a user-facing message with
// errors.Is() instead of matching on strings.
//
// # Error Categories
//
//   - Not found: the source .env file or the stored credential is missing
//     (ErrEnvFileNotFound, ErrCredentialNotFound)
//   - Validation: the input cannot be used (ErrInvalidRepository, ErrNoVariables,
//     ErrEmptyToken, ErrInvalidFileName)
//   - Remote: the GitHub API answered with a non-2xx status (ErrRemote, RemoteError)
//   - Local I/O: the Colab artifact or the ignore-ledger could not be written or
//     removed (ErrWriteFailed, ErrDeleteFailed, ErrIgnoreLedger)
//   - Crypto: the repository public key is unusable (ErrInvalidPublicKey, ErrEncryptFailed)
//
// # Usage
//
// Wrap sentinels with context:
//
//	return fmt.Errorf("%w: %s", kerrors.ErrEnvFileNotFound, path)
//
// Remote failures keep the status code and body:
//
//	var remoteErr *kerrors.RemoteError
//	if errors.As(err, &remoteErr) {
//	    fmt.Println(remoteErr.StatusCode)
//	}
package errors
