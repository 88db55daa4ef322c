package workflows

import (
	"context"
	"fmt"
	"sort"

	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/envfile"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github"
	"github.com/PolarWolf314/env-to-github-secrets/internal/secrets"
)

// UploadOptions configures the upload workflow.
type UploadOptions struct {
	// EnvFile is the path of the source .env file.
	EnvFile string

	// Repository is the target in owner/repo form.
	Repository string

	// Force skips the lookup of secrets that are about to be replaced.
	Force bool

	// Store holds the GitHub token.
	Store credentials.Store

	// API configures the client. Its Token field is ignored.
	API github.Config

	// OnSecret, when set, is called after each secret is attempted.
	OnSecret func(SecretResult)
}

// SecretResult is the outcome of uploading one variable.
type SecretResult struct {
	SourceName string
	SecretName string

	// Created is true when GitHub reported a new secret rather than an update.
	Created bool

	// Err is nil when the upsert succeeded.
	Err error
}

// Renamed reports whether the secret name differs from the variable name.
func (r SecretResult) Renamed() bool {
	return r.SourceName != r.SecretName
}

// UploadResult contains the outcome of an upload.
type UploadResult struct {
	Repository github.Repository
	EnvFile    string

	// Secrets lists one entry per variable, in file order.
	Secrets []SecretResult

	// Existing lists secret names that were already stored and are replaced
	// by this upload. It is empty when Force is set.
	Existing []string

	// ExistingErr records a failed lookup of existing secrets. It does not fail the upload.
	ExistingErr error

	Succeeded int
	Failed    int
}

// Processed returns the number of variables attempted.
func (r *UploadResult) Processed() int {
	return len(r.Secrets)
}

// Renames lists the variables whose names were normalized.
func (r *UploadResult) Renames() []Rename {
	var renames []Rename
	for _, s := range r.Secrets {
		if s.Renamed() {
			renames = append(renames, Rename{From: s.SourceName, To: s.SecretName})
		}
	}
	return renames
}

// Upload seals every variable in the env file and upserts it as a repository secret.
//
// Returns ErrEnvFileNotFound if the env file does not exist.
// Returns ErrCredentialNotFound if no token has been stored.
// Returns ErrInvalidRepository if the repository is not owner/repo.
// Returns ErrNoVariables if the env file holds no variables.
// Returns a RemoteError (ErrRemote) if the public key cannot be fetched.
// Returns ErrInvalidPublicKey if the fetched key is not a base64 Curve25519 key.
//
// Failures of individual secrets are recorded in the result, not returned.
func Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error) {
	if err := requireEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	client, err := authenticatedClient(opts.Store, opts.API)
	if err != nil {
		return nil, err
	}

	repo, err := github.ParseRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	env, err := loadVariables(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	key, err := client.GetPublicKey(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository public key: %w", err)
	}

	sealKey, err := secrets.DecodePublicKey(key.Key)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{
		Repository: repo,
		EnvFile:    opts.EnvFile,
	}

	if !opts.Force {
		result.Existing, result.ExistingErr = existingSecrets(ctx, client, repo, env)
	}

	env.Each(func(name, value string) {
		secret := uploadSecret(ctx, client, repo, key.KeyID, sealKey, name, value)
		result.Secrets = append(result.Secrets, secret)
		if secret.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
		if opts.OnSecret != nil {
			opts.OnSecret(secret)
		}
	})

	return result, nil
}

func uploadSecret(ctx context.Context, client *github.Client, repo github.Repository, keyID string, sealKey *[secrets.PublicKeySize]byte, name, value string) SecretResult {
	secret := SecretResult{SourceName: name, SecretName: envfile.Normalize(name)}

	ciphertext, err := secrets.EncryptSecret(sealKey, value)
	if err != nil {
		secret.Err = err
		return secret
	}

	secret.Created, secret.Err = client.PutSecret(ctx, repo, secret.SecretName, github.EncryptedSecret{
		EncryptedValue: ciphertext,
		KeyID:          keyID,
	})
	return secret
}

// existingSecrets returns the normalized names in env that are already stored.
func existingSecrets(ctx context.Context, client *github.Client, repo github.Repository, env *envfile.Map) ([]string, error) {
	stored, err := client.ListSecrets(ctx, repo)
	if err != nil {
		return nil, err
	}

	storedNames := make(map[string]bool, len(stored))
	for _, s := range stored {
		storedNames[s.Name] = true
	}

	seen := map[string]bool{}
	var existing []string
	env.Each(func(name, _ string) {
		secretName := envfile.Normalize(name)
		if storedNames[secretName] && !seen[secretName] {
			seen[secretName] = true
			existing = append(existing, secretName)
		}
	})
	sort.Strings(existing)
	return existing, nil
}
