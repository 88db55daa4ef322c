package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github"
)

// ListSecretsOptions configures the list-secrets workflow.
type ListSecretsOptions struct {
	Repository string
	Store      credentials.Store
	API        github.Config
}

// ListSecretsResult contains the secrets stored in a repository.
type ListSecretsResult struct {
	Repository github.Repository
	Secrets    []github.Secret
}

// ListSecrets lists the secret names stored in a repository.
//
// Returns ErrCredentialNotFound if no token has been stored.
// Returns ErrInvalidRepository if the repository is not owner/repo.
// Returns a RemoteError (ErrRemote) if the listing fails.
func ListSecrets(ctx context.Context, opts ListSecretsOptions) (*ListSecretsResult, error) {
	client, err := authenticatedClient(opts.Store, opts.API)
	if err != nil {
		return nil, err
	}

	repo, err := github.ParseRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	list, err := client.ListSecrets(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}

	return &ListSecretsResult{Repository: repo, Secrets: list}, nil
}
