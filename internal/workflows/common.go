package workflows

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/envfile"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github"
)

// Rename records a variable whose secret name differs from its source name.
type Rename struct {
	From string
	To   string
}

// requireEnvFile fails with ErrEnvFileNotFound when path does not exist.
func requireEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", kerrors.ErrEnvFileNotFound, path)
	} else if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}

// loadVariables loads path and fails with ErrNoVariables when it is empty.
func loadVariables(path string) (*envfile.Map, error) {
	env, err := envfile.Load(path)
	if err != nil {
		return nil, err
	}
	if env.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", kerrors.ErrNoVariables, path)
	}
	return env, nil
}

// authenticatedClient reads the token from store and returns a client using it.
func authenticatedClient(store credentials.Store, conf github.Config) (*github.Client, error) {
	token, err := store.Get()
	if err != nil {
		return nil, err
	}
	conf.Token = token
	return github.NewClient(conf), nil
}
