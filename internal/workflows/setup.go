package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/env-to-github-secrets/internal/configs"
	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
)

// SetupOptions configures the setup workflow.
type SetupOptions struct {
	// Token is the personal access token as entered by the user.
	Token string

	// Store receives the token.
	Store credentials.Store

	// ConfigPath is where a default config file is written when none exists.
	// Empty skips writing one.
	ConfigPath string
}

// SetupResult contains the outcome of setup.
type SetupResult struct {
	ConfigPath    string
	ConfigWritten bool
}

// Setup stores the GitHub token and writes a default config file if there is none yet.
//
// Returns ErrEmptyToken if the token is blank once surrounding whitespace is removed.
func Setup(ctx context.Context, opts SetupOptions) (*SetupResult, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		return nil, kerrors.ErrEmptyToken
	}

	if err := opts.Store.Set(token); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}

	result := &SetupResult{ConfigPath: opts.ConfigPath}
	if opts.ConfigPath == "" {
		return result, nil
	}

	if _, err := os.Stat(opts.ConfigPath); err == nil {
		return result, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config %s: %w", opts.ConfigPath, err)
	}

	if err := configs.SaveConfig(opts.ConfigPath, configs.DefaultConfig()); err != nil {
		return nil, err
	}
	result.ConfigWritten = true
	return result, nil
}
