package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/env-to-github-secrets/internal/colab"
	"github.com/PolarWolf314/env-to-github-secrets/internal/envfile"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"github.com/PolarWolf314/env-to-github-secrets/internal/utils"
)

// DefaultLedgerPath is the ignore-ledger updated by ExportToColab.
const DefaultLedgerPath = ".gitignore"

// ColabExportOptions configures the Colab export workflow.
type ColabExportOptions struct {
	// EnvFile is the path of the source .env file.
	EnvFile string

	// SecureDir is the directory the script is written to.
	SecureDir string

	// ColabFile is the script's file name inside SecureDir.
	ColabFile string

	// LedgerPath is the .gitignore to update. Defaults to DefaultLedgerPath.
	LedgerPath string

	// URL is an optional Colab notebook to open once the export is done.
	URL string

	// OpenURL opens URL. Nil skips opening.
	OpenURL func(string) error
}

// ColabExportResult contains the outcome of a Colab export.
type ColabExportResult struct {
	// ArtifactPath is where the script was written. It no longer exists.
	ArtifactPath string

	VariableCount int
	Renames       []Rename

	LedgerPath    string
	IgnoreEntry   string
	LedgerUpdated bool

	URL       string
	URLOpened bool

	// OpenErr records a failure to open URL. It does not fail the export.
	OpenErr error
}

// ExportToColab renders the env file as a Colab bootstrap script, writes it
// to SecureDir, makes sure SecureDir is git-ignored, then shreds the script.
//
// Returns ErrEnvFileNotFound if the env file does not exist.
// Returns ErrNoVariables if the env file holds no variables.
// Returns ErrInvalidFileName if ColabFile is not a plain file name.
// Returns ErrInvalidSecureDir if SecureDir is empty or is the ledger's own directory.
// Returns ErrWriteFailed if the script cannot be written.
// Returns ErrIgnoreLedger if .gitignore cannot be updated; the script is still shredded.
// Returns ErrDeleteFailed if the script cannot be removed.
func ExportToColab(ctx context.Context, opts ColabExportOptions) (*ColabExportResult, error) {
	if err := requireEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	if err := colab.ValidateFileName(opts.ColabFile); err != nil {
		return nil, err
	}

	ledgerPath := opts.LedgerPath
	if ledgerPath == "" {
		ledgerPath = DefaultLedgerPath
	}

	if err := colab.ValidateDir(opts.SecureDir, filepath.Dir(ledgerPath)); err != nil {
		return nil, err
	}

	env, err := loadVariables(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	result := &ColabExportResult{
		VariableCount: env.Len(),
		LedgerPath:    ledgerPath,
		IgnoreEntry:   utils.IgnoreEntry(filepath.Dir(ledgerPath), opts.SecureDir),
		URL:           opts.URL,
	}
	env.Each(func(name, _ string) {
		if normalized := envfile.Normalize(name); normalized != name {
			result.Renames = append(result.Renames, Rename{From: name, To: normalized})
		}
	})

	artifact, err := colab.Write(opts.SecureDir, opts.ColabFile, colab.Render(env))
	if err != nil {
		return nil, err
	}
	result.ArtifactPath = artifact.Path

	match := strings.TrimSuffix(result.IgnoreEntry, "/")
	result.LedgerUpdated, err = utils.EnsureIgnored(ledgerPath, match, result.IgnoreEntry)
	if err != nil {
		ledgerErr := fmt.Errorf("%w: %v", kerrors.ErrIgnoreLedger, err)
		if shredErr := artifact.Shred(); shredErr != nil {
			return nil, fmt.Errorf("%w; %w", ledgerErr, shredErr)
		}
		return nil, ledgerErr
	}

	if err := artifact.Shred(); err != nil {
		return nil, err
	}

	if opts.URL != "" && opts.OpenURL != nil {
		if err := opts.OpenURL(opts.URL); err != nil {
			result.OpenErr = err
		} else {
			result.URLOpened = true
		}
	}

	return result, nil
}
