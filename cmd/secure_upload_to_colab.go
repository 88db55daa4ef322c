package cmd

import (
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"github.com/PolarWolf314/env-to-github-secrets/internal/ui"
	"github.com/PolarWolf314/env-to-github-secrets/internal/workflows"
	"github.com/spf13/cobra"
)

const (
	defaultColabFile = "colab_env.py"
	defaultSecureDir = ".secure"
)

var (
	colabEnvFile   string
	colabFile      string
	colabSecureDir string
	colabURL       string
)

func init() {
	colabCmd.Flags().StringVarP(&colabEnvFile, "env-file", "e", ".env", "path to the .env file")
	colabCmd.Flags().StringVarP(&colabFile, "colab-file", "c", defaultColabFile, "name of the generated Colab script")
	colabCmd.Flags().StringVarP(&colabSecureDir, "secure-dir", "s", defaultSecureDir, "directory the Colab script is written to")
	colabCmd.Flags().StringVarP(&colabURL, "url", "u", "", "Colab notebook URL to open when done")
}

// resetColabCommandState resets the secure-upload-to-colab command's global state for testing.
func resetColabCommandState() {
	colabEnvFile = ".env"
	colabFile = defaultColabFile
	colabSecureDir = defaultSecureDir
	colabURL = ""
}

var colabCmd = &cobra.Command{
	Use:   "secure-upload-to-colab",
	Short: "Prepare .env variables for Google Colab",
	Long: `Renders the variables in a .env file as a Python script that sets os.environ,
writes it into a private directory, makes sure that directory is listed in
.gitignore, and then overwrites and deletes the script.

Examples:
  env-to-github-secrets secure-upload-to-colab
  env-to-github-secrets secure-upload-to-colab -e .env.colab -s .secure -u https://colab.research.google.com/drive/abc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting secure-upload-to-colab command")
		spinner, cleanup := startSpinner("Preparing Colab script...")
		defer cleanup()

		opts := workflows.ColabExportOptions{
			EnvFile:   colabEnvFile,
			SecureDir: colabSecureDir,
			ColabFile: colabFile,
			URL:       colabURL,
		}
		if colabURL != "" {
			opts.OpenURL = openBrowser
		}

		Logger.Debugf("Env file: %s, secure dir: %s, colab file: %s", colabEnvFile, colabSecureDir, colabFile)
		result, err := workflows.ExportToColab(cmd.Context(), opts)
		if err != nil {
			Logger.Errorf("Colab export failed: %v", err)
			spinner.FinalMSG = colabFailureMessage(err)
			return reported(err)
		}

		if result.OpenErr != nil {
			Logger.WarnfAlways("Could not open %s: %v", result.URL, result.OpenErr)
		}

		Logger.Infof("Secure-upload-to-colab command completed for %d variables", result.VariableCount)
		spinner.FinalMSG = formatColabResult(result)
		return nil
	},
}

func colabFailureMessage(err error) string {
	cross := ui.Error.Sprint("✗")
	switch {
	case errors.Is(err, kerrors.ErrInvalidFileName):
		return cross + " Error: " + ui.Flag.Sprint("--colab-file") + " must be a plain file name"
	case errors.Is(err, kerrors.ErrInvalidSecureDir):
		return cross + " Error: " + ui.Flag.Sprint("--secure-dir") + " must be a subdirectory, not the project directory"
	case errors.Is(err, kerrors.ErrIgnoreLedger):
		return cross + " Failed to update " + ui.Path.Sprint(workflows.DefaultLedgerPath) + "; the Colab script was removed: " + err.Error()
	default:
		return failureMessage(err, colabEnvFile)
	}
}

func formatColabResult(result *workflows.ColabExportResult) string {
	var b strings.Builder

	for _, r := range result.Renames {
		fmt.Fprintf(&b, "Note: Renamed '%s' to '%s'\n", r.From, r.To)
	}

	fmt.Fprintf(&b, "%s Prepared %d variables in %s\n", ui.Success.Sprint("✓"), result.VariableCount, ui.Path.Sprint(result.ArtifactPath))
	if result.LedgerUpdated {
		fmt.Fprintf(&b, "%s Added %s to %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(result.IgnoreEntry), ui.Path.Sprint(result.LedgerPath))
	} else {
		fmt.Fprintf(&b, "%s %s is already in %s\n", ui.Info.Sprint("→"), ui.Path.Sprint(result.IgnoreEntry), ui.Path.Sprint(result.LedgerPath))
	}
	fmt.Fprintf(&b, "%s Securely deleted %s", ui.Success.Sprint("✓"), ui.Path.Sprint(result.ArtifactPath))

	if result.URLOpened {
		fmt.Fprintf(&b, "\n%s Opened %s", ui.Info.Sprint("→"), ui.Highlight.Sprint(result.URL))
	}
	return b.String()
}
