package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/ui"
	"github.com/PolarWolf314/env-to-github-secrets/internal/workflows"
	"github.com/spf13/cobra"
)

// secretDateLayout is how secret timestamps are shown.
const secretDateLayout = "2006-01-02"

var listSecretsRepo string

func init() {
	listSecretsCmd.Flags().StringVarP(&listSecretsRepo, "github-repo", "r", "", "GitHub repository in format owner/repo")
	_ = listSecretsCmd.MarkFlagRequired("github-repo")
}

// resetListSecretsCommandState resets the list-secrets command's global state for testing.
func resetListSecretsCommandState() {
	listSecretsRepo = ""
}

var listSecretsCmd = &cobra.Command{
	Use:   "list-secrets",
	Short: "List GitHub Secrets in a repository",
	Long: `Lists the names of the GitHub Actions secrets in a repository together with
their creation and last update dates. Secret values are never shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list-secrets command")
		spinner, cleanup := startSpinner("Fetching secrets...")
		defer cleanup()

		config, api, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = failureMessage(err, "")
			return reported(err)
		}

		store := credentials.Deferred(func() (credentials.Store, error) {
			return openCredentialStore(config)
		})

		result, err := workflows.ListSecrets(cmd.Context(), workflows.ListSecretsOptions{
			Repository: listSecretsRepo,
			Store:      store,
			API:        api,
		})
		if err != nil {
			Logger.Errorf("Listing secrets failed: %v", err)
			spinner.FinalMSG = failureMessage(err, "")
			return reported(err)
		}

		Logger.Infof("Found %d secrets in %s", len(result.Secrets), result.Repository)
		spinner.FinalMSG = formatSecretList(result)
		return nil
	},
}

func formatSecretList(result *workflows.ListSecretsResult) string {
	if len(result.Secrets) == 0 {
		return "No secrets found in " + ui.Highlight.Sprint(result.Repository.String())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Secrets in %s:\n", ui.Highlight.Sprint(result.Repository.String()))
	for _, s := range result.Secrets {
		fmt.Fprintf(&b, "• %s (Created: %s, Updated: %s)\n",
			ui.Secret.Sprint(s.Name),
			s.CreatedAt.Format(secretDateLayout),
			s.UpdatedAt.Format(secretDateLayout))
	}
	return b.String()
}
