package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/ui"
	"github.com/PolarWolf314/env-to-github-secrets/internal/utils"
	"github.com/PolarWolf314/env-to-github-secrets/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	uploadEnvFile string
	uploadRepo    string
	uploadForce   bool
)

func init() {
	uploadCmd.Flags().StringVarP(&uploadEnvFile, "env-file", "e", ".env", "path to the .env file")
	uploadCmd.Flags().StringVarP(&uploadRepo, "github-repo", "r", "", "GitHub repository in format owner/repo")
	uploadCmd.Flags().BoolVarP(&uploadForce, "force", "f", false, "override existing secrets without checking for them first")
	_ = uploadCmd.MarkFlagRequired("github-repo")
}

// resetUploadCommandState resets the upload command's global state for testing.
func resetUploadCommandState() {
	uploadEnvFile = ".env"
	uploadRepo = ""
	uploadForce = false
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload .env variables as GitHub Secrets",
	Long: `Encrypts every variable in a .env file with the repository's public key and
creates or updates a GitHub Actions secret for each one.

Secret names are uppercased and '-' is replaced with '_'. A failure to upload
one secret does not stop the others; the summary reports both counts.

Examples:
  env-to-github-secrets upload -r octocat/hello-world
  env-to-github-secrets upload -e .env.production -r octocat/hello-world --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting upload command")
		spinner, cleanup := startSpinner("Uploading secrets...")
		defer cleanup()

		config, api, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = failureMessage(err, uploadEnvFile)
			return reported(err)
		}

		store := credentials.Deferred(func() (credentials.Store, error) {
			return openCredentialStore(config)
		})

		Logger.Debugf("Env file: %s, repository: %s, force: %t", uploadEnvFile, uploadRepo, uploadForce)
		result, err := workflows.Upload(cmd.Context(), workflows.UploadOptions{
			EnvFile:    uploadEnvFile,
			Repository: uploadRepo,
			Force:      uploadForce,
			Store:      store,
			API:        api,
			OnSecret: func(s workflows.SecretResult) {
				if s.Err != nil {
					Logger.Infof("Creating/updating secret: %s... Failed! %v", s.SecretName, s.Err)
					return
				}
				Logger.Infof("Creating/updating secret: %s... Done!", s.SecretName)
			},
		})
		if err != nil {
			Logger.Errorf("Upload failed: %v", err)
			spinner.FinalMSG = failureMessage(err, uploadEnvFile)
			return reported(err)
		}

		if result.ExistingErr != nil {
			Logger.Warnf("Could not check for existing secrets: %v", result.ExistingErr)
		}

		Logger.Infof("Upload command completed: %d successful, %d failed", result.Succeeded, result.Failed)
		spinner.FinalMSG = formatUploadResult(result)
		return nil
	},
}

func formatUploadResult(result *workflows.UploadResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d variables in %s\n", result.Processed(), ui.Path.Sprint(result.EnvFile))

	for _, r := range result.Renames() {
		fmt.Fprintf(&b, "Note: Renamed '%s' to '%s' to comply with GitHub naming rules\n", r.From, r.To)
	}

	if result.ExistingErr != nil {
		fmt.Fprintf(&b, "%s Could not check for existing secrets: %v\n", ui.Warning.Sprint("⚠"), result.ExistingErr)
	}

	if len(result.Existing) > 0 {
		b.WriteString(ui.Warning.Sprint("⚠") + " The following secrets already existed and were overwritten:")
		b.WriteString(utils.FormatNames(result.Existing))
	}

	for _, s := range result.Secrets {
		if s.Err != nil {
			fmt.Fprintf(&b, "%s %s: %v\n", ui.Error.Sprint("✗"), ui.Secret.Sprint(s.SecretName), s.Err)
			continue
		}
		annotation := "updated"
		if s.Created {
			annotation = "created"
		}
		fmt.Fprintf(&b, "%s %s %s\n", ui.Success.Sprint("✓"), ui.Secret.Sprint(s.SecretName), ui.Muted.Sprintf("(%s)", annotation))
	}

	fmt.Fprintf(&b, "\nProcessed %d variables: %d successful, %d failed", result.Processed(), result.Succeeded, result.Failed)
	if result.Failed == 0 {
		b.WriteString("\n" + ui.Info.Sprint("→") + " Secrets are available to workflows in " + ui.Highlight.Sprint(result.Repository.String()))
	}

	return b.String()
}
