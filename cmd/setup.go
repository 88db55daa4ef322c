package cmd

import (
	"errors"
	"fmt"

	"github.com/PolarWolf314/env-to-github-secrets/internal/configs"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"github.com/PolarWolf314/env-to-github-secrets/internal/ui"
	"github.com/PolarWolf314/env-to-github-secrets/internal/utils"
	"github.com/PolarWolf314/env-to-github-secrets/internal/workflows"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

const tokenSettingsURL = "https://github.com/settings/tokens"

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure GitHub Personal Access Token (PAT)",
	Long: `Stores a GitHub Personal Access Token in your operating system's credential store.

The token needs the 'repo' scope so it can read the repository public key and
write Actions secrets. It is read without echo when run from a terminal, or as
a single line from stdin otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting setup command")

		if utils.IsTerminal() {
			fmt.Println()
			figure.NewColorFigure("env2secrets", "small", "cyan", true).Print()
			fmt.Println()
		}

		fmt.Println("Setting up GitHub Personal Access Token")
		fmt.Println("Please create a PAT with 'repo' scope at: " + ui.Highlight.Sprint(tokenSettingsURL))

		config, _, err := loadConfig()
		if err != nil {
			fmt.Println(failureMessage(err, ""))
			return reported(err)
		}

		Logger.Debugf("Opening credential store %s/%s", config.Keyring.Service, config.Keyring.Account)
		store, err := openCredentialStore(config)
		if err != nil {
			fmt.Println(failureMessage(err, ""))
			return reported(err)
		}

		token, err := utils.ReadSecretLine("Enter your GitHub Personal Access Token: ", cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			fmt.Println(failureMessage(err, ""))
			return reported(err)
		}

		result, err := workflows.Setup(cmd.Context(), workflows.SetupOptions{
			Token:      token,
			Store:      store,
			ConfigPath: configs.ToolSettings.ConfigPath,
		})
		if err != nil {
			Logger.Errorf("Setup failed: %v", err)
			if errors.Is(err, kerrors.ErrEmptyToken) {
				fmt.Println(ui.Error.Sprint("✗") + " Token cannot be empty. Aborting.")
			} else {
				fmt.Println(failureMessage(err, ""))
			}
			return reported(err)
		}

		Logger.Infof("Setup command completed successfully")
		fmt.Println(ui.Success.Sprint("✓") + " GitHub token stored securely in system keyring")
		if result.ConfigWritten {
			fmt.Println(ui.Success.Sprint("✓") + " Wrote default config to " + ui.Path.Sprint(result.ConfigPath))
		}
		fmt.Println("Setup complete!")
		return nil
	},
}
