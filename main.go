package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/env-to-github-secrets/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "env-to-github-secrets",
	Short: "Upload .env files to GitHub Secrets",
	Long: `env-to-github-secrets moves the variables in a .env file to where they are
needed without committing them.

Usage:
  env-to-github-secrets <command> [flags]

Available Commands:
  setup                    Store a GitHub Personal Access Token
  upload                   Upload .env variables as GitHub Actions secrets
  list-secrets             List the secrets in a repository
  secure-upload-to-colab   Prepare .env variables for Google Colab

Run 'env-to-github-secrets help <command>' for more details on a specific command.
`,
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
