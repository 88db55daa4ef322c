package cmd

import (
	"errors"
	"fmt"

	"github.com/PolarWolf314/env-to-github-secrets/internal/configs"
	"github.com/PolarWolf314/env-to-github-secrets/internal/credentials"
	"github.com/PolarWolf314/env-to-github-secrets/internal/github"
	logger "github.com/PolarWolf314/env-to-github-secrets/internal/logging"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrReported marks an error whose message has already been shown to the user.
var ErrReported = errors.New("command failed")

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// openCredentialStore builds the token store for a command run.
	openCredentialStore = defaultCredentialStore

	// openBrowser opens a URL in the user's browser.
	openBrowser = open.Run
)

func defaultCredentialStore(config *configs.Config) (credentials.Store, error) {
	return credentials.Open(credentials.Config{
		Service:  config.Keyring.Service,
		Account:  config.Keyring.Account,
		Backends: config.Keyring.Backends,
		FileDir:  config.Keyring.FileDir,
	})
}

// Register attaches the global flags and every subcommand to root.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	// Commands print their own final message; main prints anything else.
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.AddCommand(setupCmd)
	root.AddCommand(uploadCmd)
	root.AddCommand(listSecretsCmd)
	root.AddCommand(colabCmd)
}

// loadConfig loads the tool configuration and derives the API client settings from it.
func loadConfig() (*configs.Config, github.Config, error) {
	Logger.Debugf("Loading config from %s", configs.ToolSettings.ConfigPath)
	config, err := configs.LoadToolConfig()
	if err != nil {
		return nil, github.Config{}, err
	}

	timeout, err := config.RequestTimeout()
	if err != nil {
		return nil, github.Config{}, err
	}

	api := github.Config{
		Endpoint:  config.GitHub.APIURL,
		UserAgent: config.GitHub.UserAgent,
		Timeout:   timeout,
	}
	Logger.Debugf("GitHub API endpoint: %s, timeout: %s", api.Endpoint, api.Timeout)
	return config, api, nil
}

// reported wraps err so main knows the user has already seen it.
func reported(err error) error {
	return fmt.Errorf("%w: %w", ErrReported, err)
}

// Helper functions for testing

// SetCredentialStore makes every command use store instead of the OS keyring.
func SetCredentialStore(store credentials.Store) {
	openCredentialStore = func(*configs.Config) (credentials.Store, error) {
		return store, nil
	}
}

// SetBrowserOpener replaces the function used to open --url.
func SetBrowserOpener(fn func(string) error) {
	openBrowser = fn
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	openCredentialStore = defaultCredentialStore
	openBrowser = open.Run
	resetUploadCommandState()
	resetListSecretsCommandState()
	resetColabCommandState()
	resetCobraFlagState()
}

// resetCobraFlagState clears the Changed bit on every subcommand flag to prevent test pollution.
func resetCobraFlagState() {
	for _, c := range []*cobra.Command{setupCmd, uploadCmd, listSecretsCmd, colabCmd} {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
