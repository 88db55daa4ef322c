package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"github.com/PolarWolf314/env-to-github-secrets/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup function
// adds one before printing the final message to stdout.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// failureMessage renders err as the final message of a failed command.
// envFile names the source file for errors about it.
func failureMessage(err error, envFile string) string {
	cross := ui.Error.Sprint("✗")

	switch {
	case errors.Is(err, kerrors.ErrEnvFileNotFound):
		return cross + " Error: " + ui.Path.Sprint(envFile) + " not found"
	case errors.Is(err, kerrors.ErrCredentialNotFound):
		return cross + " GitHub token not found. Please run " + ui.Code.Sprint("env-to-github-secrets setup") + " command first."
	case errors.Is(err, kerrors.ErrInvalidRepository):
		return cross + " Error: GitHub repository must be in format " + ui.Highlight.Sprint("owner/repo")
	case errors.Is(err, kerrors.ErrNoVariables):
		return cross + " No variables found in " + ui.Path.Sprint(envFile)
	default:
		return cross + " Error: " + err.Error()
	}
}
