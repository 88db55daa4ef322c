// Package ui provides semantic text formatting for CLI output.
//
// Each formatter names the kind of content it decorates, so commands never
// pick colours directly:
//
//	ui.Code.Sprint("env-to-github-secrets setup")  // commands to run
//	ui.Path.Sprint(".env")                          // file and directory paths
//	ui.Secret.Sprint("API_KEY")                     // secret names
//	ui.Highlight.Sprint("octocat/hello-world")      // repositories and other user values
//	ui.Success.Sprint("✓")
//	ui.Error.Sprint("✗")
//	ui.Info.Sprint("→")
//	ui.Muted.Sprint("(created)")
//
// When NO_COLOR is set or the terminal has no colour support, formatters fall
// back to plain-text decorations (backticks or quotes) where the
// content would otherwise be ambiguous.
package ui
