// Package logger provides verbosity-gated logging for env-to-github-secrets commands.
//
// Output is prefixed with a coloured tag and controlled by two persistent
// flags on the root command:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including debug details and logged errors
//
// Without flags only WarnfAlways output reaches the terminal; the command's
// final message carries everything else the user needs.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Uploading %d secrets", count)
//
// Secret values must never be passed to a Logger. Names are fine.
package logger
