// Package utils provides small helpers shared by the workflows and commands.
//
// # Ignore-ledger
//
// EnsureIgnored appends a path to a .gitignore file unless the path already
// appears anywhere in it. The check-then-append is not atomic; the tool is a
// single-user CLI and concurrent edits of the same ledger are not supported.
//
// # Terminal
//
// ReadSecretLine reads a token without echo when the input is a terminal and
// falls back to a plain line read for pipes.
//
// # Formatting
//
// FormatNames renders secret names as a list for final command messages.
package utils
