// Package workflows implements the business logic behind each command.
//
// The cmd/ package stays thin: it parses flags, builds the collaborators
// (credential store, API configuration), calls one workflow, and formats the
// result. Workflows never print; they return a Result describing what
// happened, or an error from internal/errors.
//
// # Available Workflows
//
//   - Setup: stores a GitHub personal access token in the credential store
//   - Upload: seals every variable of a .env file and upserts it as a repository secret
//   - ListSecrets: lists the secret names stored in a repository
//   - ExportToColab: writes a Colab bootstrap script, ignores its directory, then shreds it
//
// # Collaborators
//
// Workflows receive their credential store and API configuration through
// their Options struct. There is no package-level state, so tests can pass an
// in-memory keyring and an httptest server.
//
// # Error Handling
//
// Every returned error is terminal for the command. The only best-effort step
// is Upload's per-variable loop: one failed secret is recorded in the result
// and the loop continues.
package workflows
