// Package configs loads the optional TOML configuration for env-to-github-secrets.
//
// The file lives at $XDG_CONFIG_HOME/env-to-github-secrets/config.toml (see
// os.UserConfigDir) unless ENV_TO_GITHUB_SECRETS_CONFIG points elsewhere. A
// missing file is not an error: every field has a default.
//
//	[github]
//	api_url = "https://api.github.com"
//	user_agent = "env-to-github-secrets"
//	timeout = "30s"
//
//	[keyring]
//	service = "env-to-github-secrets"
//	account = "github-pat"
//	backends = ["keychain", "secret-service", "wincred", "file"]
//	file_dir = "~/.local/share/env-to-github-secrets/keyring"
//
// GITHUB_API_URL, when set, overrides github.api_url so the tool follows the
// same convention as GitHub Actions runners on Enterprise Server.
package configs
