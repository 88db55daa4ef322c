// Package secrets seals secret values for the GitHub Actions secrets API.
//
// GitHub publishes one Curve25519 public key per repository. Each value is
// encrypted with a NaCl sealed box (an anonymous-sender crypto_box with an
// ephemeral key pair), so only GitHub, which holds the matching private key,
// can open it. The ciphertext is base64 encoded for the request body.
//
// Every call to EncryptSecret uses a fresh ephemeral key, so sealing the same
// value twice never produces the same payload.
package secrets
