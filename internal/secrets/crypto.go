package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"golang.org/x/crypto/nacl/box"
)

// PublicKeySize is the length of a decoded repository public key.
const PublicKeySize = 32

// DecodePublicKey decodes a base64 repository public key.
func DecodePublicKey(encoded string) (*[PublicKeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPublicKey, err)
	}
	if len(raw) != PublicKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidPublicKey, PublicKeySize, len(raw))
	}

	var key [PublicKeySize]byte
	copy(key[:], raw)
	return &key, nil
}

// EncryptSecret seals value under a decoded repository public key and
// returns the base64 ciphertext.
func EncryptSecret(key *[PublicKeySize]byte, value string) (string, error) {
	return SealWithKey(key, value, rand.Reader)
}

// SealWithKey seals value under key, drawing the ephemeral key pair from random.
func SealWithKey(key *[PublicKeySize]byte, value string, random io.Reader) (string, error) {
	sealed, err := box.SealAnonymous(nil, []byte(value), key, random)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}
