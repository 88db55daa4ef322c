package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PublicKey is the key a repository's secrets must be sealed with.
type PublicKey struct {
	KeyID string `json:"key_id"`
	Key   string `json:"key"`
}

// EncryptedSecret is the body of a create-or-update request.
type EncryptedSecret struct {
	EncryptedValue string `json:"encrypted_value"`
	KeyID          string `json:"key_id"`
}

// Secret is the metadata GitHub returns for a stored secret. Values are never readable.
type Secret struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type secretList struct {
	TotalCount int      `json:"total_count"`
	Secrets    []Secret `json:"secrets"`
}

// listPageSize is the largest page GitHub serves for this endpoint.
const listPageSize = 100

func secretsPath(repo Repository) string {
	return fmt.Sprintf("/repos/%s/%s/actions/secrets", url.PathEscape(repo.Owner), url.PathEscape(repo.Name))
}

// GetPublicKey fetches the repository public key.
func (c *Client) GetPublicKey(ctx context.Context, repo Repository) (*PublicKey, error) {
	req, err := c.newRequest(ctx, http.MethodGet, secretsPath(repo)+"/public-key", nil)
	if err != nil {
		return nil, err
	}

	key := &PublicKey{}
	if _, err := c.doRequest(req, "fetching public key", key); err != nil {
		return nil, err
	}
	if key.Key == "" || key.KeyID == "" {
		return nil, fmt.Errorf("fetching public key: response is missing key or key_id")
	}
	return key, nil
}

// PutSecret creates or updates the secret name. created reports whether
// GitHub answered 201 Created rather than updating an existing secret.
func (c *Client) PutSecret(ctx context.Context, repo Repository, name string, secret EncryptedSecret) (created bool, err error) {
	req, err := c.newRequest(ctx, http.MethodPut, secretsPath(repo)+"/"+url.PathEscape(name), secret)
	if err != nil {
		return false, err
	}

	status, err := c.doRequest(req, "creating/updating secret "+name, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

// ListSecrets returns every secret stored in the repository, following pagination.
func (c *Client) ListSecrets(ctx context.Context, repo Repository) ([]Secret, error) {
	var all []Secret
	for page := 1; ; page++ {
		path := fmt.Sprintf("%s?per_page=%d&page=%d", secretsPath(repo), listPageSize, page)
		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		var list secretList
		if _, err := c.doRequest(req, "fetching secrets", &list); err != nil {
			return nil, err
		}

		all = append(all, list.Secrets...)
		if len(list.Secrets) == 0 || len(all) >= list.TotalCount {
			return all, nil
		}
	}
}
