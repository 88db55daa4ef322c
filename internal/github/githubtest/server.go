// Package githubtest runs an in-memory GitHub Actions secrets API for tests.
package githubtest

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/nacl/box"
)

// KeyID is the key identifier the server hands out.
const KeyID = "568250167242549743"

// StoredSecret is a secret as the server received it.
type StoredSecret struct {
	EncryptedValue string
	KeyID          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Server is a fake GitHub API scoped to a single repository.
type Server struct {
	*httptest.Server

	Owner string
	Repo  string
	Token string

	// PublicKeyStatus, when non-zero, is returned by the public-key endpoint instead of the key.
	PublicKeyStatus int

	// PublicKeyValue, when non-empty, is served in place of the real base64 key.
	PublicKeyValue string

	// FailSecrets maps secret names to the status code their PUT should fail with.
	FailSecrets map[string]int

	// ListStatus, when non-zero, is returned by the list endpoint.
	ListStatus int

	publicKey  *[32]byte
	privateKey *[32]byte

	mu       sync.Mutex
	secrets  map[string]StoredSecret
	requests []string
}

// NewServer starts a fake API for owner/repo that accepts token.
func NewServer(owner, repo, token string) *Server {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		panic(fmt.Sprintf("githubtest: generating key pair: %v", err))
	}

	s := &Server{
		Owner:       owner,
		Repo:        repo,
		Token:       token,
		FailSecrets: map[string]int{},
		publicKey:   pub,
		privateKey:  priv,
		secrets:     map[string]StoredSecret{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Seed stores a secret as if it had been uploaded earlier.
func (s *Server) Seed(name string, created time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[name] = StoredSecret{KeyID: KeyID, CreatedAt: created, UpdatedAt: created}
}

// Secret returns the stored secret name.
func (s *Server) Secret(name string) (StoredSecret, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	secret, ok := s.secrets[name]
	return secret, ok
}

// SecretNames returns the stored secret names, sorted.
func (s *Server) SecretNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.secrets))
	for name := range s.secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decrypt opens a stored secret's sealed value.
func (s *Server) Decrypt(name string) (string, error) {
	secret, ok := s.Secret(name)
	if !ok {
		return "", fmt.Errorf("secret %s not stored", name)
	}
	sealed, err := base64.StdEncoding.DecodeString(secret.EncryptedValue)
	if err != nil {
		return "", err
	}
	opened, ok := box.OpenAnonymous(nil, sealed, s.publicKey, s.privateKey)
	if !ok {
		return "", fmt.Errorf("secret %s could not be opened", name)
	}
	return string(opened), nil
}

// Requests returns "METHOD path" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.mu.Unlock()

	if got := r.Header.Get("Authorization"); got != "token "+s.Token {
		writeError(w, http.StatusUnauthorized, "Bad credentials")
		return
	}

	prefix := fmt.Sprintf("/repos/%s/%s/actions/secrets", s.Owner, s.Repo)
	if !strings.HasPrefix(r.URL.Path, prefix) {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, prefix)

	switch {
	case rest == "/public-key" && r.Method == http.MethodGet:
		s.handlePublicKey(w)
	case rest == "" && r.Method == http.MethodGet:
		s.handleList(w, r)
	case strings.HasPrefix(rest, "/") && r.Method == http.MethodPut:
		s.handlePut(w, r, strings.TrimPrefix(rest, "/"))
	default:
		writeError(w, http.StatusNotFound, "Not Found")
	}
}

func (s *Server) handlePublicKey(w http.ResponseWriter) {
	if s.PublicKeyStatus != 0 {
		writeError(w, s.PublicKeyStatus, http.StatusText(s.PublicKeyStatus))
		return
	}
	key := base64.StdEncoding.EncodeToString(s.publicKey[:])
	if s.PublicKeyValue != "" {
		key = s.PublicKeyValue
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"key_id": KeyID,
		"key":    key,
	})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request, name string) {
	if status, ok := s.FailSecrets[name]; ok {
		writeError(w, status, http.StatusText(status))
		return
	}

	var body struct {
		EncryptedValue string `json:"encrypted_value"`
		KeyID          string `json:"key_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.EncryptedValue == "" || body.KeyID != KeyID {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	existing, exists := s.secrets[name]
	created := now
	if exists {
		created = existing.CreatedAt
	}
	s.secrets[name] = StoredSecret{EncryptedValue: body.EncryptedValue, KeyID: body.KeyID, CreatedAt: created, UpdatedAt: now}

	if exists {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.ListStatus != 0 {
		writeError(w, s.ListStatus, http.StatusText(s.ListStatus))
		return
	}

	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = 30
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	names := s.SecretNames()

	type item struct {
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	items := []item{}
	for i := (page - 1) * perPage; i < len(names) && i < page*perPage; i++ {
		secret, _ := s.Secret(names[i])
		items = append(items, item{Name: names[i], CreatedAt: secret.CreatedAt, UpdatedAt: secret.UpdatedAt})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_count": len(names),
		"secrets":     items,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
