package github

import (
	"fmt"
	"strings"
	"unicode"

	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses an owner/repo string.
func ParseRepository(s string) (Repository, error) {
	owner, name, found := strings.Cut(s, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("%w: got %q", kerrors.ErrInvalidRepository, s)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return Repository{}, fmt.Errorf("%w: got %q", kerrors.ErrInvalidRepository, s)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}
