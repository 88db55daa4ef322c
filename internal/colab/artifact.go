// Package colab materializes environment variables as a short Python script
// that sets os.environ inside a Colab notebook.
//
// The script is plaintext, so it lives only as long as the command that
// creates it: Write puts it in a private directory and Shred overwrites and
// removes it. Callers must always reach Shred once Write has succeeded.
package colab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/env-to-github-secrets/internal/envfile"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
)

// Header is the first line of every generated script.
const Header = "# Auto-generated by env-to-github-secrets. Do not commit this file."

// Render returns the script for env. Names are normalized; values are
// single-quoted verbatim, so a value containing ' yields invalid Python.
func Render(env *envfile.Map) []byte {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\nimport os\n")
	env.Each(func(name, value string) {
		fmt.Fprintf(&b, "os.environ['%s'] = '%s'\n", envfile.Normalize(name), value)
	})
	return []byte(b.String())
}

// Artifact is a script written to disk.
type Artifact struct {
	Path string
	size int
}

// ValidateFileName rejects names that would escape the target directory.
func ValidateFileName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidFileName, name)
	}
	return nil
}

// ValidateDir rejects a secure directory that is empty or resolves to baseDir,
// the directory holding the .gitignore that must exclude it.
func ValidateDir(dir, baseDir string) error {
	if strings.TrimSpace(dir) == "" || filepath.Clean(dir) == "." {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidSecureDir, dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", kerrors.ErrInvalidSecureDir, dir, err)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", kerrors.ErrInvalidSecureDir, dir, err)
	}
	if absDir == absBase {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidSecureDir, dir)
	}
	return nil
}

// Write creates dir with owner-only permissions if needed and writes content
// to dir/name readable only by the owner.
func Write(dir, name string, content []byte) (*Artifact, error) {
	if err := ValidateFileName(name); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", kerrors.ErrWriteFailed, dir, err)
	}

	// A leftover file keeps its old mode when rewritten, so it is replaced instead.
	path := filepath.Join(dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: removing stale %s: %v", kerrors.ErrWriteFailed, path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrWriteFailed, path, err)
	}
	artifact := &Artifact{Path: path, size: len(content)}

	if _, err := f.Write(content); err != nil {
		f.Close()
		_ = artifact.Shred()
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrWriteFailed, path, err)
	}
	if err := f.Close(); err != nil {
		_ = artifact.Shred()
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrWriteFailed, path, err)
	}

	return artifact, nil
}

// Shred overwrites the artifact with zeros and removes it. Only a failed
// removal is an error; the overwrite is best effort.
func (a *Artifact) Shred() error {
	if f, err := os.OpenFile(a.Path, os.O_WRONLY, 0); err == nil {
		_, _ = f.Write(make([]byte, a.size))
		_ = f.Sync()
		f.Close()
	}

	if err := os.Remove(a.Path); err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrDeleteFailed, a.Path, err)
	}
	return nil
}
